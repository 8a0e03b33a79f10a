//go:build !darwin && !windows

package hotkey

import "golang.design/x/hotkey"

// X11 grabs conflict with most desktop environments' own Ctrl+Alt+arrow bindings.
const supported = false

const (
	modCtrl = hotkey.Modifier(0)
	modAlt  = hotkey.Modifier(0)

	keyRight = hotkey.Key(0)
	keyLeft  = hotkey.Key(0)
	keyUp    = hotkey.Key(0)
)
