package hotkey

import (
	"time"

	"github.com/slimroms/slimwallpaper/util/log"
	"golang.design/x/hotkey"
)

// repeatDelay throttles a held-down shortcut
const repeatDelay = 200 * time.Millisecond

// Actions are the chooser operations reachable from global shortcuts. Nil actions
// are not registered.
type Actions struct {
	Next     func()
	Previous func()
	Apply    func()
}

type binding struct {
	name   string
	mods   []hotkey.Modifier
	key    hotkey.Key
	action func()
}

// bindings maps Ctrl+Alt+Right/Left/Up to the actions.
func bindings(actions Actions) []binding {
	all := []binding{
		{name: "Next Wallpaper", mods: []hotkey.Modifier{modCtrl, modAlt}, key: keyRight, action: actions.Next},
		{name: "Previous Wallpaper", mods: []hotkey.Modifier{modCtrl, modAlt}, key: keyLeft, action: actions.Previous},
		{name: "Set Wallpaper", mods: []hotkey.Modifier{modCtrl, modAlt}, key: keyUp, action: actions.Apply},
	}
	var out []binding
	for _, b := range all {
		if b.action != nil {
			out = append(out, b)
		}
	}
	return out
}

// StartListeners registers the global shortcuts. Each keydown runs its action
// through post, so actions may touch the UI. The returned func unregisters them.
func StartListeners(actions Actions, post func(func())) (stop func()) {
	if !supported {
		log.Debugf("Global hotkeys are not supported on this platform")
		return func() {}
	}

	var registered []*hotkey.Hotkey
	for _, b := range bindings(actions) {
		hk := hotkey.New(b.mods, b.key)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register hotkey %s: %v", b.name, err)
			continue
		}
		log.Printf("Registered hotkey: %s", b.name)
		registered = append(registered, hk)

		go func(hk *hotkey.Hotkey, name string, action func()) {
			for range hk.Keydown() {
				log.Debugf("Hotkey pressed: %s", name)
				post(action)
				time.Sleep(repeatDelay)
			}
		}(hk, b.name, b.action)
	}

	return func() {
		for _, hk := range registered {
			if err := hk.Unregister(); err != nil {
				log.Printf("Failed to unregister hotkey: %v", err)
			}
		}
	}
}
