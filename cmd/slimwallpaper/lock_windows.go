//go:build windows

package main

import (
	"errors"
	"fmt"

	"github.com/slimroms/slimwallpaper/config"
	"github.com/slimroms/slimwallpaper/util/log"
	"golang.org/x/sys/windows"
)

var mutex windows.Handle

// acquireLock creates a named mutex; a second instance finds it already exists.
func acquireLock() (bool, error) {
	namePtr, err := windows.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	handle, err := windows.CreateMutex(nil, false, namePtr)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if handle != 0 {
				windows.CloseHandle(handle)
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to create mutex: %w", err)
	}

	mutex = handle
	return true, nil
}

// releaseLock closes the mutex handle.
func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
