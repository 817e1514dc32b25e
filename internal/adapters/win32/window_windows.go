//go:build windows

// Package win32 implements the windowing and global key-block capabilities
// on top of user32.
package win32

import (
	"fmt"
	"unsafe"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW        = user32.NewProc("FindWindowW")
	procPostMessageW       = user32.NewProc("PostMessageW")
	procSetWindowsHookExW  = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHook  = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx     = user32.NewProc("CallNextHookEx")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

const (
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012

	vkEscape = 0x1B
	vkSpace  = 0x20
)

func virtualKey(key ports.Key) (uint32, error) {
	switch key {
	case ports.KeyEscape:
		return vkEscape, nil
	case ports.KeySpace:
		return vkSpace, nil
	}
	return 0, fmt.Errorf("no virtual key mapping for %q", key)
}

type WindowController struct{}

var _ ports.WindowController = WindowController{}

func NewWindowController() WindowController {
	return WindowController{}
}

func (WindowController) Find(title string) (ports.WindowHandle, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, fmt.Errorf("encode window title: %w", err)
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrWindowNotFound, title)
	}

	return ports.WindowHandle(hwnd), nil
}

func (WindowController) PostKeyDown(win ports.WindowHandle, key ports.Key) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}

	ok, _, callErr := procPostMessageW.Call(uintptr(win), wmKeyDown, uintptr(vk), 0)
	if ok == 0 {
		return fmt.Errorf("post WM_KEYDOWN to window %#x: %w", uintptr(win), callErr)
	}

	return nil
}
