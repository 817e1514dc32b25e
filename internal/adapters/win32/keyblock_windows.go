//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"golang.org/x/sys/windows"
)

const whKeyboardLL = 13

type kbdllHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

// The low-level hook callback has no user-data parameter, so the set of
// suppressed keys is package state. One KeyBlocker is wired per process.
var (
	blockMu     sync.Mutex
	blockedVKs  = map[uint32]struct{}{}
	hookHandle  uintptr
	hookThread  uint32
	hookProcPtr uintptr
	hookOnce    sync.Once
)

func hookProc(code int32, wparam, lparam uintptr) uintptr {
	if code >= 0 {
		switch wparam {
		case wmKeyDown, wmKeyUp, wmSysKeyDown, wmSysKeyUp:
			event := (*kbdllHookStruct)(unsafe.Pointer(lparam))
			blockMu.Lock()
			_, swallow := blockedVKs[event.VkCode]
			blockMu.Unlock()
			if swallow {
				return 1
			}
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wparam, lparam)
	return ret
}

// KeyBlocker suppresses keys system-wide through a WH_KEYBOARD_LL hook.
// The hook is installed on demand on a dedicated locked OS thread (the
// hook needs a message pump) and removed once no keys remain blocked.
type KeyBlocker struct{}

var _ ports.KeyBlocker = KeyBlocker{}

func NewKeyBlocker() KeyBlocker {
	return KeyBlocker{}
}

func (KeyBlocker) Block(key ports.Key) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}

	blockMu.Lock()
	defer blockMu.Unlock()

	blockedVKs[vk] = struct{}{}
	if hookHandle != 0 {
		return nil
	}

	return installHook()
}

func (KeyBlocker) Unblock(key ports.Key) {
	vk, err := virtualKey(key)
	if err != nil {
		return
	}

	blockMu.Lock()
	defer blockMu.Unlock()

	delete(blockedVKs, vk)
	if len(blockedVKs) == 0 && hookHandle != 0 {
		// Wakes the pump thread, which unhooks on exit.
		_, _, _ = procPostThreadMessageW.Call(uintptr(hookThread), wmQuit, 0, 0)
		hookHandle = 0
		hookThread = 0
	}
}

// installHook is called with blockMu held.
func installHook() error {
	hookOnce.Do(func() {
		hookProcPtr = syscall.NewCallback(hookProc)
	})

	type hookResult struct {
		handle uintptr
		thread uint32
		err    error
	}
	ready := make(chan hookResult, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		handle, _, callErr := procSetWindowsHookExW.Call(whKeyboardLL, hookProcPtr, 0, 0)
		if handle == 0 {
			ready <- hookResult{err: fmt.Errorf("install keyboard hook: %w", callErr)}
			return
		}
		ready <- hookResult{handle: handle, thread: windows.GetCurrentThreadId()}

		var m msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if ret == 0 || int32(ret) == -1 {
				break
			}
		}

		_, _, _ = procUnhookWindowsHook.Call(handle)
	}()

	result := <-ready
	if result.err != nil {
		return result.err
	}

	hookHandle = result.handle
	hookThread = result.thread
	return nil
}
