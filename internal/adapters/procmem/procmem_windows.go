//go:build windows

// Package procmem attaches to the game process and reads its memory via
// the toolhelp snapshot and ReadProcessMemory APIs.
package procmem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"golang.org/x/sys/windows"
)

type Opener struct{}

var _ ports.ProcessOpener = (*Opener)(nil)

func NewOpener() *Opener {
	return &Opener{}
}

func (*Opener) Open(name string) (ports.ProcessHandle, error) {
	pid, err := findProcessID(name)
	if err != nil {
		return nil, err
	}

	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return nil, fmt.Errorf("open process %s (pid %d): %w", name, pid, err)
	}

	return &Handle{proc: proc, pid: pid}, nil
}

func findProcessID(name string) (uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("process snapshot: %w", err)
	}
	defer func() { _ = windows.CloseHandle(snapshot) }()

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err = windows.Process32First(snapshot, &entry); err == nil; err = windows.Process32Next(snapshot, &entry) {
		if strings.EqualFold(windows.UTF16ToString(entry.ExeFile[:]), name) {
			return entry.ProcessID, nil
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return 0, fmt.Errorf("walk process snapshot: %w", err)
	}

	return 0, fmt.Errorf("%w: %s", domain.ErrProcessNotFound, name)
}

type Handle struct {
	proc windows.Handle
	pid  uint32
}

var _ ports.ProcessHandle = (*Handle)(nil)

func (h *Handle) ModuleBase(module string) (uint64, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, h.pid)
	if err != nil {
		return 0, fmt.Errorf("module snapshot: %w", err)
	}
	defer func() { _ = windows.CloseHandle(snapshot) }()

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err = windows.Module32First(snapshot, &entry); err == nil; err = windows.Module32Next(snapshot, &entry) {
		if strings.EqualFold(windows.UTF16ToString(entry.Module[:]), module) {
			return uint64(entry.ModBaseAddr), nil
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return 0, fmt.Errorf("walk module snapshot: %w", err)
	}

	return 0, fmt.Errorf("module %s not found in pid %d", module, h.pid)
}

func (h *Handle) ReadPointer(addr uint64) (uint64, error) {
	var buf [8]byte
	if err := h.read(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (h *Handle) ReadInt32(addr uint64) (int32, error) {
	var buf [4]byte
	if err := h.read(addr, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (h *Handle) read(addr uint64, buf []byte) error {
	var done uintptr
	err := windows.ReadProcessMemory(h.proc, uintptr(addr), &buf[0], uintptr(len(buf)), &done)
	if err != nil {
		return fmt.Errorf("read %d bytes at %#x: %w", len(buf), addr, err)
	}
	if done != uintptr(len(buf)) {
		return fmt.Errorf("short read at %#x: %d of %d bytes", addr, done, len(buf))
	}
	return nil
}

func (h *Handle) Close() error {
	return windows.CloseHandle(h.proc)
}
