package application

import (
	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

// ResolvePointer walks a resource's pointer chain through the process and
// returns the final address. Starting at moduleBase + spec.Base, each step
// dereferences an 8-byte pointer and adds the next offset. A failed
// intermediate read does not abort the walk: that dereference is skipped
// and the chain continues from the current address. The result may
// therefore point at garbage; the periodic reattach recomputes it rather
// than this function failing fast.
func ResolvePointer(proc ports.ProcessHandle, moduleBase uint64, spec domain.ResourceSpec) uint64 {
	addr := moduleBase + spec.Base
	for _, offset := range spec.Offsets {
		value, err := proc.ReadPointer(addr)
		if err != nil {
			continue
		}
		addr = value + offset
	}
	return addr
}
