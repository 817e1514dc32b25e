//go:build !windows

// Memory reading needs the win32 toolhelp APIs; on other platforms the
// opener exists so the CLI wires and the non-watch commands work, but
// attaching always fails.
package procmem

import (
	"fmt"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

type Opener struct{}

var _ ports.ProcessOpener = (*Opener)(nil)

func NewOpener() *Opener {
	return &Opener{}
}

func (*Opener) Open(name string) (ports.ProcessHandle, error) {
	return nil, fmt.Errorf("open process %s: %w", name, domain.ErrUnsupportedPlatform)
}
