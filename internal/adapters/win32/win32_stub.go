//go:build !windows

package win32

import (
	"fmt"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

type WindowController struct{}

var _ ports.WindowController = WindowController{}

func NewWindowController() WindowController {
	return WindowController{}
}

func (WindowController) Find(title string) (ports.WindowHandle, error) {
	return 0, fmt.Errorf("find window %q: %w", title, domain.ErrUnsupportedPlatform)
}

func (WindowController) PostKeyDown(ports.WindowHandle, ports.Key) error {
	return domain.ErrUnsupportedPlatform
}

type KeyBlocker struct{}

var _ ports.KeyBlocker = KeyBlocker{}

func NewKeyBlocker() KeyBlocker {
	return KeyBlocker{}
}

func (KeyBlocker) Block(ports.Key) error {
	return domain.ErrUnsupportedPlatform
}

func (KeyBlocker) Unblock(ports.Key) {}
