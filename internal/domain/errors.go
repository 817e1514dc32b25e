package domain

import "errors"

var (
	ErrProcessNotFound     = errors.New("target process not running")
	ErrWindowNotFound      = errors.New("game window not found")
	ErrPanicDelivery       = errors.New("panic key delivery failed")
	ErrUnknownResource     = errors.New("unknown resource key")
	ErrUnsupportedPlatform = errors.New("operation not supported on this platform")
)
