package ports

// WindowHandle is an opaque top-level window identifier (an HWND on
// Windows).
type WindowHandle uintptr

// Key names a physical key for synthetic input and global blocking.
type Key string

const (
	KeyEscape Key = "esc"
	KeySpace  Key = "space"
)

type WindowController interface {
	// Find locates a top-level window by exact title match.
	Find(title string) (WindowHandle, error)
	// PostKeyDown posts a synthetic key-down event to the window without
	// focusing it.
	PostKeyDown(win WindowHandle, key Key) error
}
