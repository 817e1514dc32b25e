package ports

// KeyBlocker suppresses keys system-wide while the post-panic grace period
// runs. Unblock must be idempotent: releasing a key that was never blocked
// (or was already released by the timer) is a no-op.
type KeyBlocker interface {
	Block(key Key) error
	Unblock(key Key)
}
