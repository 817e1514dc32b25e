package ports

// ProcessHandle is an open handle onto the target game process. Reads
// return an error instead of panicking when the address is unreadable;
// callers decide whether that matters.
type ProcessHandle interface {
	// ModuleBase returns the load address of the named module (the game
	// executable itself for the pointer chains used here).
	ModuleBase(module string) (uint64, error)
	// ReadPointer reads an 8-byte little-endian pointer at addr.
	ReadPointer(addr uint64) (uint64, error)
	// ReadInt32 reads a 4-byte little-endian integer at addr.
	ReadInt32(addr uint64) (int32, error)
	Close() error
}

type ProcessOpener interface {
	// Open attaches to the first process whose executable name matches.
	Open(name string) (ProcessHandle, error)
}
