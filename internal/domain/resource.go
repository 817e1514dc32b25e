package domain

import "fmt"

// ResourceKey identifies one of the tracked player resources. The set is
// closed; keys are stored and persisted in the order returned by Keys.
type ResourceKey string

const (
	ResourceHP     ResourceKey = "hp"
	ResourceMP     ResourceKey = "mp"
	ResourceShield ResourceKey = "ms"
)

// Keys returns every resource key in its fixed positional order. The
// threshold settings file is positional, so this order is part of the
// on-disk contract.
func Keys() []ResourceKey {
	return []ResourceKey{ResourceHP, ResourceMP, ResourceShield}
}

func ParseResourceKey(raw string) (ResourceKey, error) {
	switch ResourceKey(raw) {
	case ResourceHP, ResourceMP, ResourceShield:
		return ResourceKey(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, raw)
}

func (k ResourceKey) Label() string {
	switch k {
	case ResourceHP:
		return "HP"
	case ResourceMP:
		return "Mana"
	case ResourceShield:
		return "Shield"
	}
	return string(k)
}

// ResourceSpec describes where a resource value lives relative to the game
// module and when it should trigger an escape. Base and Offsets track the
// game's memory layout and may go stale across game updates; Threshold is
// the only field the user edits.
type ResourceSpec struct {
	Key       ResourceKey
	Base      uint64
	Offsets   []uint64
	Threshold int64
}

func (s ResourceSpec) Validate() error {
	if _, err := ParseResourceKey(string(s.Key)); err != nil {
		return err
	}
	if s.Base == 0 {
		return fmt.Errorf("resource %s: base address is zero", s.Key)
	}
	return nil
}

// DefaultSpecs returns the built-in pointer chains and thresholds. These
// match a specific game build and are expected to be overridden from the
// resource config file after a patch.
func DefaultSpecs() []ResourceSpec {
	return []ResourceSpec{
		{
			Key:       ResourceHP,
			Base:      0x03BA8868,
			Offsets:   []uint64{0x98, 0x68, 0x474},
			Threshold: 500,
		},
		{
			Key:       ResourceMP,
			Base:      0x03CCF4F8,
			Offsets:   []uint64{0x58, 0x0, 0x110, 0xF8, 0x1A0, 0x19C},
			Threshold: 500,
		},
		{
			Key:       ResourceShield,
			Base:      0x038AD5B8,
			Offsets:   []uint64{0xC8, 0x18, 0x110, 0xF8, 0x1A0, 0x1A0},
			Threshold: 10,
		},
	}
}
