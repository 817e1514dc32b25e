package toml

import (
	"fmt"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Resources []resourceSchema `toml:"resources"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported resources schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type resourceSchema struct {
	Key       string   `toml:"key"`
	Base      uint64   `toml:"base"`
	Offsets   []uint64 `toml:"offsets"`
	Threshold int64    `toml:"threshold"`
}

func toSchema(spec domain.ResourceSpec) resourceSchema {
	return resourceSchema{
		Key:       string(spec.Key),
		Base:      spec.Base,
		Offsets:   spec.Offsets,
		Threshold: spec.Threshold,
	}
}

func fromSchema(entry resourceSchema) (domain.ResourceSpec, error) {
	key, err := domain.ParseResourceKey(entry.Key)
	if err != nil {
		return domain.ResourceSpec{}, err
	}

	spec := domain.ResourceSpec{
		Key:       key,
		Base:      entry.Base,
		Offsets:   entry.Offsets,
		Threshold: entry.Threshold,
	}
	if err := spec.Validate(); err != nil {
		return domain.ResourceSpec{}, err
	}

	return spec, nil
}
