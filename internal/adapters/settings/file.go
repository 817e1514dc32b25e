// Package settings persists the user-edited thresholds as a single line
// of comma-separated integers, one per resource key in the fixed
// domain.Keys order. The format predates this implementation and is kept
// byte-compatible so existing poe2-chicken-bot.config files keep working.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

const (
	settingsDirMode  = 0o700
	settingsFileMode = 0o600
)

type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.ThresholdStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads the threshold line. A missing file and unparsable entries
// both fall back to the built-in default for the affected key; the user
// never loses the other values over one bad field.
func (s *Store) Load(ctx context.Context) (map[domain.ResourceKey]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	thresholds := defaultThresholds()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return thresholds, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	fields := strings.Split(strings.TrimSpace(string(data)), ",")
	for i, key := range domain.Keys() {
		if i >= len(fields) {
			break
		}
		value, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			continue
		}
		thresholds[key] = value
	}

	return thresholds, nil
}

// Save writes the full positional line. Keys missing from the map keep
// their built-in defaults so the file always holds one field per resource.
func (s *Store) Save(ctx context.Context, thresholds map[domain.ResourceKey]int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := defaultThresholds()
	for key, value := range thresholds {
		if _, ok := merged[key]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownResource, key)
		}
		merged[key] = value
	}

	fields := make([]string, 0, len(merged))
	for _, key := range domain.Keys() {
		fields = append(fields, strconv.FormatInt(merged[key], 10))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(strings.Join(fields, ",")), settingsFileMode); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func defaultThresholds() map[domain.ResourceKey]int64 {
	thresholds := make(map[domain.ResourceKey]int64, len(domain.Keys()))
	for _, spec := range domain.DefaultSpecs() {
		thresholds[spec.Key] = spec.Threshold
	}
	return thresholds
}
