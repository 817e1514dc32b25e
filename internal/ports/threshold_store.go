package ports

import (
	"context"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
)

// ThresholdStore persists the user-edited thresholds, one per resource
// key. Load returns defaults for keys missing from the backing file.
type ThresholdStore interface {
	Load(ctx context.Context) (map[domain.ResourceKey]int64, error)
	Save(ctx context.Context, thresholds map[domain.ResourceKey]int64) error
}
