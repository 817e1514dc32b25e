package ports

import (
	"context"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
)

type ResourceRepository interface {
	Get(ctx context.Context, key domain.ResourceKey) (domain.ResourceSpec, error)
	List(ctx context.Context) ([]domain.ResourceSpec, error)
	Save(ctx context.Context, spec domain.ResourceSpec) error
}
