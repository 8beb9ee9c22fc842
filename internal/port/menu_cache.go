package port

import (
	"context"

	"carte/internal/domain"
)

// MenuCache memoizes extraction results by image content and target language.
// A miss is reported as (nil, false, nil).
type MenuCache interface {
	Get(ctx context.Context, key string) (*domain.ParsedMenu, bool, error)
	Set(ctx context.Context, key string, m *domain.ParsedMenu) error
	Ping(ctx context.Context) error
}
