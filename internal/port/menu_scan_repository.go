package port

import (
	"context"

	"github.com/google/uuid"

	"carte/internal/domain"
)

// MenuScanRepository persists archived scans.
type MenuScanRepository interface {
	Create(ctx context.Context, scan *domain.MenuScan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error)
	List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error)
}
