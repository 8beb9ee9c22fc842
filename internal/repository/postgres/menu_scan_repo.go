package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carte/internal/domain"
	"carte/internal/port"
)

type menuScanRepo struct {
	db *sqlx.DB
}

// NewMenuScanRepo creates a new PostgreSQL-backed MenuScanRepository.
func NewMenuScanRepo(db *sqlx.DB) port.MenuScanRepository {
	return &menuScanRepo{db: db}
}

func (r *menuScanRepo) Create(ctx context.Context, scan *domain.MenuScan) error {
	scan.CreatedAt = time.Now().UTC()

	query := `INSERT INTO menu_scans
		(id, language, original_language, page_count, image_keys, menu, created_at)
		VALUES (:id, :language, :original_language, :page_count, :image_keys, :menu, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, scan); err != nil {
		return fmt.Errorf("menuScanRepo.Create: %w", err)
	}
	return nil
}

func (r *menuScanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	var scan domain.MenuScan
	err := r.db.GetContext(ctx, &scan, "SELECT * FROM menu_scans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScanNotFound
		}
		return nil, fmt.Errorf("menuScanRepo.GetByID: %w", err)
	}
	return &scan, nil
}

func (r *menuScanRepo) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM menu_scans"); err != nil {
		return nil, 0, fmt.Errorf("menuScanRepo.List count: %w", err)
	}

	scans := []domain.MenuScan{}
	err := r.db.SelectContext(ctx, &scans,
		`SELECT id, language, original_language, page_count, image_keys, '{}'::jsonb AS menu, created_at
		 FROM menu_scans ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("menuScanRepo.List: %w", err)
	}
	return scans, total, nil
}
