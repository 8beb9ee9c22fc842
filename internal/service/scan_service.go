package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/port"
)

// ScanView is an archived scan with short-lived image links.
type ScanView struct {
	domain.MenuScan
	ImageURLs []string `json:"image_urls"`
}

// ScanService archives extracted menus with their page images.
type ScanService interface {
	Archive(ctx context.Context, pages []domain.ImagePayload, menu *domain.ParsedMenu, language string) (*domain.MenuScan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ScanView, error)
	List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error)
	Retranslate(ctx context.Context, id uuid.UUID, language string) (*domain.MenuScan, *domain.ParsedMenu, error)
}

type scanService struct {
	repo       port.MenuScanRepository
	archive    port.ImageArchive
	extraction ExtractionService
	cfg        *config.S3Config
	logger     *zap.Logger
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	repo port.MenuScanRepository,
	archive port.ImageArchive,
	extraction ExtractionService,
	cfg *config.S3Config,
	logger *zap.Logger,
) ScanService {
	return &scanService{
		repo:       repo,
		archive:    archive,
		extraction: extraction,
		cfg:        cfg,
		logger:     logger,
	}
}

// PageKey is the archive key of a scan page. page is 1-based.
func PageKey(scanID uuid.UUID, page int, mediaType string) string {
	ext, ok := domain.SupportedMediaTypes[mediaType]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("scans/%s/page-%d.%s", scanID, page, ext)
}

func (s *scanService) Archive(ctx context.Context, pages []domain.ImagePayload, menu *domain.ParsedMenu, language string) (*domain.MenuScan, error) {
	scanID := uuid.New()
	keys := make([]string, 0, len(pages))
	for i, page := range pages {
		key := PageKey(scanID, i+1, page.MediaType)
		if _, err := s.archive.Put(ctx, key, page); err != nil {
			s.logger.Error("scan page upload failed", zap.String("scan_id", scanID.String()), zap.String("key", key), zap.Error(err))
			s.discard(ctx, keys)
			return nil, domain.ErrUploadFailed
		}
		keys = append(keys, key)
	}
	scan, err := s.save(ctx, scanID, keys, menu, language)
	if err != nil {
		s.discard(ctx, keys)
		return nil, err
	}
	return scan, nil
}

// discard removes pages of a scan that was never recorded.
func (s *scanService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.archive.Delete(ctx, key); err != nil {
			s.logger.Warn("orphaned scan page", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *scanService) save(ctx context.Context, scanID uuid.UUID, keys []string, menu *domain.ParsedMenu, language string) (*domain.MenuScan, error) {
	keysJSON, err := json.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("encoding image keys: %w", err)
	}
	menuJSON, err := json.Marshal(menu)
	if err != nil {
		return nil, fmt.Errorf("encoding menu: %w", err)
	}

	scan := &domain.MenuScan{
		ID:               scanID,
		Language:         language,
		OriginalLanguage: menu.OriginalLanguage,
		PageCount:        len(keys),
		ImageKeys:        keysJSON,
		Menu:             menuJSON,
	}
	if err := s.repo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("creating menu scan: %w", err)
	}
	s.logger.Info("menu scan archived", zap.String("scan_id", scanID.String()), zap.Int("pages", len(keys)))
	return scan, nil
}

func (s *scanService) GetByID(ctx context.Context, id uuid.UUID) (*ScanView, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	keys, err := scanKeys(scan)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(s.cfg.PresignExpiry) * time.Second
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := s.archive.PresignGet(ctx, key, expiry)
		if err != nil {
			return nil, fmt.Errorf("presigning %s: %w", key, err)
		}
		urls = append(urls, url)
	}
	return &ScanView{MenuScan: *scan, ImageURLs: urls}, nil
}

func (s *scanService) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Retranslate extracts the archived pages of a scan again in another
// language and stores the result as a new scan over the same images.
func (s *scanService) Retranslate(ctx context.Context, id uuid.UUID, language string) (*domain.MenuScan, *domain.ParsedMenu, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	keys, err := scanKeys(scan)
	if err != nil {
		return nil, nil, err
	}

	pages := make([]domain.ImagePayload, 0, len(keys))
	for _, key := range keys {
		img, err := s.archive.Get(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", key, err)
		}
		pages = append(pages, *img)
	}

	menu, err := s.extraction.ExtractPages(ctx, pages, language)
	if err != nil {
		return nil, nil, err
	}
	created, err := s.save(ctx, uuid.New(), keys, menu, language)
	if err != nil {
		return nil, nil, err
	}
	return created, menu, nil
}

func scanKeys(scan *domain.MenuScan) ([]string, error) {
	var keys []string
	if len(scan.ImageKeys) == 0 {
		return keys, nil
	}
	if err := json.Unmarshal(scan.ImageKeys, &keys); err != nil {
		return nil, fmt.Errorf("decoding image keys of scan %s: %w", scan.ID, err)
	}
	return keys, nil
}
