package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"go.uber.org/zap"
)

const catalogURLExpiry = time.Hour

// ObjectStore is the part of the S3 client the exporter needs
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// CatalogSnapshot is the exported document
type CatalogSnapshot struct {
	ExportedAt  time.Time                      `json:"exported_at"`
	Units       []models.Unit                  `json:"units"`
	Conversions []types.UnitConversionResponse `json:"conversions"`
}

// CatalogService exports the unit catalog as JSON to object storage
type CatalogService struct {
	units repository.UnitRepository
	store ObjectStore
	now   func() time.Time
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(units repository.UnitRepository, store ObjectStore) *CatalogService {
	return &CatalogService{
		units: units,
		store: store,
		now:   time.Now,
	}
}

// Export uploads a snapshot of all units and generic conversions
func (s *CatalogService) Export(ctx context.Context) (*types.CatalogExportResponse, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	units, err := s.units.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	convs, err := s.units.ListConversions(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}

	now := s.now().UTC()
	snapshot := CatalogSnapshot{
		ExportedAt:  now,
		Units:       units,
		Conversions: make([]types.UnitConversionResponse, 0, len(convs)),
	}
	for _, c := range convs {
		snapshot.Conversions = append(snapshot.Conversions, types.NewUnitConversionResponse(c))
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	key := fmt.Sprintf("catalog/%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString())
	if err := s.store.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload catalog: %w", err)
	}

	resp := &types.CatalogExportResponse{
		Key:       key,
		UnitCount: len(units),
		RuleCount: len(convs),
	}
	url, err := s.store.PresignedURL(ctx, key, catalogURLExpiry)
	if err != nil {
		logger.Warn("failed to presign catalog url", zap.String("key", key), zap.Error(err))
	} else {
		resp.DownloadURL = url
	}
	return resp, nil
}
