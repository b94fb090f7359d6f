package service

import (
	"context"
	"encoding/json"
	"time"

	"grantscan/internal/engine"
	"grantscan/internal/models"
	"grantscan/pkg/cache"
	"grantscan/pkg/metrics"

	"go.uber.org/zap"
)

const catalogCacheKey = "grantscan:catalog"

// CatalogRepository loads the active grant catalog from storage.
type CatalogRepository interface {
	ListActive(ctx context.Context) ([]*models.Grant, error)
}

// CatalogService serves the normalized grant catalog, caching the snapshot
// in Redis so every scan does not hit Postgres.
type CatalogService struct {
	repo     CatalogRepository
	cache    *cache.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewCatalogService(repo CatalogRepository, cacheClient *cache.Client, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Snapshot returns the active catalog in engine form. Cache failures are
// logged and degrade to a database load; this only errors when the
// database load itself fails.
func (s *CatalogService) Snapshot(ctx context.Context) ([]engine.Grant, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, catalogCacheKey)
		if err == nil {
			var grants []engine.Grant
			if err := json.Unmarshal([]byte(cached), &grants); err == nil {
				metrics.CatalogCacheHits.Inc()
				return grants, nil
			}
			s.logger.Warn("Corrupt catalog cache entry, reloading", zap.Error(err))
		} else if !cache.IsMiss(err) {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		}
	}
	metrics.CatalogCacheMisses.Inc()

	stored, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	grants := make([]engine.Grant, 0, len(stored))
	for _, g := range stored {
		grants = append(grants, g.Engine())
	}

	if s.cache != nil {
		if payload, err := json.Marshal(grants); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, payload, s.cacheTTL); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}

	return grants, nil
}

// Invalidate drops the cached snapshot, forcing the next Snapshot call to
// reload from the database. Used after reseeding the catalog.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
