package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinica-api/internal/models"
	"clinica-api/internal/permissions"
	"clinica-api/pkg/memorydb"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PermissionStore is the persistence boundary for permission records.
type PermissionStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRecord, error)
	BulkReplace(ctx context.Context, userID uuid.UUID, records []models.PermissionRecord) error
}

// PermissionService resolves permission maps for users, with the
// administrator fast path and an optional per-user redis cache. Cache
// entries are keyed by user id, so a lookup for one user can never
// observe another user's grants no matter how requests interleave.
type PermissionService struct {
	store    PermissionStore
	cache    *memorydb.RedisClient // nil disables caching
	cacheTTL time.Duration
}

func NewPermissionService(store PermissionStore, cache *memorydb.RedisClient, cacheTTL time.Duration) *PermissionService {
	return &PermissionService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("permissions:%s", userID)
}

// RecordsForUser returns the stored permission records for a user,
// consulting the cache first. The administrator fast path does not
// apply here: stored records are what the admin edit UI manages.
func (s *PermissionService) RecordsForUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRecord, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(userID))
		if err == nil {
			var records []models.PermissionRecord
			if jsonErr := json.Unmarshal([]byte(raw), &records); jsonErr == nil {
				return records, nil
			}
			// Corrupt entry: fall through to the store.
			log.Warn().Str("user_id", userID.String()).Msg("Discarding unreadable permissions cache entry")
		} else if !memorydb.IsNotFound(err) {
			log.Warn().Err(err).Msg("Permissions cache read failed, falling back to store")
		}
	}

	records, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(records); jsonErr == nil {
			if err := s.cache.Set(ctx, cacheKey(userID), raw, s.cacheTTL); err != nil {
				log.Warn().Err(err).Msg("Permissions cache write failed")
			}
		}
	}

	return records, nil
}

// MapForUser resolves the permissions map that drives capability checks
// and navigation. Administrators get the synthesized full-access map
// without touching the store; everyone else gets a map built from their
// stored records. A store failure is returned as-is so callers can
// distinguish it from a legitimately empty grant set.
func (s *PermissionService) MapForUser(ctx context.Context, userID uuid.UUID, role permissions.Role) (permissions.Map, error) {
	if role.IsAdmin() {
		return permissions.BuildMap(role, nil, permissions.KnownModels), nil
	}

	records, err := s.RecordsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return permissions.BuildMap(role, ToCoreRecords(records), permissions.KnownModels), nil
}

// VisibleModules computes the navigation modules the user may see.
func (s *PermissionService) VisibleModules(ctx context.Context, userID uuid.UUID, role permissions.Role) ([]string, error) {
	m, err := s.MapForUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return permissions.VisibleModuleList(role, m, permissions.DefaultNavConfig), nil
}

// BulkUpdate replaces a user's stored grants and invalidates their
// cache entry. The replace is transactional: on failure the previous
// grants remain and the same payload can be retried.
func (s *PermissionService) BulkUpdate(ctx context.Context, userID uuid.UUID, records []models.PermissionRecord) error {
	if err := s.store.BulkReplace(ctx, userID, records); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *PermissionService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(userID)); err != nil {
		// The entry expires by TTL anyway; log and move on.
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Permissions cache invalidation failed")
	}
}

// ToCoreRecords converts wire records into the core's ingestion type.
func ToCoreRecords(records []models.PermissionRecord) []permissions.Record {
	out := make([]permissions.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, permissions.Record{Model: rec.Modelo, Methods: rec.MetodosPermitidos})
	}
	return out
}

// FromCoreRecords converts core records back into the wire shape.
func FromCoreRecords(records []permissions.Record) []models.PermissionRecord {
	out := make([]models.PermissionRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, models.PermissionRecord{Modelo: rec.Model, MetodosPermitidos: rec.Methods})
	}
	return out
}
