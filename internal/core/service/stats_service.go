package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// Query parameter bounds. Out-of-range values are clamped, never rejected,
// so no endpoint accepts an unbounded fan-out.
const (
	minTrendDays     = 1
	maxTrendDays     = 180
	defaultTrendDays = 30
	minLimit         = 1
	maxLimit         = 50
	defaultLimit     = 5
)

const dayFormat = "2006-01-02"

// StatsCache abstracts the response cache (Redis). Implementations swallow
// their own errors; a cache miss and a cache failure look the same here.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// StatsService computes the read-only reporting views, caching each result
// for a short TTL.
type StatsService struct {
	stats       ports.StatsRepository
	users       ports.UserRepository
	equipment   ports.EquipmentRepository
	maintenance ports.MaintenanceRepository
	groups      ports.GroupRepository
	activity    ports.ActivityRepository
	cache       StatsCache
	log         zerolog.Logger
}

func NewStatsService(
	stats ports.StatsRepository,
	users ports.UserRepository,
	equipment ports.EquipmentRepository,
	maintenance ports.MaintenanceRepository,
	groups ports.GroupRepository,
	activity ports.ActivityRepository,
	cache StatsCache,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		stats:       stats,
		users:       users,
		equipment:   equipment,
		maintenance: maintenance,
		groups:      groups,
		activity:    activity,
		cache:       cache,
		log:         log,
	}
}

func (s *StatsService) TotalEquipment(ctx context.Context) (int64, error) {
	return fetchCached(ctx, s.cache, "stats:total-equipment", func() (int64, error) {
		return s.stats.CountEquipment(ctx)
	})
}

func (s *StatsService) TotalMaintenance(ctx context.Context) (int64, error) {
	return fetchCached(ctx, s.cache, "stats:total-maintenance", func() (int64, error) {
		return s.stats.CountMaintenance(ctx)
	})
}

func (s *StatsService) TopCreators(ctx context.Context, limit int) ([]ports.CreatorStat, error) {
	limit = clampLimit(limit)
	key := fmt.Sprintf("stats:top-creators:%d", limit)
	return fetchCached(ctx, s.cache, key, func() ([]ports.CreatorStat, error) {
		counts, err := s.stats.TopCreators(ctx, limit)
		if err != nil {
			return nil, err
		}

		ids := make([]string, len(counts))
		for i, c := range counts {
			ids[i] = c.UserID
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*domain.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}

		out := make([]ports.CreatorStat, len(counts))
		for i, c := range counts {
			stat := ports.CreatorStat{UserID: c.UserID, Count: c.Count, Name: "unknown"}
			if u := byID[c.UserID]; u != nil {
				stat.Name = u.Name
				stat.Email = u.Email
			}
			out[i] = stat
		}
		return out, nil
	})
}

// MaintenanceTrend buckets records per day over the clamped window,
// zero-filling days with no activity.
func (s *StatsService) MaintenanceTrend(ctx context.Context, days int) ([]ports.TrendBucket, error) {
	days = clampInt(days, minTrendDays, maxTrendDays)
	key := fmt.Sprintf("stats:maintenance-trend:%d", days)
	return fetchCached(ctx, s.cache, key, func() ([]ports.TrendBucket, error) {
		now := time.Now().UTC()
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
		start := end.AddDate(0, 0, -(days - 1))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

		dates, err := s.stats.MaintenanceDatesBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}

		counts := make(map[string]int64, days)
		buckets := make([]ports.TrendBucket, days)
		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i).Format(dayFormat)
			counts[day] = 0
			buckets[i] = ports.TrendBucket{Day: day}
		}
		for _, d := range dates {
			day := d.UTC().Format(dayFormat)
			if _, ok := counts[day]; ok {
				counts[day]++
			}
		}
		for i := range buckets {
			buckets[i].Count = counts[buckets[i].Day]
		}
		return buckets, nil
	})
}

func (s *StatsService) LatestMaintenance(ctx context.Context, limit int) ([]ports.LatestMaintenanceItem, error) {
	limit = clampLimit(limit)
	key := fmt.Sprintf("stats:latest-maintenance:%d", limit)
	return fetchCached(ctx, s.cache, key, func() ([]ports.LatestMaintenanceItem, error) {
		records, err := s.maintenance.Latest(ctx, limit)
		if err != nil {
			return nil, err
		}

		userIDs := make([]string, 0, len(records))
		equipmentIDs := make([]string, 0, len(records))
		for _, m := range records {
			userIDs = append(userIDs, m.UserID)
			equipmentIDs = append(equipmentIDs, m.EquipmentID)
		}
		users, err := s.users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		equipment, err := s.equipment.FindByIDs(ctx, equipmentIDs)
		if err != nil {
			return nil, err
		}
		userByID := make(map[string]*domain.User, len(users))
		for _, u := range users {
			userByID[u.ID] = u
		}
		equipmentByID := make(map[string]*domain.Equipment, len(equipment))
		for _, e := range equipment {
			equipmentByID[e.ID] = e
		}

		out := make([]ports.LatestMaintenanceItem, len(records))
		for i, m := range records {
			item := ports.LatestMaintenanceItem{Maintenance: *m}
			if u := userByID[m.UserID]; u != nil {
				item.UserName = u.Name
				item.UserEmail = u.Email
			}
			if e := equipmentByID[m.EquipmentID]; e != nil {
				item.EquipmentName = e.Name
			}
			out[i] = item
		}
		return out, nil
	})
}

func (s *StatsService) LatestEquipment(ctx context.Context, limit int) ([]ports.LatestEquipmentItem, error) {
	limit = clampLimit(limit)
	key := fmt.Sprintf("stats:latest-equipment:%d", limit)
	return fetchCached(ctx, s.cache, key, func() ([]ports.LatestEquipmentItem, error) {
		records, err := s.equipment.Latest(ctx, limit)
		if err != nil {
			return nil, err
		}

		userIDs := make([]string, 0, len(records))
		groupIDs := make([]string, 0, len(records))
		for _, e := range records {
			userIDs = append(userIDs, e.UserID)
			if e.GroupID != "" {
				groupIDs = append(groupIDs, e.GroupID)
			}
		}
		users, err := s.users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		userByID := make(map[string]*domain.User, len(users))
		for _, u := range users {
			userByID[u.ID] = u
		}
		groupByID := make(map[string]*domain.EquipmentGroup)
		if len(groupIDs) > 0 {
			groups, err := s.groups.FindByIDs(ctx, groupIDs)
			if err != nil {
				return nil, err
			}
			for _, g := range groups {
				groupByID[g.ID] = g
			}
		}

		out := make([]ports.LatestEquipmentItem, len(records))
		for i, e := range records {
			item := ports.LatestEquipmentItem{Equipment: *e}
			if u := userByID[e.UserID]; u != nil {
				item.UserName = u.Name
				item.UserEmail = u.Email
			}
			if g := groupByID[e.GroupID]; g != nil {
				item.GroupName = g.Name
			}
			out[i] = item
		}
		return out, nil
	})
}

func (s *StatsService) EquipmentByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	return fetchCached(ctx, s.cache, "stats:equipment-by-status", func() ([]ports.StatusCount, error) {
		return s.stats.EquipmentStatusCounts(ctx)
	})
}

func (s *StatsService) MaintenanceByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	return fetchCached(ctx, s.cache, "stats:maintenance-by-status", func() ([]ports.StatusCount, error) {
		return s.stats.MaintenanceStatusCounts(ctx)
	})
}

// RecentActivity is served straight from the repository: the feed should
// reflect writes immediately.
func (s *StatsService) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	return s.activity.Latest(ctx, clampLimit(limit))
}

// fetchCached serves key from cache when present, otherwise loads and stores.
func fetchCached[T any](ctx context.Context, cache StatsCache, key string, load func() (T, error)) (T, error) {
	var zero T
	if payload, ok := cache.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(payload, &v); err == nil {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return zero, err
	}
	if payload, err := json.Marshal(v); err == nil {
		cache.Set(ctx, key, payload)
	}
	return v, nil
}

func clampLimit(v int) int {
	if v == 0 {
		v = defaultLimit
	}
	return clampInt(v, minLimit, maxLimit)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
