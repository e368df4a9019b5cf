package ports

import (
	"context"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// CreatorCount is one row of the maintenance group-by on the creating user.
type CreatorCount struct {
	UserID string
	Count  int64
}

// StatusCount is one row of a status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatsRepository provides the read-only aggregations behind the stats
// endpoints.
type StatsRepository interface {
	CountEquipment(ctx context.Context) (int64, error)
	CountMaintenance(ctx context.Context) (int64, error)
	// TopCreators groups maintenance records by creating user, descending count.
	TopCreators(ctx context.Context, limit int) ([]CreatorCount, error)
	// MaintenanceDatesBetween returns the dates of records within [from, to].
	MaintenanceDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	EquipmentStatusCounts(ctx context.Context) ([]StatusCount, error)
	MaintenanceStatusCounts(ctx context.Context) ([]StatusCount, error)
}

// CreatorStat is a top-creators row with user identity resolved.
type CreatorStat struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Count  int64  `json:"count"`
}

// TrendBucket is one zero-filled day bucket of the maintenance trend.
type TrendBucket struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// LatestMaintenanceItem is a recent maintenance record with names resolved.
type LatestMaintenanceItem struct {
	Maintenance   domain.Maintenance `json:"maintenance"`
	UserName      string             `json:"user_name"`
	UserEmail     string             `json:"user_email"`
	EquipmentName string             `json:"equipment_name"`
}

// LatestEquipmentItem is a recently created equipment row with names resolved.
type LatestEquipmentItem struct {
	Equipment domain.Equipment `json:"equipment"`
	UserName  string           `json:"user_name"`
	UserEmail string           `json:"user_email"`
	GroupName string           `json:"group_name,omitempty"`
}

// StatsService exposes the read-only reporting views.
type StatsService interface {
	TotalEquipment(ctx context.Context) (int64, error)
	TotalMaintenance(ctx context.Context) (int64, error)
	TopCreators(ctx context.Context, limit int) ([]CreatorStat, error)
	// MaintenanceTrend returns one zero-filled bucket per day, chronological.
	// days is clamped to [1, 180].
	MaintenanceTrend(ctx context.Context, days int) ([]TrendBucket, error)
	LatestMaintenance(ctx context.Context, limit int) ([]LatestMaintenanceItem, error)
	LatestEquipment(ctx context.Context, limit int) ([]LatestEquipmentItem, error)
	EquipmentByStatus(ctx context.Context) ([]StatusCount, error)
	MaintenanceByStatus(ctx context.Context) ([]StatusCount, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error)
}
