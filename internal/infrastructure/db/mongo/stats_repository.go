package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// StatsRepository implements ports.StatsRepository with aggregation
// pipelines over the equipment and maintenance collections.
type StatsRepository struct {
	equipment   *mongo.Collection
	maintenance *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		equipment:   db.Collection(equipmentCollection),
		maintenance: db.Collection(maintenanceCollection),
	}
}

func (r *StatsRepository) CountEquipment(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.equipment.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountMaintenance(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.maintenance.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count maintenance: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) TopCreators(ctx context.Context, limit int) ([]ports.CreatorCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$user_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.maintenance.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top creators: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.CreatorCount
	for cur.Next(ctx) {
		var row struct {
			UserID string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode creator count: %w", err)
		}
		out = append(out, ports.CreatorCount{UserID: row.UserID, Count: row.Count})
	}
	return out, cur.Err()
}

func (r *StatsRepository) MaintenanceDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetProjection(bson.M{"date": 1})
	cur, err := r.maintenance.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("maintenance dates: %w", err)
	}
	defer cur.Close(ctx)

	var out []time.Time
	for cur.Next(ctx) {
		var row struct {
			Date time.Time `bson:"date"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode maintenance date: %w", err)
		}
		out = append(out, row.Date.UTC())
	}
	return out, cur.Err()
}

func (r *StatsRepository) EquipmentStatusCounts(ctx context.Context) ([]ports.StatusCount, error) {
	return statusCounts(ctx, r.equipment)
}

func (r *StatsRepository) MaintenanceStatusCounts(ctx context.Context) ([]ports.StatusCount, error) {
	return statusCounts(ctx, r.maintenance)
}

func statusCounts(ctx context.Context, coll *mongo.Collection) ([]ports.StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.StatusCount
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		out = append(out, ports.StatusCount{Status: row.Status, Count: row.Count})
	}
	return out, cur.Err()
}
