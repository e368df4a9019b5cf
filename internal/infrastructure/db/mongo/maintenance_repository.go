package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

const maintenanceCollection = "maintenance_records"

// MaintenanceRepository implements ports.MaintenanceRepository using MongoDB.
type MaintenanceRepository struct {
	coll *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{coll: db.Collection(maintenanceCollection)}
}

type maintenanceDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Date        time.Time          `bson:"date"`
	EquipmentID string             `bson:"equipment_id"`
	Status      string             `bson:"status"`
	Notes       string             `bson:"notes,omitempty"`
	UserID      string             `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d maintenanceDoc) toDomain() *domain.Maintenance {
	return &domain.Maintenance{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Date:        d.Date.UTC(),
		EquipmentID: d.EquipmentID,
		Status:      domain.MaintenanceStatus(d.Status),
		Notes:       d.Notes,
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := maintenanceDoc{
		Name:        m.Name,
		Date:        m.Date,
		EquipmentID: m.EquipmentID,
		Status:      string(m.Status),
		Notes:       m.Notes,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert maintenance: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMaintenanceNotFound
	}

	var doc maintenanceDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("find maintenance: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer cur.Close(ctx)
	return decodeMaintenance(ctx, cur)
}

func (r *MaintenanceRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"equipment_id": equipmentID}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list maintenance by equipment: %w", err)
	}
	defer cur.Close(ctx)
	return decodeMaintenance(ctx, cur)
}

func (r *MaintenanceRepository) Latest(ctx context.Context, limit int) ([]*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("latest maintenance: %w", err)
	}
	defer cur.Close(ctx)
	return decodeMaintenance(ctx, cur)
}

func (r *MaintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return nil, domain.ErrMaintenanceNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":         m.Name,
		"date":         m.Date,
		"equipment_id": m.EquipmentID,
		"status":       string(m.Status),
		"notes":        m.Notes,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update maintenance: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMaintenanceNotFound
	}
	return m, nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMaintenanceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMaintenanceNotFound
	}
	return nil
}

// EnsureIndexes creates the supporting indexes on the maintenance collection.
func (r *MaintenanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "equipment_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeMaintenance(ctx context.Context, cur *mongo.Cursor) ([]*domain.Maintenance, error) {
	var out []*domain.Maintenance
	for cur.Next(ctx) {
		var doc maintenanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode maintenance: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
