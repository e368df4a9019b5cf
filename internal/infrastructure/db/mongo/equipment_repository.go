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

const equipmentCollection = "equipment"

// EquipmentRepository implements ports.EquipmentRepository using MongoDB.
type EquipmentRepository struct {
	coll *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{coll: db.Collection(equipmentCollection)}
}

type equipmentDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Type       string             `bson:"type"`
	Location   string             `bson:"location"`
	Status     string             `bson:"status"`
	AcquiredAt *time.Time         `bson:"acquired_at,omitempty"`
	GroupID    string             `bson:"group_id,omitempty"`
	UserID     string             `bson:"user_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func equipmentToDoc(e *domain.Equipment) equipmentDoc {
	return equipmentDoc{
		Name:       e.Name,
		Type:       e.Type,
		Location:   e.Location,
		Status:     string(e.Status),
		AcquiredAt: e.AcquiredAt,
		GroupID:    e.GroupID,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
	}
}

func (d equipmentDoc) toDomain() *domain.Equipment {
	return &domain.Equipment{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Type:       d.Type,
		Location:   d.Location,
		Status:     domain.EquipmentStatus(d.Status),
		AcquiredAt: d.AcquiredAt,
		GroupID:    d.GroupID,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := equipmentToDoc(e)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert equipment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEquipmentNotFound
	}

	var doc equipmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EquipmentRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	defer cur.Close(ctx)
	return decodeEquipment(ctx, cur)
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer cur.Close(ctx)
	return decodeEquipment(ctx, cur)
}

func (r *EquipmentRepository) Latest(ctx context.Context, limit int) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("latest equipment: %w", err)
	}
	defer cur.Close(ctx)
	return decodeEquipment(ctx, cur)
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return nil, domain.ErrEquipmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        e.Name,
		"type":        e.Type,
		"location":    e.Location,
		"status":      string(e.Status),
		"acquired_at": e.AcquiredAt,
		"group_id":    e.GroupID,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update equipment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEquipmentNotFound
	}
	return e, nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEquipmentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, fmt.Errorf("count equipment by group: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the supporting indexes on the equipment collection.
func (r *EquipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeEquipment(ctx context.Context, cur *mongo.Cursor) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for cur.Next(ctx) {
		var doc equipmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode equipment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
