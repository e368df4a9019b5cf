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

const groupsCollection = "equipment_groups"

// GroupRepository implements ports.GroupRepository using MongoDB.
type GroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{coll: db.Collection(groupsCollection)}
}

type groupDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d groupDoc) toDomain() *domain.EquipmentGroup {
	return &domain.EquipmentGroup{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.EquipmentGroup) (*domain.EquipmentGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := groupDoc{Name: g.Name, UserID: g.UserID, CreatedAt: g.CreatedAt}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.EquipmentGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	var doc groupDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.EquipmentGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find groups: %w", err)
	}
	defer cur.Close(ctx)
	return decodeGroups(ctx, cur)
}

func (r *GroupRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.EquipmentGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)
	return decodeGroups(ctx, cur)
}

func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGroupNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by ListByOwner.
func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
	})
	return err
}

func decodeGroups(ctx context.Context, cur *mongo.Cursor) ([]*domain.EquipmentGroup, error) {
	var out []*domain.EquipmentGroup
	for cur.Next(ctx) {
		var doc groupDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
