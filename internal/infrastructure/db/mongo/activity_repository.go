package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

const activityCollection = "activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ActorID    string             `bson:"actor_id"`
	ActorEmail string             `bson:"actor_email"`
	Verb       string             `bson:"verb"`
	Entity     string             `bson:"entity"`
	EntityID   string             `bson:"entity_id"`
	At         time.Time          `bson:"at"`
}

func (d activityDoc) toDomain() domain.Activity {
	return domain.Activity{
		ID:         d.ID.Hex(),
		ActorID:    d.ActorID,
		ActorEmail: d.ActorEmail,
		Verb:       d.Verb,
		Entity:     d.Entity,
		EntityID:   d.EntityID,
		At:         d.At.UTC(),
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, a domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		ActorID:    a.ActorID,
		ActorEmail: a.ActorEmail,
		Verb:       a.Verb,
		Entity:     a.Entity,
		EntityID:   a.EntityID,
		At:         a.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Latest(ctx context.Context, limit int) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("latest activity: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Activity
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the timestamp index used by Latest.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "at", Value: -1}},
	})
	return err
}
