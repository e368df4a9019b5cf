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

const attachmentsCollection = "attachments"

// AttachmentRepository implements ports.AttachmentRepository using MongoDB.
type AttachmentRepository struct {
	coll *mongo.Collection
}

func NewAttachmentRepository(db *mongo.Database) *AttachmentRepository {
	return &AttachmentRepository{coll: db.Collection(attachmentsCollection)}
}

type attachmentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	MaintenanceID string             `bson:"maintenance_id"`
	Filename      string             `bson:"filename"`
	ContentType   string             `bson:"content_type"`
	Size          int64              `bson:"size"`
	StorageKey    string             `bson:"storage_key"`
	UploadedAt    time.Time          `bson:"uploaded_at"`
}

func (d attachmentDoc) toDomain() *domain.Attachment {
	return &domain.Attachment{
		ID:            d.ID.Hex(),
		MaintenanceID: d.MaintenanceID,
		Filename:      d.Filename,
		ContentType:   d.ContentType,
		Size:          d.Size,
		StorageKey:    d.StorageKey,
		UploadedAt:    d.UploadedAt.UTC(),
	}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *domain.Attachment) (*domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := attachmentDoc{
		MaintenanceID: a.MaintenanceID,
		Filename:      a.Filename,
		ContentType:   a.ContentType,
		Size:          a.Size,
		StorageKey:    a.StorageKey,
		UploadedAt:    a.UploadedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAttachmentNotFound
	}

	var doc attachmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AttachmentRepository) ListByMaintenance(ctx context.Context, maintenanceID string) ([]*domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"maintenance_id": maintenanceID},
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Attachment
	for cur.Next(ctx) {
		var doc attachmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attachment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAttachmentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAttachmentNotFound
	}
	return nil
}

// EnsureIndexes creates the maintenance_id index used by ListByMaintenance.
func (r *AttachmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "maintenance_id", Value: 1}},
	})
	return err
}
