package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestordoc/docportal/internal/core/domain"
)

const documentsCollection = "documents"

// DocumentRepository is the Mongo-backed document store. Sorting by
// upload_date descending reproduces the newest-first store order of the
// in-memory adapter.
type DocumentRepository struct {
	coll *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(documentsCollection)}
}

func (r *DocumentRepository) Append(ctx context.Context, doc *domain.DocumentRecord) error {
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	var doc domain.DocumentRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*domain.DocumentRecord, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"client_id": bson.M{"$in": ownerIDs}})
}

func (r *DocumentRepository) ListAll(ctx context.Context) ([]*domain.DocumentRecord, error) {
	return r.list(ctx, bson.M{})
}

func (r *DocumentRepository) list(ctx context.Context, filter bson.M) ([]*domain.DocumentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "upload_date", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.DocumentRecord
	for cur.Next(ctx) {
		var doc domain.DocumentRecord
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, &doc)
	}
	return out, cur.Err()
}
