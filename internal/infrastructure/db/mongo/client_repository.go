package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

const clientsCollection = "clients"

// ClientRepository is the Mongo-backed credential store. It implements the
// same contract as the in-memory adapter; the silent no-op semantics for
// unknown ids carry over (UpdateOne matching zero documents is not an
// error).
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

type mongoClient struct {
	ID                string     `bson:"_id"`
	Name              string     `bson:"name"`
	Password          string     `bson:"password"`
	ViewableClientIDs []string   `bson:"viewable_client_ids"`
	ContractType      string     `bson:"contract_type"`
	LastLogin         *time.Time `bson:"last_login,omitempty"`
	CreatedAt         time.Time  `bson:"created_at"`
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	var mc mongoClient
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) FindByName(ctx context.Context, name string) (*domain.Client, error) {
	// Case-insensitive exact equality via collation strength 2.
	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})
	var mc mongoClient
	if err := r.coll.FindOne(ctx, bson.M{"name": name}, opts).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by name: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Client
	for cur.Next(ctx) {
		var mc mongoClient
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	doc := mongoClient{
		ID:                client.ID,
		Name:              client.Name,
		Password:          client.Password,
		ViewableClientIDs: client.ViewableClientIDs,
		ContractType:      string(client.ContractType),
		LastLogin:         client.LastLogin,
		CreatedAt:         client.CreatedAt,
	}
	if doc.ViewableClientIDs == nil {
		doc.ViewableClientIDs = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, id string, upd ports.ClientUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.ContractType != nil {
		set["contract_type"] = string(*upd.ContractType)
	}
	if len(set) == 0 {
		return nil
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepository) SetPermissions(ctx context.Context, id string, viewableIDs []string) error {
	if viewableIDs == nil {
		viewableIDs = []string{}
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"viewable_client_ids": viewableIDs}})
	if err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	return nil
}

func (r *ClientRepository) RecordLogin(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func (mc *mongoClient) toDomain() *domain.Client {
	ids := mc.ViewableClientIDs
	if ids == nil {
		ids = []string{}
	}
	return &domain.Client{
		ID:                mc.ID,
		Name:              mc.Name,
		Password:          mc.Password,
		ViewableClientIDs: ids,
		ContractType:      domain.ContractType(mc.ContractType),
		LastLogin:         mc.LastLogin,
		CreatedAt:         mc.CreatedAt,
	}
}
