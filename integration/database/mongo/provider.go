package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/objstore/core/storage"
)

// Collection is the subset of *mongo.Collection used by CredentialsProvider.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
}

// credentialsDocument is one tenant's entry; the credential fields are inlined.
type credentialsDocument struct {
	TenantID    string              `bson:"_id"`
	Credentials storage.Credentials `bson:",inline"`
}

// CredentialsProvider reads tenant credentials from a collection keyed by tenant id.
type CredentialsProvider struct {
	coll Collection
}

// NewCredentialsProvider creates a provider over coll.
func NewCredentialsProvider(coll Collection) *CredentialsProvider {
	return &CredentialsProvider{coll: coll}
}

// NewCredentialsProviderFromClient uses the database and collection named in cfg.
func NewCredentialsProviderFromClient(client *mongo.Client, cfg Config) *CredentialsProvider {
	return NewCredentialsProvider(client.Database(cfg.Database).Collection(cfg.Collection))
}

// GetS3Credentials implements storage.CredentialsProvider.
// An unknown tenant yields (nil, nil).
func (p *CredentialsProvider) GetS3Credentials(ctx context.Context, tenantID string) (*storage.Credentials, error) {
	var doc credentialsDocument
	err := p.coll.FindOne(ctx, bson.D{{Key: "_id", Value: tenantID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load storage credentials: %w", err)
	}
	return &doc.Credentials, nil
}

// SaveCredentials validates and upserts credentials for tenantID.
func (p *CredentialsProvider) SaveCredentials(ctx context.Context, tenantID string, c *storage.Credentials) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenant id is required", storage.ErrInvalidConfig)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := p.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: tenantID}},
		credentialsDocument{TenantID: tenantID, Credentials: *c},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save storage credentials: %w", err)
	}
	return nil
}
