package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/objstore/core/storage"
	"github.com/dmitrymomot/objstore/integration/database/mongo"
)

type fakeCollection struct {
	docs       map[string]bson.D
	findErr    error
	replaced   []any
	replaceErr error
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...options.Lister[options.FindOneOptions]) *driver.SingleResult {
	if f.findErr != nil {
		return driver.NewSingleResultFromDocument(bson.D{}, f.findErr, nil)
	}
	id := filter.(bson.D)[0].Value.(string)
	doc, ok := f.docs[id]
	if !ok {
		return driver.NewSingleResultFromDocument(bson.D{}, driver.ErrNoDocuments, nil)
	}
	return driver.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) ReplaceOne(_ context.Context, _ any, replacement any, _ ...options.Lister[options.ReplaceOptions]) (*driver.UpdateResult, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	f.replaced = append(f.replaced, replacement)
	return &driver.UpdateResult{UpsertedCount: 1}, nil
}

func TestCredentialsProvider_Get(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{docs: map[string]bson.D{
		"acme": {
			{Key: "_id", Value: "acme"},
			{Key: "access_key_id", Value: "ak"},
			{Key: "secret_access_key", Value: "sk"},
			{Key: "region", Value: "eu-west-1"},
			{Key: "bucket", Value: "acme-files"},
			{Key: "endpoint", Value: "http://minio:9000"},
			{Key: "path_style", Value: false},
		},
	}}
	p := mongo.NewCredentialsProvider(coll)

	c, err := p.GetS3Credentials(context.Background(), "acme")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "ak", c.AccessKeyID)
	assert.Equal(t, "sk", c.SecretAccessKey)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, "acme-files", c.Bucket)
	assert.Equal(t, "http://minio:9000", c.Endpoint)
	require.NotNil(t, c.PathStyle)
	assert.False(t, *c.PathStyle)
	assert.Empty(t, c.SessionToken)

	c, err = p.GetS3Credentials(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCredentialsProvider_GetError(t *testing.T) {
	t.Parallel()

	boom := errors.New("server selection timeout")
	p := mongo.NewCredentialsProvider(&fakeCollection{findErr: boom})

	_, err := p.GetS3Credentials(context.Background(), "acme")
	require.ErrorIs(t, err, boom)
}

func TestCredentialsProvider_Save(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{}
	p := mongo.NewCredentialsProvider(coll)
	creds, err := storage.NewCredentials("ak", "sk", "us-east-1", "b")
	require.NoError(t, err)

	require.NoError(t, p.SaveCredentials(context.Background(), "acme", creds))
	require.Len(t, coll.replaced, 1)

	raw, err := bson.Marshal(coll.replaced[0])
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "acme", doc["_id"])
	assert.Equal(t, "ak", doc["access_key_id"])
	assert.Equal(t, "b", doc["bucket"])
	assert.NotContains(t, doc, "session_token")

	require.ErrorIs(t, p.SaveCredentials(context.Background(), "", creds), storage.ErrInvalidConfig)
	require.ErrorIs(t, p.SaveCredentials(context.Background(), "acme", &storage.Credentials{}), storage.ErrInvalidCredentials)

	coll.replaceErr = errors.New("not primary")
	require.ErrorIs(t, p.SaveCredentials(context.Background(), "acme", creds), coll.replaceErr)
}
