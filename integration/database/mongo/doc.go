// Package mongo connects to MongoDB and serves tenant storage credentials
// from a collection.
//
// New connects with retries and verifies the primary with a ping; Healthcheck
// returns a readiness probe. CredentialsProvider looks tenants up by _id, with
// the credential fields stored inline:
//
//	{
//		"_id": "acme",
//		"access_key_id": "AKIA...",
//		"secret_access_key": "...",
//		"region": "eu-west-1",
//		"bucket": "acme-files"
//	}
//
// Usage:
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect(ctx)
//
//	provider := mongo.NewCredentialsProviderFromClient(client, cfg)
package mongo
