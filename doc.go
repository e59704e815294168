// Package objstore is a multi-tenant client for S3-compatible object storage
// that signs requests with AWS Signature Version 4 without the AWS service SDK.
//
// The module is organized in layers:
//
//   - core/sigv4: canonical requests, signing keys, presigned and header signatures
//   - core/storage: credentials, provider contracts, listing types, errors and key helpers
//   - integration/storage/s3: the Client (GenerateSignedURL, ListObjects, DeleteObject)
//   - integration/database/{pg,mongo,redis}: credentials providers and a Redis cache
//   - cmd/objstore: a command line client
//
// Minimal example:
//
//	creds, _ := storage.NewCredentials(accessKey, secretKey, "us-east-1", "uploads")
//	client, _ := s3.New(storage.NewSingleTenantProvider(*creds))
//	url, err := client.GenerateSignedURL(ctx, "acme", "avatars/42.png", "PUT", nil)
package objstore
