// Package storage defines the provider-neutral model of tenant object storage:
// credentials, listing results, signed URL options, the credentials provider
// contract and the error taxonomy shared by storage clients.
//
// # Features
//
//   - Validated Credentials with optional session token, custom endpoint
//     and explicit path-style override
//   - CredentialsProvider contract keyed by tenant id, plus static and
//     YAML-file backed implementations
//   - Listing types (Object, ListResult) for delimiter-based pagination
//   - Key helpers: IsValidKey, SanitizeKey, GetMimeType, FormatBytes
//   - Sentinel errors for configuration, transport and parsing failures
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/objstore/core/storage"
//
//	creds, err := storage.NewCredentials("AKIA...", "secret", "eu-west-1", "acme-files",
//		storage.WithEndpoint("http://minio.internal:9000"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	provider := storage.NewStaticProvider(map[string]storage.Credentials{
//		"acme": *creds,
//	})
//
// # Credentials File
//
// LoadFileProvider reads tenants from YAML:
//
//	default: acme
//	tenants:
//	  acme:
//	    access_key_id: AKIA...
//	    secret_access_key: ...
//	    region: eu-west-1
//	    bucket: acme-files
//	  lab:
//	    access_key_id: minioadmin
//	    secret_access_key: minioadmin
//	    region: us-east-1
//	    bucket: lab
//	    endpoint: http://localhost:9000
//	    path_style: true
//
// # Key Helpers
//
//	storage.SanitizeKey("/a//b/c")  // "a/b/c"
//	storage.IsValidKey("")          // false
//	storage.GetMimeType("q1.CSV")   // "text/csv"
//	storage.FormatBytes(1536)       // "1.5 KiB"
//
// # Error Handling
//
//	_, err := client.ListObjects(ctx, tenantID, s3.ListObjectsInput{})
//	switch {
//	case errors.Is(err, storage.ErrNotConfigured):
//		// tenant has no storage configured
//	case errors.Is(err, storage.ErrAccessDenied):
//		// credentials rejected by the provider
//	case errors.Is(err, storage.ErrParseResponse):
//		// provider returned malformed XML
//	case errors.Is(err, storage.ErrRequestFailed):
//		// any other non-success HTTP status
//	}
package storage
