package storage

import "errors"

// Domain errors for object storage operations.
// Use errors.Is() to classify failures returned by storage clients.
var (
	// Configuration errors
	ErrNotConfigured      = errors.New("object storage is not configured for tenant")
	ErrInvalidCredentials = errors.New("invalid storage credentials")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrInvalidEndpoint    = errors.New("invalid storage endpoint")

	// Request errors
	ErrInvalidMethod = errors.New("unsupported method for signed url")
	ErrInvalidKey    = errors.New("invalid object key")

	// Transport errors
	ErrRequestFailed      = errors.New("storage request failed")
	ErrFileNotFound       = errors.New("file not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrSignatureMismatch  = errors.New("request signature rejected")
	ErrServiceUnavailable = errors.New("storage service unavailable")

	// Parsing errors
	ErrParseResponse = errors.New("failed to parse storage response")
)
