package storage

import "time"

// DefaultSignedURLExpiry is used when SignedURLOptions.ExpiresIn is zero.
const DefaultSignedURLExpiry = time.Hour

// DefaultMaxKeys is the page size of a listing when none is requested.
const DefaultMaxKeys = 100

// Object is a leaf entry of a listing.
type Object struct {
	Key          string    `json:"key"`
	Size         uint64    `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
	// IsDirectory is always false for listing contents; directories are
	// reported through ListResult.Prefixes.
	IsDirectory bool `json:"is_directory"`
}

// ListResult is one page of a delimiter-based listing.
// When IsTruncated is true, ContinuationToken fetches the next page.
type ListResult struct {
	Objects           []Object `json:"objects"`
	Prefixes          []string `json:"prefixes"`
	ContinuationToken string   `json:"continuation_token,omitempty"`
	IsTruncated       bool     `json:"is_truncated"`
}

// SignedURLOptions control a presigned URL.
type SignedURLOptions struct {
	// ExpiresIn is truncated to whole seconds. Zero means DefaultSignedURLExpiry.
	// The provider maximum (7 days on AWS) is enforced by the provider, not here.
	ExpiresIn time.Duration
	// ContentType and ContentDisposition override the response headers of a
	// presigned GET.
	ContentType        string
	ContentDisposition string
}

// Expiry returns the effective validity window.
func (o *SignedURLOptions) Expiry() time.Duration {
	if o == nil || o.ExpiresIn == 0 {
		return DefaultSignedURLExpiry
	}
	return o.ExpiresIn
}
