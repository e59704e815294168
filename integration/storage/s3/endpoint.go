package s3

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrymomot/objstore/core/sigv4"
	"github.com/dmitrymomot/objstore/core/storage"
)

// pathStyleHints mark self-hosted S3-compatible services that rarely
// support virtual-hosted buckets.
var pathStyleHints = []string{"minio", "localstack", "localhost", "127.0.0.1"}

// Endpoint is the resolved addressing of a request.
type Endpoint struct {
	// BaseURL is the bucket's base URL: "<scheme>://<host>/<bucket>" for
	// path-style, the configured endpoint or "https://<bucket>.s3.<region>.amazonaws.com" otherwise.
	BaseURL string
	// Origin is "<scheme>://<host>"; the request URL is Origin + CanonicalURI.
	Origin string
	// Host is signed as the host header and may include a port.
	Host string
	// CanonicalURI is the encoded request path exactly as signed.
	CanonicalURI string
	PathStyle    bool
}

// URL returns the request URL without query string.
func (e Endpoint) URL() string {
	return e.Origin + e.CanonicalURI
}

// ResolveEndpoint addresses an object key.
func ResolveEndpoint(c *storage.Credentials, key string) (Endpoint, error) {
	ep, err := resolveBase(c)
	if err != nil {
		return Endpoint{}, err
	}
	encoded := sigv4.EncodePath(key)
	if ep.PathStyle {
		ep.CanonicalURI = "/" + sigv4.Encode(c.Bucket) + "/" + encoded
	} else {
		ep.CanonicalURI = "/" + encoded
	}
	return ep, nil
}

// ResolveBucketEndpoint addresses the bucket root, as used by listings.
func ResolveBucketEndpoint(c *storage.Credentials) (Endpoint, error) {
	ep, err := resolveBase(c)
	if err != nil {
		return Endpoint{}, err
	}
	if ep.PathStyle {
		ep.CanonicalURI = "/" + sigv4.Encode(c.Bucket) + "/"
	} else {
		ep.CanonicalURI = "/"
	}
	return ep, nil
}

// UsesPathStyle reports the effective addressing style of c.
// An explicit PathStyle wins; without a custom endpoint AWS is always
// addressed virtual-hosted.
func UsesPathStyle(c *storage.Credentials) bool {
	if c.Endpoint == "" {
		return false
	}
	if c.PathStyle != nil {
		return *c.PathStyle
	}
	u, err := parseEndpoint(c.Endpoint)
	if err != nil {
		return false
	}
	return detectPathStyle(u.Hostname())
}

func detectPathStyle(host string) bool {
	host = strings.ToLower(host)
	for _, hint := range pathStyleHints {
		if strings.Contains(host, hint) {
			return true
		}
	}
	return false
}

func resolveBase(c *storage.Credentials) (Endpoint, error) {
	if c.Endpoint == "" {
		host := c.Bucket + ".s3." + c.Region + ".amazonaws.com"
		return Endpoint{
			BaseURL: "https://" + host,
			Origin:  "https://" + host,
			Host:    host,
		}, nil
	}

	u, err := parseEndpoint(c.Endpoint)
	if err != nil {
		return Endpoint{}, err
	}

	origin := u.Scheme + "://" + u.Host
	pathStyle := UsesPathStyle(c)
	ep := Endpoint{
		Origin:    origin,
		Host:      u.Host,
		PathStyle: pathStyle,
	}
	if pathStyle {
		ep.BaseURL = origin + "/" + c.Bucket
	} else {
		ep.BaseURL = strings.TrimSuffix(u.String(), "/")
	}
	return ep, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", storage.ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", storage.ErrInvalidEndpoint, raw)
	}
	return u, nil
}
