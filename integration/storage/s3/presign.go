package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrymomot/objstore/core/logger"
	"github.com/dmitrymomot/objstore/core/sigv4"
	"github.com/dmitrymomot/objstore/core/storage"
)

// GenerateSignedURL returns a presigned URL granting method (GET or PUT)
// on key for the options' validity window. It performs no network I/O;
// invalid keys or lifetimes are rejected by the provider when the URL is used.
//
// On GET, ContentType and ContentDisposition become response header
// overrides. PUT URLs sign only the host, so uploaders may send any
// Content-Type.
func (c *Client) GenerateSignedURL(ctx context.Context, tenantID, key, method string, opts *storage.SignedURLOptions) (_ string, err error) {
	ctx, op := c.begin(ctx, OpPresign, tenantID)
	defer func() { c.end(op, err) }()

	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPut {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidMethod, method)
	}

	creds, err := c.credentials(ctx, tenantID)
	if err != nil {
		return "", err
	}
	ep, err := ResolveEndpoint(creds, key)
	if err != nil {
		return "", err
	}

	expiry := c.expiry
	if opts != nil && opts.ExpiresIn != 0 {
		expiry = opts.ExpiresIn
	}

	var extra url.Values
	if method == http.MethodGet && opts != nil {
		extra = url.Values{}
		if opts.ContentType != "" {
			extra.Set("response-content-type", opts.ContentType)
		}
		if opts.ContentDisposition != "" {
			extra.Set("response-content-disposition", opts.ContentDisposition)
		}
	}

	p := c.signer.Presign(signingCredentials(creds), sigv4.PresignInput{
		Method:       method,
		Host:         ep.Host,
		CanonicalURI: ep.CanonicalURI,
		Region:       creds.Region,
		Expires:      expiry,
		Query:        extra,
	})
	op.span.SetAttributes(attribute.String("storage.bucket", creds.Bucket))

	c.logger.DebugContext(ctx, "signed url generated",
		logger.Action(OpPresign),
		logger.Tenant(tenantID),
		logger.Bucket(creds.Bucket),
		logger.ObjectKey(key),
		logger.Method(method),
		logger.Duration(expiry),
	)

	return ep.URL() + "?" + p.RawQuery(), nil
}
