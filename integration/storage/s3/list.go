package s3

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrymomot/objstore/core/logger"
	"github.com/dmitrymomot/objstore/core/sigv4"
	"github.com/dmitrymomot/objstore/core/storage"
)

// ListObjectsInput selects one page of a listing.
type ListObjectsInput struct {
	Prefix            string
	ContinuationToken string
	// MaxKeys <= 0 uses the client default.
	MaxKeys int
}

// ListObjects returns one page of the bucket listing under in.Prefix.
// Listings are always delimited by "/", so nested keys are reported as
// prefixes rather than objects.
func (c *Client) ListObjects(ctx context.Context, tenantID string, in ListObjectsInput) (_ *storage.ListResult, err error) {
	ctx, op := c.begin(ctx, OpList, tenantID)
	defer func() { c.end(op, err) }()

	creds, err := c.credentials(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	ep, err := ResolveBucketEndpoint(creds)
	if err != nil {
		return nil, err
	}

	maxKeys := in.MaxKeys
	if maxKeys <= 0 {
		maxKeys = c.maxKeys
	}
	query := url.Values{}
	query.Set("list-type", "2")
	query.Set("max-keys", strconv.Itoa(maxKeys))
	query.Set("delimiter", "/")
	if in.Prefix != "" {
		query.Set("prefix", in.Prefix)
	}
	if in.ContinuationToken != "" {
		query.Set("continuation-token", in.ContinuationToken)
	}

	signed := c.signer.SignHeaders(signingCredentials(creds), sigv4.HeaderInput{
		Method:       http.MethodGet,
		Host:         ep.Host,
		CanonicalURI: ep.CanonicalURI,
		Region:       creds.Region,
		Query:        query,
	})
	op.span.SetAttributes(attribute.String("storage.bucket", creds.Bucket))

	log := c.logger.With(
		logger.Action(OpList),
		logger.InvocationID(op.id),
		logger.Tenant(tenantID),
		logger.Bucket(creds.Bucket),
		logger.Prefix(in.Prefix),
	)

	status, body, err := c.send(ctx, op, http.MethodGet, ep.URL()+"?"+signed.Query, signed)
	if err != nil {
		log.ErrorContext(ctx, "list objects request failed", logger.Error(err))
		return nil, err
	}
	if !isSuccess(status) {
		log.ErrorContext(ctx, "list objects rejected",
			logger.StatusCode(status),
			logger.Body(body, logBodyLimit),
		)
		return nil, newResponseError(OpList, status, body)
	}

	result, err := parseListBucketResult(body, c.now())
	if err != nil {
		log.ErrorContext(ctx, "list objects response unreadable",
			logger.Error(err),
			logger.Body(body, logBodyLimit),
		)
		return nil, fmt.Errorf("%s: %w", OpList, err)
	}

	log.DebugContext(ctx, "objects listed",
		logger.Count("objects", len(result.Objects)),
		logger.Count("prefixes", len(result.Prefixes)),
		slog.Bool("truncated", result.IsTruncated),
	)
	return result, nil
}

// ListAll follows continuation tokens until the listing under prefix is
// exhausted, calling fn for each page. Iteration stops at the first error
// from the client or from fn.
func (c *Client) ListAll(ctx context.Context, tenantID, prefix string, fn func(*storage.ListResult) error) error {
	in := ListObjectsInput{Prefix: prefix}
	for {
		page, err := c.ListObjects(ctx, tenantID, in)
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
		if !page.IsTruncated {
			return nil
		}
		in.ContinuationToken = page.ContinuationToken
	}
}
