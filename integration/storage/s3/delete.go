package s3

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrymomot/objstore/core/logger"
	"github.com/dmitrymomot/objstore/core/sigv4"
	"github.com/dmitrymomot/objstore/core/storage"
)

// DeleteObject removes key from the tenant's bucket. Any 2xx status is
// success; S3 answers 204 whether or not the key existed.
func (c *Client) DeleteObject(ctx context.Context, tenantID, key string) (err error) {
	ctx, op := c.begin(ctx, OpDelete, tenantID)
	defer func() { c.end(op, err) }()

	if key == "" {
		return fmt.Errorf("%w: empty key", storage.ErrInvalidKey)
	}

	creds, err := c.credentials(ctx, tenantID)
	if err != nil {
		return err
	}
	ep, err := ResolveEndpoint(creds, key)
	if err != nil {
		return err
	}

	signed := c.signer.SignHeaders(signingCredentials(creds), sigv4.HeaderInput{
		Method:       http.MethodDelete,
		Host:         ep.Host,
		CanonicalURI: ep.CanonicalURI,
		Region:       creds.Region,
	})
	op.span.SetAttributes(attribute.String("storage.bucket", creds.Bucket))

	log := c.logger.With(
		logger.Action(OpDelete),
		logger.InvocationID(op.id),
		logger.Tenant(tenantID),
		logger.Bucket(creds.Bucket),
		logger.ObjectKey(key),
	)

	status, body, err := c.send(ctx, op, http.MethodDelete, ep.URL(), signed)
	if err != nil {
		log.ErrorContext(ctx, "delete object request failed", logger.Error(err))
		return err
	}
	if !isSuccess(status) {
		log.ErrorContext(ctx, "delete object rejected",
			logger.StatusCode(status),
			logger.Body(body, logBodyLimit),
		)
		return newResponseError(OpDelete, status, body)
	}

	log.DebugContext(ctx, "object deleted", logger.StatusCode(status))
	return nil
}
