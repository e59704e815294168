package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/objstore/core/logger"
	"github.com/dmitrymomot/objstore/core/sigv4"
	"github.com/dmitrymomot/objstore/core/storage"
)

const (
	tracerName = "github.com/dmitrymomot/objstore/integration/storage/s3"

	// invocationIDHeader is unsigned; it only correlates client and provider logs.
	invocationIDHeader = "amz-sdk-invocation-id"

	// logBodyLimit caps response bodies written to logs.
	logBodyLimit = 4096
)

// Client talks to S3-compatible storage on behalf of tenants.
// It keeps no per-request state and is safe for concurrent use. Each
// operation resolves credentials, signs and performs exactly one attempt.
type Client struct {
	provider   storage.CredentialsProvider
	httpClient *http.Client
	signer     *sigv4.Signer
	logger     *slog.Logger
	now        func() time.Time
	maxKeys    int
	expiry     time.Duration
	observer   Observer
	tracer     trace.Tracer
}

// New creates a Client that resolves credentials through provider.
func New(provider storage.CredentialsProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: credentials provider is required", storage.ErrInvalidConfig)
	}

	c := &Client{
		provider:   provider,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
		now:        time.Now,
		maxKeys:    storage.DefaultMaxKeys,
		expiry:     storage.DefaultSignedURLExpiry,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.signer = sigv4.NewSigner(sigv4.WithClock(c.now))
	c.logger = c.logger.With(logger.Component("s3"))

	return c, nil
}

// MustNew is New that panics on invalid configuration.
func MustNew(provider storage.CredentialsProvider, opts ...Option) *Client {
	c, err := New(provider, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// credentials resolves and validates the tenant's credentials.
// A nil result from the provider is a configuration error, never a silent no-op.
func (c *Client) credentials(ctx context.Context, tenantID string) (*storage.Credentials, error) {
	creds, err := c.provider.GetS3Credentials(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve credentials for tenant %q: %w", tenantID, err)
	}
	if creds == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotConfigured, tenantID)
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("tenant %q: %w", tenantID, err)
	}
	return creds, nil
}

func signingCredentials(c *storage.Credentials) sigv4.Credentials {
	return sigv4.Credentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
	}
}

// operation tracks one client call for tracing and observation.
type operation struct {
	name   string
	start  time.Time
	span   trace.Span
	status int
	id     string
}

func (c *Client) begin(ctx context.Context, name, tenantID string) (context.Context, *operation) {
	ctx, span := c.tracer.Start(ctx, "s3."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("storage.operation", name),
			attribute.String("storage.tenant_id", tenantID),
		),
	)
	return ctx, &operation{
		name:  name,
		start: time.Now(),
		span:  span,
		id:    uuid.NewString(),
	}
}

func (c *Client) end(op *operation, err error) {
	if op.status > 0 {
		op.span.SetAttributes(attribute.Int("http.response.status_code", op.status))
	}
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.End()

	if c.observer != nil {
		c.observer.Observe(op.name, op.status, err, time.Since(op.start))
	}
}

// send performs a signed request and returns the status and full body.
func (c *Client) send(ctx context.Context, op *operation, method, rawURL string, signed sigv4.SignedHeaders) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: build %s request: %v", storage.ErrRequestFailed, op.name, err)
	}
	signed.Apply(req)
	req.Header.Set(invocationIDHeader, op.id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, transportError(op.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	op.status = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError(op.name, fmt.Errorf("read response body: %w", err))
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
