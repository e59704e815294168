package s3

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for list and delete requests.
// Timeouts, proxies and TLS settings belong here; the client adds none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source used for signing and for
// defaulting missing timestamps in listings.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultMaxKeys sets the page size used when a listing does not ask for one.
func WithDefaultMaxKeys(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxKeys = n
		}
	}
}

// WithDefaultExpiry sets the presigned URL lifetime used when options omit it.
func WithDefaultExpiry(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.expiry = d
		}
	}
}

// WithObserver records per-operation outcomes, e.g. into Prometheus via NewMetrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithTracer sets the OpenTelemetry tracer. Defaults to the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}
