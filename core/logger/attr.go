package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Helpers return an empty Attr for empty input, so optional values can be
// passed straight to slog.

// Error returns the "error" attribute, or nothing for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration returns a "duration" attribute.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ============================================================================
// Request scope
// ============================================================================

// InvocationID identifies one client operation across client and provider logs.
func InvocationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("invocation_id", id)
}

// Tenant names the tenant an operation runs for.
func Tenant(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}

// Method is the HTTP method of a request or presigned URL.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// StatusCode is the provider's HTTP response status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Body carries a raw response body, cut to limit bytes when limit > 0.
func Body(body []byte, limit int) slog.Attr {
	if len(body) == 0 {
		return slog.Attr{}
	}
	if limit > 0 && len(body) > limit {
		return slog.String("body", string(body[:limit])+"...("+strconv.Itoa(len(body)-limit)+" more bytes)")
	}
	return slog.String("body", string(body))
}

// ============================================================================
// Object storage
// ============================================================================

func Bucket(name string) slog.Attr {
	return slog.String("bucket", name)
}

// ObjectKey logs under "key".
func ObjectKey(key string) slog.Attr {
	return slog.String("key", key)
}

func Prefix(prefix string) slog.Attr {
	if prefix == "" {
		return slog.Attr{}
	}
	return slog.String("prefix", prefix)
}

// ============================================================================
// Metadata
// ============================================================================

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Action names the operation being performed.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Count is an integer attribute under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
