package s3

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/objstore/core/storage"
)

// ResponseError is returned for any non-success HTTP status.
// It carries the raw body for diagnostics and unwraps to
// storage.ErrRequestFailed plus a classified sentinel when one applies.
type ResponseError struct {
	Operation  string
	StatusCode int
	// Code and Message come from the provider's <Error> document, if any.
	Code      string
	Message   string
	RequestID string
	Body      []byte
}

// Error implements error.
func (e *ResponseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: status %d", e.Operation, e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " (code: %s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if len(e.Body) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(string(e.Body)))
	}
	return b.String()
}

// Unwrap exposes the sentinel errors for errors.Is.
func (e *ResponseError) Unwrap() []error {
	errs := []error{storage.ErrRequestFailed}
	if classified := classifyResponse(e.StatusCode, e.Code); classified != nil {
		errs = append(errs, classified)
	}
	return errs
}

type errorDocument struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	RequestID string   `xml:"RequestId"`
}

func newResponseError(operation string, status int, body []byte) *ResponseError {
	e := &ResponseError{
		Operation:  operation,
		StatusCode: status,
		Body:       body,
	}
	var doc errorDocument
	if len(body) > 0 && xml.Unmarshal(body, &doc) == nil {
		e.Code = doc.Code
		e.Message = doc.Message
		e.RequestID = doc.RequestID
	}
	return e
}

// classifyResponse maps provider error codes, falling back to the status,
// onto storage sentinels.
func classifyResponse(status int, code string) error {
	switch code {
	case "NoSuchKey":
		return storage.ErrFileNotFound
	case "NoSuchBucket":
		return storage.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "ExpiredToken", "InvalidToken":
		return storage.ErrAccessDenied
	case "SignatureDoesNotMatch":
		return storage.ErrSignatureMismatch
	case "SlowDown", "ServiceUnavailable":
		return storage.ErrServiceUnavailable
	}

	switch status {
	case http.StatusForbidden:
		return storage.ErrAccessDenied
	case http.StatusNotFound:
		return storage.ErrFileNotFound
	case http.StatusServiceUnavailable:
		return storage.ErrServiceUnavailable
	}
	return nil
}

// transportError wraps failures that happen before a response arrives.
// Context errors stay reachable through errors.Is.
func transportError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s operation: %w", operation, err)
	}
	return fmt.Errorf("%w: %s operation: %w", storage.ErrRequestFailed, operation, err)
}
