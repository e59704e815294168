package sigv4

import (
	"strings"
	"time"
)

const (
	// Algorithm is the only signing algorithm this package produces.
	Algorithm = "AWS4-HMAC-SHA256"
	// Service is the SigV4 service name for S3.
	Service = "s3"
	// UnsignedPayload is sent instead of a body digest.
	UnsignedPayload = "UNSIGNED-PAYLOAD"
	// EmptyPayloadHash is the SHA-256 digest of an empty body.
	EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	terminator    = "aws4_request"
	dateFormat    = "20060102"
	amzDateFormat = "20060102T150405Z"
)

// SigningContext carries the time-derived values of one signature.
// It is created per request and never reused.
type SigningContext struct {
	Now             time.Time
	DateStamp       string
	AmzDate         string
	Region          string
	Service         string
	CredentialScope string
}

// NewSigningContext derives every time-dependent field from the single
// instant now, so date stamp and amz date never disagree.
func NewSigningContext(now time.Time, region, service string) SigningContext {
	now = now.UTC()
	dateStamp := now.Format(dateFormat)
	return SigningContext{
		Now:             now,
		DateStamp:       dateStamp,
		AmzDate:         now.Format(amzDateFormat),
		Region:          region,
		Service:         service,
		CredentialScope: strings.Join([]string{dateStamp, region, service, terminator}, "/"),
	}
}

// SigningKey derives the request signing key for this context.
func (sc SigningContext) SigningKey(secretAccessKey string) []byte {
	return DeriveSigningKey(secretAccessKey, sc.DateStamp, sc.Region, sc.Service)
}

// Credential returns the "<access key>/<scope>" credential value.
func (sc SigningContext) Credential(accessKeyID string) string {
	return accessKeyID + "/" + sc.CredentialScope
}

// CanonicalRequest is the intermediate value whose digest is signed.
type CanonicalRequest struct {
	Method               string
	CanonicalURI         string
	CanonicalQueryString string
	CanonicalHeaders     string // each header terminated by '\n'
	SignedHeaders        string
	PayloadHash          string
}

// String joins the canonical request fields with newlines.
func (r CanonicalRequest) String() string {
	return strings.Join([]string{
		r.Method,
		r.CanonicalURI,
		r.CanonicalQueryString,
		r.CanonicalHeaders,
		r.SignedHeaders,
		r.PayloadHash,
	}, "\n")
}

// Hash returns the hex SHA-256 digest of the canonical request.
func (r CanonicalRequest) Hash() string {
	return SHA256Hex(r.String())
}

// StringToSign builds the SigV4 string to sign for the canonical request.
func StringToSign(sc SigningContext, r CanonicalRequest) string {
	return strings.Join([]string{
		Algorithm,
		sc.AmzDate,
		sc.CredentialScope,
		r.Hash(),
	}, "\n")
}
