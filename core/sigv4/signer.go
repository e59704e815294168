package sigv4

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Query parameter and header names used by SigV4.
const (
	ParamAlgorithm     = "X-Amz-Algorithm"
	ParamCredential    = "X-Amz-Credential"
	ParamDate          = "X-Amz-Date"
	ParamExpires       = "X-Amz-Expires"
	ParamSignedHeaders = "X-Amz-SignedHeaders"
	ParamSecurityToken = "X-Amz-Security-Token"
	ParamSignature     = "X-Amz-Signature"

	HeaderAuthorization = "Authorization"
	HeaderHost          = "host"
	HeaderDate          = "x-amz-date"
	HeaderContentSHA256 = "x-amz-content-sha256"
	HeaderSecurityToken = "x-amz-security-token"
)

// Credentials are the key material a signature is computed with.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Signer produces SigV4 signatures. The zero value is ready to use and
// reads the wall clock; it holds no mutable state and is safe for
// concurrent use.
type Signer struct {
	now func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the clock read once per signing call.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner creates a Signer.
func NewSigner(opts ...Option) *Signer {
	s := &Signer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Signer) clock() time.Time {
	if s == nil || s.now == nil {
		return time.Now()
	}
	return s.now()
}

// PresignInput describes a request to presign.
type PresignInput struct {
	Method       string
	Host         string
	CanonicalURI string
	Region       string
	Expires      time.Duration
	// Query holds extra parameters signed alongside the X-Amz-* set,
	// for example response-content-type.
	Query url.Values
}

// Presigned is the result of query-string signing.
type Presigned struct {
	// Query is the sorted canonical query without the signature.
	Query         string
	Signature     string
	SignedHeaders string
	Context       SigningContext
}

// RawQuery returns the query string to attach to the request URL.
func (p Presigned) RawQuery() string {
	return p.Query + "&" + ParamSignature + "=" + p.Signature
}

// Presign signs a request by placing the signature in the query string.
func (s *Signer) Presign(creds Credentials, in PresignInput) Presigned {
	sc := NewSigningContext(s.clock(), in.Region, Service)

	headers := map[string]string{HeaderHost: in.Host}
	if creds.SessionToken != "" {
		headers[HeaderSecurityToken] = creds.SessionToken
	}
	canonicalHeaders, signedHeaders := CanonicalHeaders(headers)

	query := url.Values{}
	for k, vs := range in.Query {
		query[k] = append([]string(nil), vs...)
	}
	query.Set(ParamAlgorithm, Algorithm)
	query.Set(ParamCredential, sc.Credential(creds.AccessKeyID))
	query.Set(ParamDate, sc.AmzDate)
	query.Set(ParamExpires, strconv.FormatInt(int64(in.Expires/time.Second), 10))
	query.Set(ParamSignedHeaders, signedHeaders)
	if creds.SessionToken != "" {
		query.Set(ParamSecurityToken, creds.SessionToken)
	}
	canonicalQuery := CanonicalQuery(query)

	cr := CanonicalRequest{
		Method:               in.Method,
		CanonicalURI:         in.CanonicalURI,
		CanonicalQueryString: canonicalQuery,
		CanonicalHeaders:     canonicalHeaders,
		SignedHeaders:        signedHeaders,
		PayloadHash:          UnsignedPayload,
	}

	return Presigned{
		Query:         canonicalQuery,
		Signature:     Sign(sc.SigningKey(creds.SecretAccessKey), StringToSign(sc, cr)),
		SignedHeaders: signedHeaders,
		Context:       sc,
	}
}

// HeaderInput describes a request authenticated with an Authorization header.
type HeaderInput struct {
	Method       string
	Host         string
	CanonicalURI string
	Region       string
	Query        url.Values
	// PayloadHash defaults to UnsignedPayload.
	PayloadHash string
}

// SignedHeaders is the result of header signing. Every field in Headers
// must reach the server unchanged, otherwise the server-side canonical
// request differs and the signature is rejected.
type SignedHeaders struct {
	Authorization string
	Signature     string
	SignedHeaders string
	// Query is the canonical query string; use it verbatim as the URL query.
	Query   string
	Host    string
	Headers http.Header
	Context SigningContext
}

// Apply sets the signed headers and host on r.
func (sh SignedHeaders) Apply(r *http.Request) {
	r.Host = sh.Host
	for name, values := range sh.Headers {
		r.Header[name] = append([]string(nil), values...)
	}
	r.Header.Set(HeaderAuthorization, sh.Authorization)
}

// SignHeaders signs a request through the Authorization header.
func (s *Signer) SignHeaders(creds Credentials, in HeaderInput) SignedHeaders {
	sc := NewSigningContext(s.clock(), in.Region, Service)

	payloadHash := in.PayloadHash
	if payloadHash == "" {
		payloadHash = UnsignedPayload
	}

	headers := map[string]string{
		HeaderHost:          in.Host,
		HeaderContentSHA256: payloadHash,
		HeaderDate:          sc.AmzDate,
	}
	if creds.SessionToken != "" {
		headers[HeaderSecurityToken] = creds.SessionToken
	}
	canonicalHeaders, signedHeaders := CanonicalHeaders(headers)
	canonicalQuery := CanonicalQuery(in.Query)

	cr := CanonicalRequest{
		Method:               in.Method,
		CanonicalURI:         in.CanonicalURI,
		CanonicalQueryString: canonicalQuery,
		CanonicalHeaders:     canonicalHeaders,
		SignedHeaders:        signedHeaders,
		PayloadHash:          payloadHash,
	}
	signature := Sign(sc.SigningKey(creds.SecretAccessKey), StringToSign(sc, cr))

	h := http.Header{}
	h.Set(HeaderDate, sc.AmzDate)
	h.Set(HeaderContentSHA256, payloadHash)
	if creds.SessionToken != "" {
		h.Set(HeaderSecurityToken, creds.SessionToken)
	}

	return SignedHeaders{
		Authorization: Algorithm +
			" Credential=" + sc.Credential(creds.AccessKeyID) +
			", SignedHeaders=" + signedHeaders +
			", Signature=" + signature,
		Signature:     signature,
		SignedHeaders: signedHeaders,
		Query:         canonicalQuery,
		Host:          in.Host,
		Headers:       h,
		Context:       sc,
	}
}
