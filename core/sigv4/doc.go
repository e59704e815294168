// Package sigv4 implements AWS Signature Version 4 signing for S3 without
// depending on a vendor SDK.
//
// The package exposes the canonicalization primitives (RFC 3986 encoding,
// canonical query and header blocks), the HMAC-SHA256 key derivation chain
// and a Signer with two modes:
//
//   - Presign places the signature in the query string and is used for
//     time-limited GET/PUT URLs.
//   - SignHeaders returns an Authorization header plus the companion
//     headers that must be sent with a directly issued request.
//
// Both modes use UNSIGNED-PAYLOAD as the payload hash unless told otherwise.
//
// Basic usage:
//
//	signer := sigv4.NewSigner()
//	p := signer.Presign(sigv4.Credentials{
//		AccessKeyID:     "AKIA...",
//		SecretAccessKey: "...",
//	}, sigv4.PresignInput{
//		Method:       http.MethodGet,
//		Host:         "my-bucket.s3.eu-west-1.amazonaws.com",
//		CanonicalURI: "/" + sigv4.EncodePath("reports/q1.csv"),
//		Region:       "eu-west-1",
//		Expires:      15 * time.Minute,
//	})
//	url := "https://my-bucket.s3.eu-west-1.amazonaws.com/reports/q1.csv?" + p.RawQuery()
//
// The clock is read exactly once per signing call. Use WithClock for
// deterministic signatures in tests.
package sigv4
