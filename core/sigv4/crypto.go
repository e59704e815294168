package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// HMACSHA256 computes HMAC-SHA256 of data keyed with key.
func HMACSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

// DeriveSigningKey runs the SigV4 key derivation chain
// date -> region -> service -> "aws4_request".
// It is pure; the result is not cached because every input is request scoped.
func DeriveSigningKey(secretAccessKey, dateStamp, region, service string) []byte {
	kDate := HMACSHA256([]byte("AWS4"+secretAccessKey), dateStamp)
	kRegion := HMACSHA256(kDate, region)
	kService := HMACSHA256(kRegion, service)
	return HMACSHA256(kService, terminator)
}

// Sign returns the hex-encoded HMAC-SHA256 of stringToSign.
func Sign(signingKey []byte, stringToSign string) string {
	return hex.EncodeToString(HMACSHA256(signingKey, stringToSign))
}
