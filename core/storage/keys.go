package storage

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeyLength is the longest object key accepted by IsValidKey.
const MaxKeyLength = 1024

// IsValidKey reports whether key is non-empty, at most MaxKeyLength
// characters long and free of control characters.
func IsValidKey(key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if utf8.RuneCountInString(key) > MaxKeyLength {
		return false
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// SanitizeKey strips leading slashes and collapses repeated slashes.
func SanitizeKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if !strings.Contains(key, "//") {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	prevSlash := false
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}
