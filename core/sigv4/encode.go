package sigv4

import (
	"net/url"
	"sort"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether c is outside the RFC 3986 unreserved set.
// Unlike JavaScript's encodeURIComponent, the sub-delims ! ' ( ) * are escaped.
func shouldEscape(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return false
	case c == '-', c == '_', c == '.', c == '~':
		return false
	}
	return true
}

// Encode percent-encodes s byte by byte using uppercase hex digits,
// leaving only the unreserved characters A-Z a-z 0-9 - _ . ~ untouched.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscape(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// EncodePath encodes every segment of an object key independently so that
// slashes remain path separators.
func EncodePath(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = Encode(seg)
	}
	return strings.Join(segments, "/")
}

// CanonicalQuery builds the canonical query string: keys and values are
// encoded, pairs are sorted by encoded key and then by encoded value.
func CanonicalQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}

	type pair struct {
		k string
		v string
	}
	pairs := make([]pair, 0, len(values))
	for k, vs := range values {
		ek := Encode(k)
		if len(vs) == 0 {
			pairs = append(pairs, pair{ek, ""})
			continue
		}
		for _, v := range vs {
			pairs = append(pairs, pair{ek, Encode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.k)
		b.WriteByte('=')
		b.WriteString(p.v)
	}
	return b.String()
}

// CanonicalHeaders lowercases header names, trims values and collapses
// inner whitespace, then returns the canonical header block (each line
// terminated by '\n') and the semicolon-joined signed header list.
func CanonicalHeaders(headers map[string]string) (canonical, signed string) {
	names := make([]string, 0, len(headers))
	normalized := make(map[string]string, len(headers))
	for name, value := range headers {
		lower := strings.ToLower(strings.TrimSpace(name))
		if _, seen := normalized[lower]; !seen {
			names = append(names, lower)
		}
		normalized[lower] = strings.Join(strings.Fields(value), " ")
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(normalized[name])
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}
