package s3

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/objstore/core/storage"
)

// listBucketResult mirrors the ListObjectsV2 response. Repeated elements
// decode into slices, so a single <Contents> and many of them take the
// same path.
type listBucketResult struct {
	XMLName               xml.Name         `xml:"ListBucketResult"`
	Contents              []listContents   `xml:"Contents"`
	CommonPrefixes        []listCommonPref `xml:"CommonPrefixes"`
	IsTruncated           string           `xml:"IsTruncated"`
	NextContinuationToken string           `xml:"NextContinuationToken"`
}

type listContents struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         string `xml:"Size"`
}

type listCommonPref struct {
	Prefix string `xml:"Prefix"`
}

// ParseListBucketResult maps a ListBucketResult document to a ListResult.
// Missing timestamps default to the current time.
func ParseListBucketResult(data []byte) (*storage.ListResult, error) {
	return parseListBucketResult(data, time.Now())
}

func parseListBucketResult(data []byte, now time.Time) (*storage.ListResult, error) {
	var doc listBucketResult
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: ListBucketResult: %v", storage.ErrParseResponse, err)
	}

	result := &storage.ListResult{
		Objects:           make([]storage.Object, 0, len(doc.Contents)),
		Prefixes:          make([]string, 0, len(doc.CommonPrefixes)),
		ContinuationToken: strings.TrimSpace(doc.NextContinuationToken),
		IsTruncated:       strings.EqualFold(strings.TrimSpace(doc.IsTruncated), "true"),
	}

	for _, c := range doc.Contents {
		result.Objects = append(result.Objects, storage.Object{
			Key:          c.Key,
			Size:         parseSize(c.Size),
			LastModified: parseLastModified(c.LastModified, now),
			ETag:         strings.Trim(strings.TrimSpace(c.ETag), `"`),
		})
	}
	for _, p := range doc.CommonPrefixes {
		result.Prefixes = append(result.Prefixes, p.Prefix)
	}

	if result.IsTruncated && result.ContinuationToken == "" {
		return nil, fmt.Errorf("%w: truncated listing without continuation token", storage.ErrParseResponse)
	}
	return result, nil
}

// parseSize accepts integer or decimal text and yields 0 for anything else.
func parseSize(s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxUint64 {
		return 0
	}
	return uint64(f)
}

func parseLastModified(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC1123, s); err == nil {
		return t
	}
	return now
}
