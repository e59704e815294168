package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/objstore/core/storage"
	"github.com/dmitrymomot/objstore/integration/storage/s3"
)

func boolPtr(b bool) *bool { return &b }

func TestResolveEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endpoint  string
		pathStyle *bool
		key       string
		wantURL   string
		wantBase  string
		wantHost  string
		wantPath  bool
	}{
		{
			name:     "aws virtual-hosted",
			key:      "reports/q1.csv",
			wantURL:  "https://media.s3.eu-west-1.amazonaws.com/reports/q1.csv",
			wantBase: "https://media.s3.eu-west-1.amazonaws.com",
			wantHost: "media.s3.eu-west-1.amazonaws.com",
		},
		{
			name:     "minio detected as path-style",
			endpoint: "http://minio:9000",
			key:      "a/b.txt",
			wantURL:  "http://minio:9000/media/a/b.txt",
			wantBase: "http://minio:9000/media",
			wantHost: "minio:9000",
			wantPath: true,
		},
		{
			name:     "localhost without scheme",
			endpoint: "localhost:4566",
			key:      "k",
			wantURL:  "https://localhost:4566/media/k",
			wantBase: "https://localhost:4566/media",
			wantHost: "localhost:4566",
			wantPath: true,
		},
		{
			name:     "loopback ip",
			endpoint: "http://127.0.0.1:9000/",
			key:      "k",
			wantURL:  "http://127.0.0.1:9000/media/k",
			wantBase: "http://127.0.0.1:9000/media",
			wantHost: "127.0.0.1:9000",
			wantPath: true,
		},
		{
			name:     "generic endpoint is virtual-hosted",
			endpoint: "https://media.s3.example.com",
			key:      "k",
			wantURL:  "https://media.s3.example.com/k",
			wantBase: "https://media.s3.example.com",
			wantHost: "media.s3.example.com",
		},
		{
			name:      "explicit path-style wins",
			endpoint:  "https://s3.example.com",
			pathStyle: boolPtr(true),
			key:       "k",
			wantURL:   "https://s3.example.com/media/k",
			wantBase:  "https://s3.example.com/media",
			wantHost:  "s3.example.com",
			wantPath:  true,
		},
		{
			name:      "explicit virtual-hosted overrides hint",
			endpoint:  "http://media.minio.local",
			pathStyle: boolPtr(false),
			key:       "k",
			wantURL:   "http://media.minio.local/k",
			wantBase:  "http://media.minio.local",
			wantHost:  "media.minio.local",
		},
		{
			name:     "key segments are encoded",
			key:      "my folder/it's (v2)*.txt",
			wantURL:  "https://media.s3.eu-west-1.amazonaws.com/my%20folder/it%27s%20%28v2%29%2A.txt",
			wantBase: "https://media.s3.eu-west-1.amazonaws.com",
			wantHost: "media.s3.eu-west-1.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			creds := &storage.Credentials{
				AccessKeyID:     "ak",
				SecretAccessKey: "sk",
				Region:          "eu-west-1",
				Bucket:          "media",
				Endpoint:        tt.endpoint,
				PathStyle:       tt.pathStyle,
			}

			ep, err := s3.ResolveEndpoint(creds, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, ep.URL())
			assert.Equal(t, tt.wantBase, ep.BaseURL)
			assert.Equal(t, tt.wantHost, ep.Host)
			assert.Equal(t, tt.wantPath, ep.PathStyle)
			assert.Equal(t, tt.wantPath, s3.UsesPathStyle(creds))
		})
	}
}

func TestResolveBucketEndpoint(t *testing.T) {
	t.Parallel()

	creds := &storage.Credentials{Region: "us-east-1", Bucket: "media"}
	ep, err := s3.ResolveBucketEndpoint(creds)
	require.NoError(t, err)
	assert.Equal(t, "/", ep.CanonicalURI)

	creds.Endpoint = "http://localstack:4566"
	ep, err = s3.ResolveBucketEndpoint(creds)
	require.NoError(t, err)
	assert.Equal(t, "/media/", ep.CanonicalURI)
	assert.Equal(t, "http://localstack:4566/media/", ep.URL())
}

func TestResolveEndpoint_Invalid(t *testing.T) {
	t.Parallel()

	for _, endpoint := range []string{"ftp://files.example.com", "http://", "http://[::1"} {
		creds := &storage.Credentials{Region: "us-east-1", Bucket: "media", Endpoint: endpoint}
		_, err := s3.ResolveEndpoint(creds, "k")
		assert.ErrorIs(t, err, storage.ErrInvalidEndpoint, endpoint)
	}
}
