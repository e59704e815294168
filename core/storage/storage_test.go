package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/objstore/core/storage"
)

func TestNewCredentials(t *testing.T) {
	t.Parallel()

	t.Run("valid with options", func(t *testing.T) {
		c, err := storage.NewCredentials("ak", "sk", "us-east-1", "bucket",
			storage.WithSessionToken("tok"),
			storage.WithEndpoint("http://localhost:9000"),
			storage.WithPathStyle(false),
		)
		require.NoError(t, err)
		assert.Equal(t, "tok", c.SessionToken)
		assert.Equal(t, "http://localhost:9000", c.Endpoint)
		require.NotNil(t, c.PathStyle)
		assert.False(t, *c.PathStyle)
	})

	missing := []struct {
		name                   string
		ak, sk, region, bucket string
		wantMessage            string
	}{
		{"bucket", "ak", "sk", "us-east-1", "", "bucket"},
		{"region", "ak", "sk", " ", "b", "region"},
		{"access key", "", "sk", "us-east-1", "b", "access key"},
		{"secret key", "ak", "", "us-east-1", "b", "secret"},
	}
	for _, tt := range missing {
		t.Run("missing "+tt.name, func(t *testing.T) {
			_, err := storage.NewCredentials(tt.ak, tt.sk, tt.region, tt.bucket)
			require.ErrorIs(t, err, storage.ErrInvalidCredentials)
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}

	t.Run("nil credentials", func(t *testing.T) {
		var c *storage.Credentials
		assert.ErrorIs(t, c.Validate(), storage.ErrInvalidCredentials)
	})
}

func TestSignedURLOptions_Expiry(t *testing.T) {
	t.Parallel()

	var nilOpts *storage.SignedURLOptions
	assert.Equal(t, time.Hour, nilOpts.Expiry())
	assert.Equal(t, time.Hour, (&storage.SignedURLOptions{}).Expiry())
	assert.Equal(t, 15*time.Minute, (&storage.SignedURLOptions{ExpiresIn: 15 * time.Minute}).Expiry())
}

func TestIsValidKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"simple", "reports/q1.csv", true},
		{"spaces and unicode", "my docs/отчёт 2024.pdf", true},
		{"nul byte", " a\u0000b", false},
		{"newline", "a\nb", false},
		{"del", "a\u007fb", false},
		{"max length", strings.Repeat("a", storage.MaxKeyLength), true},
		{"too long", strings.Repeat("a", storage.MaxKeyLength+1), false},
		{"invalid utf8", "a\xffb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.IsValidKey(tt.key))
		})
	}
}

func TestSanitizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/a//b/c":      "a/b/c",
		"///x":         "x",
		"a/b/c":        "a/b/c",
		"a///b//":      "a/b/",
		"":             "",
		"dir/file.txt": "dir/file.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, storage.SanitizeKey(in), "input %q", in)
	}
}

func TestGetMimeType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/csv", storage.GetMimeType("reports/q1.csv"))
	assert.Equal(t, "image/jpeg", storage.GetMimeType("photo.JPG"))
	assert.Equal(t, "application/pdf", storage.GetMimeType("a.b/doc.pdf"))
	assert.Equal(t, "application/gzip", storage.GetMimeType("backup.tar.gz"))
	assert.Equal(t, storage.DefaultMIMEType, storage.GetMimeType("Makefile"))
	assert.Equal(t, storage.DefaultMIMEType, storage.GetMimeType("data.unknownext"))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", storage.FormatBytes(0))
	assert.Equal(t, "500 B", storage.FormatBytes(500))
	assert.Equal(t, "1.0 KiB", storage.FormatBytes(1024))
	assert.Equal(t, "1.5 KiB", storage.FormatBytes(1536))
	assert.Equal(t, "10 MiB", storage.FormatBytes(10*1024*1024))
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p := storage.NewStaticProvider(map[string]storage.Credentials{
		"acme": {AccessKeyID: "ak", SecretAccessKey: "sk", Region: "us-east-1", Bucket: "acme"},
	})

	c, err := p.GetS3Credentials(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "acme", c.Bucket)

	c, err = p.GetS3Credentials(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, c)

	single := storage.NewSingleTenantProvider(storage.Credentials{Bucket: "shared"})
	c, err = single.GetS3Credentials(ctx, "anyone")
	require.NoError(t, err)
	assert.Equal(t, "shared", c.Bucket)
}

func TestLoadFileProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("tenants and default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
default: acme
tenants:
  acme:
    access_key_id: AKIA
    secret_access_key: secret
    region: eu-west-1
    bucket: acme-files
  lab:
    access_key_id: minioadmin
    secret_access_key: minioadmin
    region: us-east-1
    bucket: lab
    endpoint: http://localhost:9000
    path_style: true
`), 0o600))

		p, err := storage.LoadFileProvider(path)
		require.NoError(t, err)

		lab, err := p.GetS3Credentials(ctx, "lab")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000", lab.Endpoint)
		require.NotNil(t, lab.PathStyle)
		assert.True(t, *lab.PathStyle)

		other, err := p.GetS3Credentials(ctx, "someone-else")
		require.NoError(t, err)
		assert.Equal(t, "acme-files", other.Bucket)
		assert.Nil(t, other.PathStyle)
	})

	t.Run("invalid tenant entry", func(t *testing.T) {
		_, err := storage.ParseFileProvider([]byte("tenants:\n  x:\n    bucket: b\n"))
		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	})

	t.Run("unknown default", func(t *testing.T) {
		_, err := storage.ParseFileProvider([]byte("default: nope\ntenants: {}\n"))
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := storage.LoadFileProvider(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := storage.ParseFileProvider([]byte("tenants: [unclosed"))
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}
