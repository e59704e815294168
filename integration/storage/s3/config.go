package s3

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/dmitrymomot/objstore/core/storage"
)

// Config holds single-tenant storage settings and client defaults.
// Access keys are optional when credentials come from the AWS default chain
// (see LoadAWSProvider).
type Config struct {
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"S3_SESSION_TOKEN"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket          string `env:"S3_BUCKET"`
	Endpoint        string `env:"S3_ENDPOINT"`   // For S3-compatible services like MinIO
	PathStyle       string `env:"S3_PATH_STYLE"` // "true", "false" or empty for auto-detection

	DefaultMaxKeys  int           `env:"S3_DEFAULT_MAX_KEYS" envDefault:"100"`
	SignedURLExpiry time.Duration `env:"S3_SIGNED_URL_EXPIRY" envDefault:"1h"`
}

// pathStyle parses the tri-state PathStyle setting.
func (c Config) pathStyle() (*bool, error) {
	v := strings.TrimSpace(c.PathStyle)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: S3_PATH_STYLE must be a boolean, got %q", storage.ErrInvalidConfig, c.PathStyle)
	}
	return &b, nil
}

// Credentials builds validated credentials from the static keys.
func (c Config) Credentials() (*storage.Credentials, error) {
	ps, err := c.pathStyle()
	if err != nil {
		return nil, err
	}
	opts := []storage.CredentialsOption{
		storage.WithSessionToken(c.SessionToken),
		storage.WithEndpoint(c.Endpoint),
	}
	if ps != nil {
		opts = append(opts, storage.WithPathStyle(*ps))
	}
	return storage.NewCredentials(c.AccessKeyID, c.SecretAccessKey, c.Region, c.Bucket, opts...)
}

// AWSCredentials returns the static keys as an AWS credentials provider,
// or nil when no keys are configured.
func (c Config) AWSCredentials() aws.CredentialsProvider {
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return nil
	}
	return credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken)
}

// Options converts client defaults into Options.
func (c Config) Options() []Option {
	var opts []Option
	if c.DefaultMaxKeys > 0 {
		opts = append(opts, WithDefaultMaxKeys(c.DefaultMaxKeys))
	}
	if c.SignedURLExpiry > 0 {
		opts = append(opts, WithDefaultExpiry(c.SignedURLExpiry))
	}
	return opts
}
