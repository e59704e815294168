package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/dmitrymomot/objstore/core/storage"
)

// AWSProvider serves a single bucket with keys from an AWS credentials
// provider: the default chain, an assumed role or static keys.
// Every tenant maps to the same bucket.
type AWSProvider struct {
	creds     aws.CredentialsProvider
	bucket    string
	region    string
	endpoint  string
	pathStyle *bool
}

// NewAWSProvider wraps creds with the bucket settings from cfg.
func NewAWSProvider(creds aws.CredentialsProvider, cfg Config) (*AWSProvider, error) {
	if creds == nil {
		return nil, fmt.Errorf("%w: aws credentials provider is required", storage.ErrInvalidConfig)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", storage.ErrInvalidConfig)
	}
	ps, err := cfg.pathStyle()
	if err != nil {
		return nil, err
	}
	if _, cached := creds.(*aws.CredentialsCache); !cached {
		creds = aws.NewCredentialsCache(creds)
	}
	return &AWSProvider{
		creds:     creds,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  cfg.Endpoint,
		pathStyle: ps,
	}, nil
}

// LoadAWSProvider resolves keys through the AWS default credential chain
// (environment, shared config, web identity, instance roles). Static keys in
// cfg take precedence over the chain.
func LoadAWSProvider(ctx context.Context, cfg Config, optFns ...func(*awsconfig.LoadOptions) error) (*AWSProvider, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if static := cfg.AWSCredentials(); static != nil {
		opts = append(opts, awsconfig.WithCredentialsProvider(static))
	}
	opts = append(opts, optFns...)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", storage.ErrInvalidConfig, err)
	}
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}
	return NewAWSProvider(awsCfg.Credentials, cfg)
}

// GetS3Credentials implements storage.CredentialsProvider.
func (p *AWSProvider) GetS3Credentials(ctx context.Context, _ string) (*storage.Credentials, error) {
	v, err := p.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve aws credentials: %v", storage.ErrInvalidCredentials, err)
	}
	return &storage.Credentials{
		AccessKeyID:     v.AccessKeyID,
		SecretAccessKey: v.SecretAccessKey,
		SessionToken:    v.SessionToken,
		Region:          p.region,
		Bucket:          p.bucket,
		Endpoint:        p.endpoint,
		PathStyle:       p.pathStyle,
	}, nil
}
