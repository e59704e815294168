package storage

import (
	"fmt"
	"strings"
)

// Credentials hold everything needed to address and sign requests for one
// tenant's bucket. They are resolved per operation and never persisted here.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id" bson:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key" bson:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty" yaml:"session_token,omitempty" bson:"session_token,omitempty"`
	Region          string `json:"region" yaml:"region" bson:"region"`
	Bucket          string `json:"bucket" yaml:"bucket" bson:"bucket"`
	Endpoint        string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" bson:"endpoint,omitempty"`
	// PathStyle forces path-style (true) or virtual-hosted (false) addressing.
	// Nil lets the endpoint resolver decide.
	PathStyle *bool `json:"path_style,omitempty" yaml:"path_style,omitempty" bson:"path_style,omitempty"`
}

// CredentialsOption sets optional Credentials fields.
type CredentialsOption func(*Credentials)

// WithSessionToken attaches a temporary session token.
func WithSessionToken(token string) CredentialsOption {
	return func(c *Credentials) {
		c.SessionToken = token
	}
}

// WithEndpoint targets a custom S3-compatible endpoint.
func WithEndpoint(endpoint string) CredentialsOption {
	return func(c *Credentials) {
		c.Endpoint = endpoint
	}
}

// WithPathStyle sets the addressing style explicitly.
func WithPathStyle(pathStyle bool) CredentialsOption {
	return func(c *Credentials) {
		c.PathStyle = &pathStyle
	}
}

// NewCredentials validates the required fields and returns credentials.
func NewCredentials(accessKeyID, secretAccessKey, region, bucket string, opts ...CredentialsOption) (*Credentials, error) {
	c := &Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Region:          region,
		Bucket:          bucket,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first missing required field.
func (c *Credentials) Validate() error {
	if c == nil {
		return ErrInvalidCredentials
	}
	switch {
	case strings.TrimSpace(c.Bucket) == "":
		return fmt.Errorf("%w: bucket is required", ErrInvalidCredentials)
	case strings.TrimSpace(c.Region) == "":
		return fmt.Errorf("%w: region is required", ErrInvalidCredentials)
	case c.AccessKeyID == "":
		return fmt.Errorf("%w: access key id is required", ErrInvalidCredentials)
	case c.SecretAccessKey == "":
		return fmt.Errorf("%w: secret access key is required", ErrInvalidCredentials)
	}
	return nil
}
