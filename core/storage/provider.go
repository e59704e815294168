package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CredentialsProvider resolves storage credentials for a tenant.
// A (nil, nil) result means storage is not configured for that tenant.
type CredentialsProvider interface {
	GetS3Credentials(ctx context.Context, tenantID string) (*Credentials, error)
}

// ProviderFunc adapts a function to CredentialsProvider.
type ProviderFunc func(ctx context.Context, tenantID string) (*Credentials, error)

// GetS3Credentials calls f.
func (f ProviderFunc) GetS3Credentials(ctx context.Context, tenantID string) (*Credentials, error) {
	return f(ctx, tenantID)
}

// StaticProvider serves credentials from a fixed tenant map.
// It is read-only after construction and safe for concurrent use.
type StaticProvider struct {
	tenants  map[string]Credentials
	fallback *Credentials
}

// NewStaticProvider copies tenants into a new provider.
func NewStaticProvider(tenants map[string]Credentials) *StaticProvider {
	m := make(map[string]Credentials, len(tenants))
	for id, c := range tenants {
		m[id] = c
	}
	return &StaticProvider{tenants: m}
}

// NewSingleTenantProvider returns the same credentials for every tenant.
func NewSingleTenantProvider(c Credentials) *StaticProvider {
	return &StaticProvider{tenants: map[string]Credentials{}, fallback: &c}
}

// GetS3Credentials implements CredentialsProvider.
func (p *StaticProvider) GetS3Credentials(_ context.Context, tenantID string) (*Credentials, error) {
	if c, ok := p.tenants[tenantID]; ok {
		return &c, nil
	}
	if p.fallback != nil {
		c := *p.fallback
		return &c, nil
	}
	return nil, nil
}

// credentialsFile is the on-disk layout read by LoadFileProvider:
//
//	default: acme
//	tenants:
//	  acme:
//	    access_key_id: AKIA...
//	    secret_access_key: ...
//	    region: eu-west-1
//	    bucket: acme-files
type credentialsFile struct {
	Default string                 `yaml:"default"`
	Tenants map[string]Credentials `yaml:"tenants"`
}

// LoadFileProvider reads a YAML tenant credentials file.
// Every entry is validated; the optional "default" names the tenant whose
// credentials are served for unknown tenant ids.
func LoadFileProvider(path string) (*StaticProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", ErrInvalidConfig, err)
	}
	return ParseFileProvider(raw)
}

// ParseFileProvider is LoadFileProvider for in-memory content.
func ParseFileProvider(raw []byte) (*StaticProvider, error) {
	var f credentialsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode credentials file: %v", ErrInvalidConfig, err)
	}

	for id, c := range f.Tenants {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("tenant %q: %w", id, err)
		}
	}

	p := NewStaticProvider(f.Tenants)
	if f.Default != "" {
		c, ok := f.Tenants[f.Default]
		if !ok {
			return nil, fmt.Errorf("%w: default tenant %q is not defined", ErrInvalidConfig, f.Default)
		}
		p.fallback = &c
	}
	return p, nil
}
