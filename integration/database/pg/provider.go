package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/objstore/core/storage"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectCredentials = `SELECT access_key_id, secret_access_key, session_token, region, bucket, endpoint, path_style
		FROM storage_credentials WHERE tenant_id = $1`

	upsertCredentials = `INSERT INTO storage_credentials
		(tenant_id, access_key_id, secret_access_key, session_token, region, bucket, endpoint, path_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant_id) DO UPDATE SET
			access_key_id = EXCLUDED.access_key_id,
			secret_access_key = EXCLUDED.secret_access_key,
			session_token = EXCLUDED.session_token,
			region = EXCLUDED.region,
			bucket = EXCLUDED.bucket,
			endpoint = EXCLUDED.endpoint,
			path_style = EXCLUDED.path_style,
			updated_at = now()`

	deleteCredentials = `DELETE FROM storage_credentials WHERE tenant_id = $1`
)

// CredentialsProvider reads tenant credentials from the storage_credentials table.
// A transaction attached with WithTx takes precedence over the pool.
type CredentialsProvider struct {
	db DBTX
}

// NewCredentialsProvider creates a provider backed by db.
func NewCredentialsProvider(db DBTX) *CredentialsProvider {
	return &CredentialsProvider{db: db}
}

func (p *CredentialsProvider) conn(ctx context.Context) DBTX {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return p.db
}

// GetS3Credentials implements storage.CredentialsProvider.
// An unknown tenant yields (nil, nil).
func (p *CredentialsProvider) GetS3Credentials(ctx context.Context, tenantID string) (*storage.Credentials, error) {
	var (
		c                      storage.Credentials
		sessionToken, endpoint *string
		pathStyle              *bool
	)
	err := p.conn(ctx).QueryRow(ctx, selectCredentials, tenantID).Scan(
		&c.AccessKeyID, &c.SecretAccessKey, &sessionToken,
		&c.Region, &c.Bucket, &endpoint, &pathStyle,
	)
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load storage credentials: %w", err)
	}

	if sessionToken != nil {
		c.SessionToken = *sessionToken
	}
	if endpoint != nil {
		c.Endpoint = *endpoint
	}
	c.PathStyle = pathStyle
	return &c, nil
}

// SaveCredentials validates and stores credentials for tenantID, replacing existing ones.
func (p *CredentialsProvider) SaveCredentials(ctx context.Context, tenantID string, c *storage.Credentials) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenant id is required", storage.ErrInvalidConfig)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := p.conn(ctx).Exec(ctx, upsertCredentials,
		tenantID, c.AccessKeyID, c.SecretAccessKey, nullable(c.SessionToken),
		c.Region, c.Bucket, nullable(c.Endpoint), c.PathStyle,
	)
	if err != nil {
		return fmt.Errorf("save storage credentials: %w", err)
	}
	return nil
}

// DeleteCredentials removes the tenant's credentials. Deleting an unknown tenant is not an error.
func (p *CredentialsProvider) DeleteCredentials(ctx context.Context, tenantID string) error {
	if _, err := p.conn(ctx).Exec(ctx, deleteCredentials, tenantID); err != nil {
		return fmt.Errorf("delete storage credentials for %q: %w", tenantID, err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
