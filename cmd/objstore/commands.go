package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrymomot/objstore/core/health"
	"github.com/dmitrymomot/objstore/core/storage"
	"github.com/dmitrymomot/objstore/integration/storage/s3"
)

// objectClient is the part of *s3.Client the commands use.
type objectClient interface {
	GenerateSignedURL(ctx context.Context, tenantID, key, method string, opts *storage.SignedURLOptions) (string, error)
	ListObjects(ctx context.Context, tenantID string, in s3.ListObjectsInput) (*storage.ListResult, error)
	ListAll(ctx context.Context, tenantID, prefix string, fn func(*storage.ListResult) error) error
	DeleteObject(ctx context.Context, tenantID, key string) error
}

type commands struct {
	client objectClient
	tenant string
	out    io.Writer
	log    *slog.Logger
	checks []health.Check
}

var errUsage = errors.New("invalid usage")

func (c *commands) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "presign":
		return c.presign(ctx, args)
	case "ls":
		return c.list(ctx, args)
	case "rm":
		return c.remove(ctx, args)
	case "health":
		return c.health(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *commands) presign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("presign", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	method := fs.String("method", http.MethodGet, "HTTP method: GET or PUT")
	expires := fs.Duration("expires", 0, "URL lifetime (default client setting)")
	contentType := fs.String("content-type", "", "Response content type override for GET (default by extension)")
	disposition := fs.String("content-disposition", "", "Response content disposition override for GET")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: presign takes exactly one key", errUsage)
	}

	key := storage.SanitizeKey(fs.Arg(0))
	if !storage.IsValidKey(key) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, fs.Arg(0))
	}
	m := strings.ToUpper(*method)
	ct := *contentType
	if ct == "" && m == http.MethodGet && *disposition != "" {
		ct = storage.GetMimeType(path.Base(key))
	}

	signed, err := c.client.GenerateSignedURL(ctx, c.tenant, key, m, &storage.SignedURLOptions{
		ExpiresIn:          *expires,
		ContentType:        ct,
		ContentDisposition: *disposition,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, signed)
	return err
}

func (c *commands) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	all := fs.Bool("all", false, "Follow continuation tokens")
	maxKeys := fs.Int("max-keys", 0, "Page size (default client setting)")
	asJSON := fs.Bool("json", false, "Print pages as JSON")
	token := fs.String("token", "", "Continuation token of the page to fetch")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: ls takes at most one prefix", errUsage)
	}
	prefix := fs.Arg(0)

	emit := c.printPage
	if *asJSON {
		enc := json.NewEncoder(c.out)
		emit = func(page *storage.ListResult) error { return enc.Encode(page) }
	}

	if *all {
		return c.client.ListAll(ctx, c.tenant, prefix, emit)
	}
	page, err := c.client.ListObjects(ctx, c.tenant, s3.ListObjectsInput{
		Prefix:            prefix,
		ContinuationToken: *token,
		MaxKeys:           *maxKeys,
	})
	if err != nil {
		return err
	}
	if err := emit(page); err != nil {
		return err
	}
	if page.IsTruncated && !*asJSON {
		_, err = fmt.Fprintf(c.out, "# more results: -token %s\n", page.ContinuationToken)
	}
	return err
}

func (c *commands) printPage(page *storage.ListResult) error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, p := range page.Prefixes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", "DIR", "-", p)
	}
	for _, obj := range page.Objects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", obj.LastModified.UTC().Format(time.DateTime), storage.FormatBytes(obj.Size), obj.Key)
	}
	return w.Flush()
}

func (c *commands) remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: rm takes at least one key", errUsage)
	}
	var errs []error
	for _, key := range args {
		if err := c.client.DeleteObject(ctx, c.tenant, storage.SanitizeKey(key)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		fmt.Fprintf(c.out, "deleted %s\n", key)
	}
	return errors.Join(errs...)
}

func (c *commands) health(ctx context.Context) error {
	report := health.Readiness(ctx, c.log, c.checks...)
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, r := range report.Results {
		status := "ok"
		if !r.Healthy {
			status = "FAIL " + r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Elapsed.Round(time.Millisecond), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return report.Err()
}
