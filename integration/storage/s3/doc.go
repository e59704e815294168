// Package s3 is a multi-tenant client for Amazon S3 and S3-compatible
// storage (MinIO, LocalStack, Wasabi, DigitalOcean Spaces) that signs
// requests itself with AWS Signature Version 4.
//
// Credentials are resolved per call through a storage.CredentialsProvider,
// so one Client serves any number of tenants, each with its own bucket,
// region and endpoint. The client supports presigned GET and PUT URLs,
// delimiter-based listing and single-object deletion. Every network
// operation is a single attempt; timeouts and retries belong to the
// caller and the configured *http.Client.
//
// Basic usage:
//
//	import (
//		"context"
//		"time"
//
//		"github.com/dmitrymomot/objstore/core/storage"
//		"github.com/dmitrymomot/objstore/integration/storage/s3"
//	)
//
//	func main() {
//		creds, err := storage.NewCredentials("AKIA...", "secret", "us-east-1", "uploads")
//		if err != nil {
//			panic(err)
//		}
//
//		client, err := s3.New(storage.NewSingleTenantProvider(*creds))
//		if err != nil {
//			panic(err)
//		}
//
//		url, err := client.GenerateSignedURL(context.Background(), "acme", "reports/q1.csv", "GET",
//			&storage.SignedURLOptions{ExpiresIn: 15 * time.Minute})
//		if err != nil {
//			panic(err)
//		}
//		_ = url
//	}
//
// # Addressing
//
// Without an endpoint the client uses virtual-hosted AWS URLs of the form
// https://<bucket>.s3.<region>.amazonaws.com. With a custom endpoint,
// path-style addressing is chosen when the host looks self-hosted (it
// contains minio, localstack, localhost or 127.0.0.1) unless the
// credentials set PathStyle explicitly.
//
// # Listing
//
// ListObjects returns one page; ListAll walks continuation tokens:
//
//	page, err := client.ListObjects(ctx, tenantID, s3.ListObjectsInput{Prefix: "photos/"})
//	for _, obj := range page.Objects {
//		fmt.Println(obj.Key, storage.FormatBytes(obj.Size))
//	}
//	for _, dir := range page.Prefixes {
//		fmt.Println(dir)
//	}
//
// # Errors
//
// Provider rejections are returned as *ResponseError carrying the status
// code and raw body. They match storage.ErrRequestFailed and, when the
// status or S3 error code allows it, a narrower sentinel:
//
//	if errors.Is(err, storage.ErrAccessDenied) {
//		// rotate keys
//	}
//
// # Observability
//
// Operations log through slog, open an OpenTelemetry span and report to an
// optional Observer. NewMetrics provides a Prometheus Observer:
//
//	m, _ := s3.NewMetrics(prometheus.DefaultRegisterer)
//	client, _ := s3.New(provider, s3.WithObserver(m), s3.WithLogger(log))
package s3
