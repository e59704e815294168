// Package logger provides slog attribute helpers with consistent keys for
// storage clients and the services embedding them.
//
// Helpers return an empty slog.Attr for empty inputs, so optional values can
// be passed without nil checks; slog drops empty attributes.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/objstore/core/logger"
//
//	log.Error("list objects failed",
//		logger.Component("s3"),
//		logger.Action("list_objects"),
//		logger.Tenant(tenantID),
//		logger.Bucket(creds.Bucket),
//		logger.Prefix(prefix),
//		logger.StatusCode(resp.StatusCode),
//		logger.Body(body, 2048),
//		logger.Error(err),
//	)
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := slog.New(slog.NewJSONHandler(&buf, nil))
//	log.Info("deleted", logger.ObjectKey("a/b.txt"))
//	assert.Contains(t, buf.String(), `"key":"a/b.txt"`)
package logger
