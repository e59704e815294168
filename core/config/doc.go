// Package config loads env-tagged structs from the environment.
//
// A .env file in the working directory is read once on first use, then
// caarlos0/env parses the struct. Each struct type is parsed once and the
// result is reused by later calls, so packages can load their own settings
// independently:
//
//	import "github.com/dmitrymomot/objstore/core/config"
//
//	var s3cfg s3.Config
//	if err := config.Load(&s3cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	var pgcfg pg.Config
//	config.MustLoad(&pgcfg) // panics when PG_CONN_URL is missing
//
// Errors wrap ErrParsingConfig.
package config
