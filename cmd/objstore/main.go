package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/objstore/core/config"
	"github.com/dmitrymomot/objstore/integration/storage/s3"
)

// appConfig selects where tenant credentials come from.
type appConfig struct {
	Source           string `env:"OBJSTORE_CREDENTIALS_SOURCE" envDefault:"env"` // env|aws|file|postgres|mongo
	CredentialsFile  string `env:"OBJSTORE_CREDENTIALS_FILE" envDefault:"credentials.yaml"`
	CacheCredentials bool   `env:"OBJSTORE_CACHE_CREDENTIALS" envDefault:"false"`
	Tenant           string `env:"OBJSTORE_TENANT" envDefault:"default"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("objstore", flag.ContinueOnError)
	flags.Usage = func() { usage(flags) }
	verbose := flags.Bool("v", false, "Enable debug logging")
	tenant := flags.String("tenant", "", "Tenant id (default $OBJSTORE_TENANT)")
	source := flags.String("source", "", "Credentials source: env|aws|file|postgres|mongo (default $OBJSTORE_CREDENTIALS_SOURCE)")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		usage(flags)
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var app appConfig
	var s3cfg s3.Config
	if err := config.Load(&app); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	if err := config.Load(&s3cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	if *tenant != "" {
		app.Tenant = *tenant
	}
	if *source != "" {
		app.Source = *source
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, app, s3cfg, log)
	defer deps.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "credentials error: %v\n", err)
		return 1
	}

	opts := append(s3cfg.Options(), s3.WithLogger(log))
	client, err := s3.New(deps.provider, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		return 1
	}

	cmd := &commands{client: client, tenant: app.Tenant, out: os.Stdout, log: log, checks: deps.checks}
	if err := cmd.dispatch(ctx, flags.Arg(0), flags.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flags.Arg(0), err)
		return 1
	}
	return 0
}

func usage(flags *flag.FlagSet) {
	out := flags.Output()
	fmt.Fprintln(out, "usage: objstore [flags] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  presign [-method GET|PUT] [-expires 1h] [-content-type t] <key>")
	fmt.Fprintln(out, "  ls [-all] [-max-keys n] [-json] [prefix]")
	fmt.Fprintln(out, "  rm <key>...")
	fmt.Fprintln(out, "  health")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "flags:")
	flags.PrintDefaults()
}
