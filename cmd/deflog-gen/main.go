// Command deflog-gen writes the constants that guard log statements into
// every package matching its patterns.
//
//	DEFLOG_LOG=app::net=debug,info deflog-gen ./...
//
// Settings are taken from flags, then DEFLOG_ environment variables, then
// the YAML file given by -config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/webbmaffian/go-deflog/filter"
	"golang.org/x/tools/go/packages"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}

		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet("deflog-gen", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML build configuration")
	envPrefix := fs.String("env-prefix", filter.DefaultEnvPrefix, "prefix of the environment variables")
	crate := fs.String("crate", "", "crate name (default: last element of the module path)")
	spec := fs.String("filter", "", "filter specification, overrides the environment")
	prefix := fs.String("prefix", "", "prefix of the generated constants")
	output := fs.String("output", "", "name of the generated file")
	dir := fs.String("dir", ".", "directory the patterns are resolved in")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "files written concurrently")

	if err = fs.Parse(args); err != nil {
		return
	}

	var cfg filter.Config

	if *configPath != "" {
		if cfg, err = filter.LoadConfig(*configPath); err != nil {
			return
		}
	}

	cfg.ApplyEnv(*envPrefix)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "crate":
			cfg.Crate = *crate
		case "filter":
			cfg.Spec = spec
		case "prefix":
			cfg.Prefix = *prefix
		case "output":
			cfg.Output = *output
		}
	})

	patterns := fs.Args()

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedModule,
		Dir:     *dir,
	}, patterns...)

	if err != nil {
		return
	}

	targets, err := collectTargets(pkgs, &cfg)

	if err != nil {
		return
	}

	f, err := cfg.Filter()

	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	n, err := generate(ctx, targets, f, cfg, *workers)

	if err != nil {
		return
	}

	log.Printf("deflog-gen: wrote %d files for crate %s", n, cfg.Crate)
	return
}
