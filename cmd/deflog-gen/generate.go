package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/webbmaffian/go-deflog/filter"
	"github.com/webbmaffian/go-deflog/internal/codegen"
	"golang.org/x/tools/go/packages"
)

var ErrNoPackages = errors.New("no packages matched")

type target struct {
	PkgPath   string
	Dir       string
	Package   string
	Namespace string
}

// collectTargets resolves the directory and namespace path of every loaded
// package. All packages must belong to one module; its last path element is
// the crate unless cfg names one.
func collectTargets(pkgs []*packages.Package, cfg *filter.Config) (targets []target, err error) {
	var modulePath string

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%s: %s", pkg.PkgPath, pkg.Errors[0].Msg)
		}

		if pkg.Module == nil {
			return nil, fmt.Errorf("%s: not part of a module", pkg.PkgPath)
		}

		if modulePath == "" {
			modulePath = pkg.Module.Path
		} else if modulePath != pkg.Module.Path {
			return nil, fmt.Errorf("%s: packages span modules %s and %s", pkg.PkgPath, modulePath, pkg.Module.Path)
		}

		if len(pkg.GoFiles) == 0 {
			continue
		}

		targets = append(targets, target{
			PkgPath: pkg.PkgPath,
			Dir:     filepath.Dir(pkg.GoFiles[0]),
			Package: pkg.Name,
		})
	}

	if len(targets) == 0 {
		return nil, ErrNoPackages
	}

	if cfg.Crate == "" {
		cfg.Crate = filter.DefaultCrate(modulePath)
	}

	for i := range targets {
		targets[i].Namespace = filter.NamespacePath(cfg.Crate, modulePath, targets[i].PkgPath)
	}

	return
}

// generate writes one constants file per target and returns how many files
// changed. Files whose content is already current are left untouched.
func generate(ctx context.Context, targets []target, f *filter.EnvFilter, cfg filter.Config, workers int) (written int, err error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]bool, len(targets))
	p := pool.New().WithMaxGoroutines(workers).WithErrors().WithContext(ctx)

	for i := range targets {
		p.Go(func(ctx context.Context) (err error) {
			if err = ctx.Err(); err != nil {
				return
			}

			results[i], err = writeTarget(targets[i], f, cfg)
			return
		})
	}

	if err = p.Wait(); err != nil {
		return
	}

	for _, changed := range results {
		if changed {
			written++
		}
	}

	return
}

func writeTarget(t target, f *filter.EnvFilter, cfg filter.Config) (changed bool, err error) {
	src, err := codegen.Render(codegen.File{
		Package:   t.Package,
		Namespace: t.Namespace,
		Prefix:    cfg.Prefix,
	}, f)

	if err != nil {
		return false, fmt.Errorf("%s: %w", t.Dir, err)
	}

	path := filepath.Join(t.Dir, cfg.Output)

	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, src) {
		return false, nil
	}

	if err = os.WriteFile(path, src, 0o644); err != nil {
		return
	}

	return true, nil
}
