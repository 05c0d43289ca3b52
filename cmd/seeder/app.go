package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brewsandbytes/seeder/internal/config"
	"github.com/brewsandbytes/seeder/internal/core"
	"github.com/brewsandbytes/seeder/internal/metrics"
	"github.com/brewsandbytes/seeder/internal/source"
	"github.com/brewsandbytes/seeder/internal/store"
)

// openStore connects to the configured database and, unless disabled,
// applies pending migrations.
func (a *app) openStore(ctx context.Context) (store.Backend, error) {
	b, err := store.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database", "driver", b.Dialect(), "database", a.cfg.Database.Addr())

	if a.cfg.Database.AutoMigrate {
		if _, err := store.Migrate(ctx, b); err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return b, nil
}

// manifest returns the seed file layout, from SEED_MANIFEST when set.
func (a *app) manifest() (source.Manifest, error) {
	if a.cfg.Source.Manifest == "" {
		return source.DefaultManifest(), nil
	}
	m, err := source.LoadManifest(a.cfg.Source.Manifest)
	if err != nil {
		return source.Manifest{}, fmt.Errorf("load manifest: %w", err)
	}
	return m, nil
}

// pipeline is one configured seeding run plus its outputs. It satisfies
// core.Runner so the scheduler can drive it.
type pipeline struct {
	seeder     *core.Seeder
	recorder   *metrics.Recorder
	textfile   string
	reportPath string
}

func (a *app) newPipeline(ctx context.Context, b store.Backend, reportPath string) (*pipeline, error) {
	src, err := source.New(ctx, a.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	files, err := a.manifest()
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		recorder:   metrics.NewRecorder(a.cfg.Metrics.Namespace),
		textfile:   a.cfg.Metrics.Textfile,
		reportPath: reportPath,
	}
	p.seeder = core.NewSeeder(b, src, files, core.WithObserver(p.recorder))
	return p, nil
}

// Run seeds once, then writes the report and metrics. Output failures are
// logged and do not change the run result.
func (p *pipeline) Run(ctx context.Context) (*core.Report, error) {
	report, err := p.seeder.Run(ctx)

	if p.reportPath != "" {
		if werr := report.WriteFile(p.reportPath); werr != nil {
			slog.Warn("failed to write run report", "path", p.reportPath, "error", werr)
		} else {
			slog.Info("run report written", "path", p.reportPath)
		}
	}
	if p.textfile != "" {
		if werr := p.recorder.WriteTextfile(p.textfile); werr != nil {
			slog.Warn("failed to write metrics", "path", p.textfile, "error", werr)
		}
	}
	return report, err
}

var _ core.Runner = (*pipeline)(nil)

// applyOverrides copies non-empty flag values over the loaded configuration.
func applyOverrides(cfg *config.Config, baseDir, manifest string) {
	if baseDir != "" {
		cfg.Source.BaseDir = baseDir
	}
	if manifest != "" {
		cfg.Source.Manifest = manifest
	}
}
