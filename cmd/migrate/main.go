package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies pending migrations from the migrations directory with the atlas
// CLI, which must be on PATH.
func main() {
	dir := flag.String("dir", "migrations", "migration directory containing atlas.sum")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrate(ctx, logger, *dir, cfg.DB.BuildDSN()); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, dir, url string) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return errs.Wrap(err, "prepare working dir")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url})
	if err != nil {
		return errs.Wrap(err, "apply migrations")
	}
	for _, f := range res.Applied {
		logger.Info("applied migration", "file", f.Name)
	}
	logger.Info("database is up to date", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}
