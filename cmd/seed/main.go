package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"sitewatch/internal/app/server"
	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/platform/config"
	"sitewatch/internal/platform/jobs"
	"sitewatch/internal/platform/seed"
)

func main() {
	file := flag.String("file", "", "YAML fixture with workers, sites and safetyViolations")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()
	if *file == "" {
		log.Fatal("-file is required")
	}
	if err := run(*file, *timeout); err != nil {
		log.Fatal(err)
	}
}

func run(file string, timeout time.Duration) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fx, err := seed.LoadFile(file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	storage, err := server.OpenStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage failed: %w", err)
	}
	defer func() {
		err = errors.Join(err, storage.Close())
	}()

	queue := jobs.New(cfg.PersistQueueSize, nil)
	queue.Start(ctx)
	persister := dashboard.NewPersister(storage, queue)
	svc := dashboard.NewService(dashboard.Open(ctx, storage, persister))

	res, err := seed.Apply(svc, fx)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if err := persister.Flush(ctx); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	log.Printf("seeded %d workers, %d sites, %d violations (%d skipped)", res.Workers, res.Sites, res.Violations, res.Skipped)
	return nil
}
