package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/internal/api"
	"github.com/graphtint/graphtint/pkg/cache"
	"github.com/graphtint/graphtint/pkg/snapshot"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graphtint HTTP API",
		Long: `Serve starts the HTTP API. Configuration comes from a TOML file
(--config); --listen overrides the configured address. Without Redis and
MongoDB configured, the server falls back to the file cache and an
in-memory snapshot store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := api.DefaultConfig()
			if configPath != "" {
				loaded, err := api.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if listen != "" {
				cfg.Listen = listen
			}

			store, err := buildCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := buildSnapshotStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = snaps.Close(context.Background()) }()

			printInfo("Serving on %s", cfg.Listen)
			return api.New(cfg, c.Logger, store, snaps).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

// buildCache selects the cache backend from config: Redis when configured,
// otherwise the file cache.
func buildCache(ctx context.Context, cfg api.Config) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		store, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return cache.Instrumented(store), nil
	}

	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrumented(store), nil
}

// buildSnapshotStore selects the snapshot backend from config.
func buildSnapshotStore(ctx context.Context, cfg api.Config) (snapshot.Store, error) {
	if cfg.Snapshots.MongoURI == "" {
		return snapshot.NewMemoryStore(cfg.Snapshots.TTL.Duration), nil
	}
	return snapshot.NewMongoStore(ctx,
		cfg.Snapshots.MongoURI,
		cfg.Snapshots.Database,
		cfg.Snapshots.Collection,
		cfg.Snapshots.TTL.Duration,
	)
}
