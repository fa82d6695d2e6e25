package main

import (
	"context"
	"fmt"

	"shelter-dashboard/internal/adapters/aac"
	"shelter-dashboard/internal/adapters/storage/memory"
	mg "shelter-dashboard/internal/adapters/storage/mongo"
	pg "shelter-dashboard/internal/adapters/storage/postgres"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
)

type store struct {
	writer dataview.Writer
	close  func()
}

// openStore conecta el backend elegido. En modo memory carga SEED_CSV si viene.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, err := mg.Connect(ctx, mg.ConnOptions{
			Host:     cfg.Mongo.Host,
			Port:     cfg.Mongo.Port,
			User:     cfg.Mongo.User,
			Password: cfg.Mongo.Password,
		})
		if err != nil {
			return nil, err
		}
		log.Info("connected to mongo", map[string]any{
			"host":       cfg.Mongo.Host,
			"database":   cfg.Mongo.Database,
			"collection": cfg.Mongo.Collection,
		})
		return &store{
			writer: mg.NewAnimalsRepo(client, cfg.Mongo.Database, cfg.Mongo.Collection),
			close:  func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StorePostgres:
		db, err := pg.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info("connected to postgres", nil)
		return &store{
			writer: pg.NewAnimalsRepo(db),
			close:  func() { _ = db.Close() },
		}, nil

	case config.StoreMemory:
		st := &store{writer: memory.NewAnimalsRepo(), close: func() {}}
		if cfg.SeedCSV != "" {
			n, err := newImporter(st, log).Run(ctx, cfg.SeedCSV)
			if err != nil {
				return nil, fmt.Errorf("seed %s: %w", cfg.SeedCSV, err)
			}
			log.Info("memory store seeded", map[string]any{"records": n})
		} else {
			log.Warn("memory store is empty (set SEED_CSV to load outcomes)", nil)
		}
		return st, nil

	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}

func newImporter(st *store, log logger.Logger) *aac.Importer {
	return aac.NewImporter(st.writer, httpclient.New(0), log)
}
