package root

import (
	"context"
	"database/sql"

	"selfcare/internal/catalog"
	"selfcare/internal/engine"
	"selfcare/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened")
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openStore returns a service for the configured user without touching its data.
func openStore(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewRecordStore(storage.NewSQLiteMedium(db), storage.WithLogger(logger))
	svc, err := engine.NewService(store, cfg.User, engine.Options{
		AwardRepeatCompletions: cfg.Progression.AwardRepeatCompletions,
		Logger:                 logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// openService is openStore plus an idempotent Initialize, so every command
// works against a fresh database.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	svc, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := initialize(ctx, svc); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func initialize(ctx context.Context, svc *engine.Service) (*engine.InitResult, error) {
	cat, err := catalog.Load(cfg.Storage.CatalogPath)
	if err != nil {
		return nil, err
	}
	return svc.Initialize(ctx, cat)
}
