package root

import (
	"context"
	"database/sql"

	"studyquest/internal/config"
	"studyquest/internal/engine"
	"studyquest/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := config.ResolveExamCatalog(examsPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine.NewService(db, engine.WithExamCatalog(catalog)), cleanup, nil
}
