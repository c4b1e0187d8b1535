// Package app opens the brew log database and builds the services every
// surface (MCP, HTTP, CLI) shares.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/brewlog/internal/config"
	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/session"
	"github.com/rpggio/brewlog/internal/domain/stats"
	"github.com/rpggio/brewlog/internal/sqlite"
)

// App holds the open database and the services built on it.
type App struct {
	DB       *sqlite.DB
	Beans    *bean.Service
	Brews    *brew.Service
	Stats    *stats.Service
	Confirm  *confirm.Service
	Sessions *session.Store
	Logger   *slog.Logger
}

// Open opens the database at cfg.DB.Path, brings its schema up to date and
// wires the services. A schema failure is returned and the caller must not
// serve anything.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return New(db, cfg, logger), nil
}

// New wires services onto an already prepared database.
func New(db *sqlite.DB, cfg config.Config, logger *slog.Logger) *App {
	beanSvc := bean.NewService(sqlite.NewBeanRepository(db), logger)
	brewSvc := brew.NewService(sqlite.NewBrewRepository(db), logger)

	confirmSvc := confirm.NewService(cfg.Confirm.TTL, logger)
	confirmSvc.Register(confirm.KindBean, beanSvc.Delete)
	confirmSvc.Register(confirm.KindBrew, brewSvc.Delete)

	return &App{
		DB:       db,
		Beans:    beanSvc,
		Brews:    brewSvc,
		Stats:    stats.NewService(beanSvc, brewSvc),
		Confirm:  confirmSvc,
		Sessions: session.NewStore(cfg.Session.TTL, logger),
		Logger:   logger,
	}
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
