// Package app prepares the key store schema: it loads the logger from
// config and either bootstraps the table through the KeyStore itself or
// applies the goose migrations.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/dmitrijs2005/pgkeystore/internal/config"
	"github.com/dmitrijs2005/pgkeystore/internal/keystore"
	"github.com/dmitrijs2005/pgkeystore/internal/logging"
	"github.com/dmitrijs2005/pgkeystore/internal/migrations"
)

// lifecycle is the part of keystore.KeyStore the bootstrap mode needs.
type lifecycle interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
}

// Seams for tests.
var (
	newStore = func(opts keystore.Options) (lifecycle, error) {
		return keystore.New(opts)
	}
	openDB        = sql.Open
	runMigrations = migrations.Up
)

type App struct {
	config *config.Config
	logger logging.Logger
}

// NewApp builds an App that logs JSON lines to w.
func NewApp(c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewJSONLogger(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorConfiguration, err)
	}

	return &App{config: c, logger: logger.With("mode", c.SchemaMode)}, nil
}

// Run prepares the schema within the configured connect timeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, app.config.ConnectTimeout)
	defer cancel()

	app.logger.Info(ctx, "preparing schema")

	var err error
	switch app.config.SchemaMode {
	case config.SchemaModeMigrate:
		err = app.migrate(ctx)
	default:
		err = app.bootstrap(ctx)
	}

	if err != nil {
		app.logger.Error(ctx, "schema preparation failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "schema ready")
	return nil
}

func (app *App) bootstrap(ctx context.Context) (err error) {
	store, err := newStore(keystore.Options{
		ConnectionString: app.config.DatabaseDSN,
		Logger:           app.logger,
	})
	if err != nil {
		return err
	}

	if err := store.Connect(ctx); err != nil {
		return err
	}

	defer func() {
		if cerr := store.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return nil
}

func (app *App) migrate(ctx context.Context) error {
	db, err := openDB("pgx", app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db connect error: %w", err)
	}

	return runMigrations(ctx, db)
}
