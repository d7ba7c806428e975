package app

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/dmitrijs2005/pgkeystore/internal/config"
	"github.com/dmitrijs2005/pgkeystore/internal/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	connectErr error
	closeErr   error
	connected  bool
	closed     bool
}

func (f *fakeStore) Connect(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("connect without deadline")
	}
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeStore) Close(ctx context.Context) error {
	f.closed = true
	return f.closeErr
}

func testConfig(mode string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SchemaMode = mode
	c.ConnectTimeout = time.Second
	return c
}

func stubStore(t *testing.T, fs *fakeStore) *keystore.Options {
	t.Helper()
	var got keystore.Options
	orig := newStore
	newStore = func(opts keystore.Options) (lifecycle, error) {
		got = opts
		return fs, nil
	}
	t.Cleanup(func() { newStore = orig })
	return &got
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig("sideways")
	_, err := NewApp(c, &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrorConfiguration)

	c = testConfig(config.SchemaModeBootstrap)
	c.LogLevel = "chatty"
	_, err = NewApp(c, &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrorConfiguration)
}

func TestRun_Bootstrap(t *testing.T) {
	fs := &fakeStore{}
	opts := stubStore(t, fs)

	var buf bytes.Buffer
	app, err := NewApp(testConfig(config.SchemaModeBootstrap), &buf)
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, fs.connected)
	assert.True(t, fs.closed)
	assert.Equal(t, app.config.DatabaseDSN, opts.ConnectionString)
	assert.NotNil(t, opts.Logger)
	assert.Contains(t, buf.String(), `"msg":"schema ready"`)
}

func TestRun_BootstrapConnectError(t *testing.T) {
	fs := &fakeStore{connectErr: errors.New("refused")}
	stubStore(t, fs)

	var buf bytes.Buffer
	app, err := NewApp(testConfig(config.SchemaModeBootstrap), &buf)
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.EqualError(t, err, "refused")
	assert.False(t, fs.closed)
	assert.Contains(t, buf.String(), `"msg":"schema preparation failed"`)
}

func TestRun_BootstrapCloseError(t *testing.T) {
	fs := &fakeStore{closeErr: errors.New("close failed")}
	stubStore(t, fs)

	app, err := NewApp(testConfig(config.SchemaModeBootstrap), &bytes.Buffer{})
	require.NoError(t, err)

	require.EqualError(t, app.Run(context.Background()), "close failed")
}

func TestRun_Migrate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	origOpen, origRun := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origRun })

	openDB = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, nil
	}
	var ran bool
	runMigrations = func(ctx context.Context, got *sql.DB) error {
		ran = got == db
		return nil
	}

	app, err := NewApp(testConfig(config.SchemaModeMigrate), &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, ran)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_MigrateError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	origOpen, origRun := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origRun })

	openDB = func(driver, dsn string) (*sql.DB, error) { return db, nil }
	runMigrations = func(ctx context.Context, db *sql.DB) error { return errors.New("migration error: boom") }

	app, err := NewApp(testConfig(config.SchemaModeMigrate), &bytes.Buffer{})
	require.NoError(t, err)

	require.EqualError(t, app.Run(context.Background()), "migration error: boom")
}

func TestRun_MigratePingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("no route"))

	origOpen, origRun := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origRun })

	openDB = func(driver, dsn string) (*sql.DB, error) { return db, nil }
	runMigrations = func(ctx context.Context, db *sql.DB) error {
		t.Fatal("migrations must not run without a connection")
		return nil
	}

	app, err := NewApp(testConfig(config.SchemaModeMigrate), &bytes.Buffer{})
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route")
}
