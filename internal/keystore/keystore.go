// Package keystore persists per-user encrypted key material in PostgreSQL.
//
// A KeyStore owns exactly one database connection. It is created with New,
// opened (and the backing table bootstrapped) with Connect, and released
// with Close. Once closed, a KeyStore cannot be reopened.
package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/dmitrijs2005/pgkeystore/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const driverName = "pgx"

// openDB is a seam for testing sql.Open.
var openDB = sql.Open

type state int

const (
	stateUninitialized state = iota
	stateConnected
	stateDisconnected
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateConnected:
		return "connected"
	case stateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Options configures a KeyStore.
type Options struct {
	// ConnectionString is a PostgreSQL DSN or URL understood by pgx.
	ConnectionString string
	// Logger receives lifecycle events. Nil discards them.
	Logger logging.Logger
}

// KeyStore is a single-connection adapter over the encrypted_keys table.
//
// Calls are not queued: callers sharing one instance across goroutines must
// serialize access themselves if they need ordering guarantees.
type KeyStore struct {
	dsn    string
	logger logging.Logger

	mu    sync.RWMutex
	state state
	db    *sql.DB
	conn  *sql.Conn
}

// New validates opts and returns an unconnected KeyStore. It performs no I/O.
func New(opts Options) (*KeyStore, error) {
	if strings.TrimSpace(opts.ConnectionString) == "" {
		return nil, fmt.Errorf("%w: connection string is empty", common.ErrorConfiguration)
	}

	var logger logging.Logger = logging.Discard()
	if opts.Logger != nil {
		logger = opts.Logger
	}

	return &KeyStore{
		dsn:    opts.ConnectionString,
		logger: logger.With("component", "keystore", "table", common.KeysTableName),
	}, nil
}

// Connect opens the connection and makes sure the backing table exists.
// The store is usable only after Connect returns nil; on error nothing is
// left open and the store stays unconnected.
func (s *KeyStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateConnected:
		return common.ErrorAlreadyConnected
	case stateDisconnected:
		return common.ErrorClosed
	}

	db, err := openDB(driverName, s.dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		s.logger.Error(ctx, "connect failed", "error", err)
		return fmt.Errorf("db connect error: %w", err)
	}

	if err := s.bootstrap(ctx, conn); err != nil {
		_ = conn.Close()
		_ = db.Close()
		s.logger.Error(ctx, "bootstrap failed", "error", err)
		return fmt.Errorf("bootstrap error: %w", err)
	}

	s.db = db
	s.conn = conn
	s.state = stateConnected
	s.logger.Info(ctx, "connected")

	return nil
}

// Close releases the connection. It is a no-op unless the store is connected.
func (s *KeyStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateConnected {
		return nil
	}

	err := errors.Join(s.conn.Close(), s.db.Close())

	s.conn = nil
	s.db = nil
	s.state = stateDisconnected

	if err != nil {
		s.logger.Error(ctx, "close failed", "error", err)
		return fmt.Errorf("db close error: %w", err)
	}
	s.logger.Info(ctx, "disconnected")

	return nil
}

// handle returns the pinned connection if the store is connected.
func (s *KeyStore) handle() (*sql.Conn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != stateConnected {
		return nil, common.ErrorNotConnected
	}
	return s.conn, nil
}
