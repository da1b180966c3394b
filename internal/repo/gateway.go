// Package repo implements the persistence gateway for summarization events,
// user feedback, and the prompt template catalog, backed by GORM.
//
// The gateway is deliberately conservative: every public operation opens its
// own database handle, executes a single atomic unit of work, commits, and
// releases the handle before returning. No connection is shared across
// operations or held between calls, and a single failed attempt is final —
// there is no retry.
//
// Failure containment: driver errors never escape the gateway. Each write
// operation reports an explicit Failure kind and each read degrades to an
// empty result, with the full diagnostic context going to the log. Callers
// treat "unavailable" as a first-class result, not an exception.
package repo

import (
	"context"
	"errors"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/intellinotes/go-notes-backend/internal/config"
)

// ErrNotFound is returned by the error-based lookup helpers when a requested
// record does not exist. It aliases gorm.ErrRecordNotFound for convenience.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an idempotency record already exists for the
// given (user_id, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// Failure classifies the outcome of a gateway operation. It is the only
// failure signal that crosses the gateway boundary; the underlying driver
// error is logged, never returned.
type Failure int

const (
	// FailureNone means the operation committed (or read) successfully.
	FailureNone Failure = iota
	// FailureUnavailable means the store could not be reached or
	// authenticated before any statement ran.
	FailureUnavailable
	// FailureWrite means a statement or commit failed after a connection
	// was established; nothing was persisted.
	FailureWrite
	// FailureRead means a query or row materialization failed.
	FailureRead
)

// String returns the log-friendly name of the failure kind.
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureUnavailable:
		return "unavailable"
	case FailureWrite:
		return "write_failed"
	case FailureRead:
		return "read_failed"
	default:
		return "unknown"
	}
}

// OK reports whether the operation succeeded.
func (f Failure) OK() bool { return f == FailureNone }

// Opener produces a fresh database handle for a single gateway operation,
// together with the release function that must run on every exit path.
// The default opener dials SQLite; tests substitute counting or failing
// openers to exercise the connection lifecycle.
type Opener func(ctx context.Context) (*gorm.DB, func(), error)

// Gateway owns all database interaction for the application. Credentials are
// immutable after construction; the gateway never mutates or re-reads them.
type Gateway struct {
	creds config.DBConfig
	open  Opener
	log   zerolog.Logger
}

// Option customizes a Gateway at construction time.
type Option func(*Gateway)

// WithOpener replaces the default per-operation connection factory.
// Intended for tests and for server-backed store deployments.
func WithOpener(open Opener) Option {
	return func(g *Gateway) { g.open = open }
}

// NewGateway constructs a Gateway over the store addressed by creds.
// The zerolog logger receives every success and failure line the gateway
// emits; pass a component-scoped logger.
func NewGateway(creds config.DBConfig, log zerolog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		creds: creds,
		open:  DefaultOpener(creds),
		log:   log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DefaultOpener returns an Opener that dials the embedded SQLite store at
// creds.Addr with a dedicated connection per operation. GORM's own logger is
// silenced; the gateway does its own structured logging.
func DefaultOpener(creds config.DBConfig) Opener {
	return func(ctx context.Context) (*gorm.DB, func(), error) {
		db, err := gorm.Open(sqlite.Open(creds.Addr), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		// glebarez defers some open errors to first use; surface them here so
		// "unavailable" is reported before any statement runs.
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		db.Exec("PRAGMA busy_timeout=5000;")
		db.Exec("PRAGMA foreign_keys=ON;")
		return db, func() { _ = sqlDB.Close() }, nil
	}
}

// acquire opens the per-operation handle, logging connection failures with
// full diagnostic context. The password is never logged.
func (g *Gateway) acquire(ctx context.Context, op string) (*gorm.DB, func(), bool) {
	db, release, err := g.open(ctx)
	if err != nil {
		g.log.Error().
			Err(err).
			Str("op", op).
			Str("db_addr", g.creds.Addr).
			Str("db_user", g.creds.User).
			Msg("database connection unavailable")
		return nil, nil, false
	}
	return db, release, true
}
