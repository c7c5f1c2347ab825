package repository

import (
	"context"
	"fmt"

	"conference-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error
}

type TxOption func(*pgxTransactor)

// WithMaxAttempts bounds how often a transaction is re-run after a
// serialization failure or deadlock.
func WithMaxAttempts(n int) TxOption {
	return func(t *pgxTransactor) {
		if n > 0 {
			t.maxAttempts = n
		}
	}
}

func WithIsoLevel(level pgx.TxIsoLevel) TxOption {
	return func(t *pgxTransactor) {
		t.opts.IsoLevel = level
	}
}

type pgxTransactor struct {
	db          database.PgxIface
	base        *zap.Logger
	log         *zap.Logger
	opts        pgx.TxOptions
	maxAttempts int
}

func NewTransactor(db database.PgxIface, log *zap.Logger, opts ...TxOption) Transactor {
	t := &pgxTransactor{
		db:          db,
		base:        log,
		log:         log.With(zap.String("repository", "tx")),
		opts:        pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite},
		maxAttempts: 3,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error {
	var err error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		err = t.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		t.log.Warn("Retrying transaction",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", t.maxAttempts),
		)
	}
	return err
}

func (t *pgxTransactor) runOnce(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error {
	tx, err := t.db.BeginTx(ctx, t.opts)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, newScoped(tx, t.base)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			t.log.Error("Failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
