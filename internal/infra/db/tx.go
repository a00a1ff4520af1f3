package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/retry"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner runs read-modify-write sequences in one transaction and retries
// serialization failures and deadlocks.
type TxRunner struct {
	pool       TxBeginner
	maxRetries int
	base       time.Duration
}

func NewTxRunner(pool TxBeginner) *TxRunner {
	return &TxRunner{pool: pool, maxRetries: 3, base: 100 * time.Millisecond}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (r *TxRunner) Within(ctx context.Context, fn func(ctx context.Context, tx sqlc.DBTX) error) error {
	return r.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (r *TxRunner) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx sqlc.DBTX) error) error {
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		tx, err := r.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = tx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == r.maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := retry.Backoff(attempt, r.base)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
