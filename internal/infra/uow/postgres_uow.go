package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"kilo-share/internal/infra/db"
	"kilo-share/internal/infra/readstore"
	"kilo-share/internal/infra/repository"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/pkg/pgconv"
	"kilo-share/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
	errRetriesExhausted  = errs.New("transaction kept conflicting")
)

var _ shared.UnitOfWork = (*PostgresUoW)(nil)

// RetryPolicy bounds how often a conflicting transaction is rerun.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond}

// Delay is exponential in attempt with up to 20% jitter on top.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if j := int64(d / 5); j > 0 {
		d += time.Duration(rand.Int64N(j))
	}
	return d
}

func (p RetryPolicy) retryable(err error, attempt int) bool {
	return attempt < p.MaxRetries && pgconv.IsTransient(err)
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	retry RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool) *PostgresUoW {
	return &PostgresUoW{pool: pool, retry: DefaultRetryPolicy}
}

// Within runs fn under READ COMMITTED. Capacity relies on conditional updates
// and row locks rather than the isolation level. Serialization failures and
// deadlocks rerun fn from the start with a fresh Tx.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if !u.retry.retryable(err, attempt) {
			if pgconv.IsTransient(err) {
				slog.ErrorContext(ctx, "giving up on transaction", "attempts", attempt+1, "error", err)
				return errs.Mark(err, errRetriesExhausted)
			}
			return err
		}

		wait := u.retry.Delay(attempt)
		slog.WarnContext(ctx, "transaction conflict, retrying",
			"attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt owns exactly one pgx.Tx, so the deferred rollback never piles up
// across retries.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// pgTx binds every repository to the same transaction.
type pgTx struct {
	offers       shared.OfferRepository
	reservations shared.ReservationRepository
	history      shared.HistoryRepository
	roles        shared.RoleRepository
	outbox       shared.OutboxRepository
	idempotency  shared.IdempotencyRepository
	reads        shared.CommandReads
}

func newPgTx(q db.DBTX) *pgTx {
	return &pgTx{
		offers:       repository.NewOfferRepository(q),
		reservations: repository.NewReservationRepository(q),
		history:      repository.NewHistoryRepository(q),
		roles:        repository.NewRoleRepository(q),
		outbox:       repository.NewOutboxRepository(q),
		idempotency:  repository.NewIdempotencyRepository(q),
		reads:        readstore.NewCommandReadStore(q),
	}
}

func (t *pgTx) Offers() shared.OfferRepository             { return t.offers }
func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgTx) History() shared.HistoryRepository          { return t.history }
func (t *pgTx) Roles() shared.RoleRepository               { return t.roles }
func (t *pgTx) Outbox() shared.OutboxRepository            { return t.outbox }
func (t *pgTx) Idempotency() shared.IdempotencyRepository  { return t.idempotency }
func (t *pgTx) Reads() shared.CommandReads                 { return t.reads }
