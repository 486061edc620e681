// Package walletrepo manages the atomic unit of work that moves money.
package walletrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/ledgerrepo"
	"github.com/paisa-app/paisa/internal/userrepo"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates wallet repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns wallet RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// TransferTxParams describes one balance movement: the signed deltas to
// apply and the ledger record documenting them.
type TransferTxParams struct {
	Deltas []domain.BalanceDelta
	Record domain.CreateTransactionParams
}

// TransferTxResult is the result of a committed balance movement.
type TransferTxResult struct {
	Record domain.Transaction
	// Users holds the post-commit user rows aligned with Deltas.
	Users []domain.User
}

// TransferTx applies the deltas and appends the ledger record within a
// single database transaction.
//
// Either every delta and the record become durably visible together or
// nothing does. Domain errors from the balance update (ErrUserNotFound,
// ErrInsufficientBalance, ErrConflictRetryable) pass through so the service
// layer can decide whether to retry.
func (r *RepoPGS) TransferTx(ctx context.Context, arg TransferTxParams) (TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrPersistence
	}

	committed := false

	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	userRepo := userrepo.NewRepoPGS(tx)
	ledgerRepo := ledgerrepo.NewRepoPGS(tx)

	result.Users, err = userRepo.ApplyDeltas(ctx, arg.Deltas)
	if err != nil {
		return TransferTxResult{}, err
	}

	result.Record, err = ledgerRepo.Append(ctx, arg.Record)
	if err != nil {
		return TransferTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return TransferTxResult{}, mapCommitError(ctx, err)
	}

	committed = true

	return result, nil
}

func mapCommitError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return domain.ErrPersistence
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == "40001" || pqErr.Code == "40P01") {
		return domain.ErrConflictRetryable
	}

	return domain.ErrPersistence
}
