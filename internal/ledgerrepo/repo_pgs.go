// Package ledgerrepo manages repository layer of immutable ledger records.
package ledgerrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/pkg/dbpkg"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns ledger RepoPGS.
//
// Pass a *sql.Tx to make appends part of a caller-managed transaction.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// participantID converts a participant to its nullable column value. The
// system side is stored as NULL.
func participantID(p domain.Participant) sql.NullInt64 {
	if p.IsSystem() {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: p.UserID, Valid: true}
}

func participantFrom(id sql.NullInt64) domain.Participant {
	if !id.Valid {
		return domain.System()
	}

	return domain.UserParticipant(id.Int64)
}

const appendQuery = `
INSERT INTO
    transactions (sender_id, receiver_id, amount, kind, description)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, sender_id, receiver_id, amount, kind, description, created_at
`

// Append inserts a new immutable record and returns it with the generated
// id and commit timestamp.
func (r *RepoPGS) Append(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery,
		participantID(arg.Sender),
		participantID(arg.Receiver),
		arg.Amount,
		arg.Kind,
		arg.Description,
	)

	var (
		t                    domain.Transaction
		senderID, receiverID sql.NullInt64
	)

	err := row.Scan(
		&t.ID,
		&senderID,
		&receiverID,
		&t.Amount,
		&t.Kind,
		&t.Description,
		&t.Timestamp,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Append(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_sender_id_fkey", "transactions_receiver_id_fkey":
				return t, domain.ErrUserNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, domain.ErrPersistence
	}

	t.Sender = participantFrom(senderID)
	t.Receiver = participantFrom(receiverID)

	return t, nil
}

const getQuery = `
SELECT
    id, sender_id, receiver_id, amount, kind, description, created_at
FROM transactions
WHERE id = $1
`

// Get returns the record with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var (
		t                    domain.Transaction
		senderID, receiverID sql.NullInt64
	)

	err := row.Scan(
		&t.ID,
		&senderID,
		&receiverID,
		&t.Amount,
		&t.Kind,
		&t.Description,
		&t.Timestamp,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	t.Sender = participantFrom(senderID)
	t.Receiver = participantFrom(receiverID)

	return t, nil
}

const listForParticipantQuery = `
SELECT
    id, sender_id, receiver_id, amount, kind, description, created_at
FROM transactions
WHERE
    (sender_id = $1 OR receiver_id = $1)
    AND created_at >= $2
    AND created_at <= $3
ORDER BY created_at DESC, id DESC
`

// ListForParticipant returns all records where the user is sender or
// receiver within [from, to], newest first.
func (r *RepoPGS) ListForParticipant(ctx context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForParticipantQuery, userID, from, to)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t                    domain.Transaction
			senderID, receiverID sql.NullInt64
		)

		if err := rows.Scan(
			&t.ID,
			&senderID,
			&receiverID,
			&t.Amount,
			&t.Kind,
			&t.Description,
			&t.Timestamp,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.Sender = participantFrom(senderID)
		t.Receiver = participantFrom(receiverID)

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
