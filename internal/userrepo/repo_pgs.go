// Package userrepo manages repository layer of users and their balances.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/pkg/dbpkg"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
//
// Pass a *sql.Tx to bind the repository to a caller-managed transaction.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const userColumns = `id, first_name, last_name, phone, hashed_password, balance, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.HashedPassword,
		&u.Balance,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

const createQuery = `
INSERT INTO users (
    first_name,
    last_name,
    phone,
    hashed_password
) VALUES (
    $1, $2, $3, $4
) RETURNING ` + userColumns

// Create creates the user with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FirstName,
		arg.LastName,
		arg.Phone,
		arg.HashedPassword,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "users_phone_key" {
				return u, domain.ErrPhoneAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByPhoneQuery = `
SELECT ` + userColumns + `
FROM users
WHERE phone = $1
`

// GetByPhone returns the user owning the given phone number.
func (r *RepoPGS) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, getByPhoneQuery, phone))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listByIDsQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = ANY($1)
`

// ListByIDs returns the users with the given ids. Missing ids are simply
// absent from the result, not an error.
func (r *RepoPGS) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByIDsQuery, pq.Array(ids))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.FirstName,
			&u.LastName,
			&u.Phone,
			&u.HashedPassword,
			&u.Balance,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return users, nil
}

const updateNameQuery = `
UPDATE users
SET first_name = $1, last_name = $2, updated_at = now()
WHERE id = $3
RETURNING ` + userColumns

// UpdateName changes the user's display name and returns the updated user.
func (r *RepoPGS) UpdateName(ctx context.Context, id int64, firstName, lastName string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, updateNameQuery, firstName, lastName, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const applyDeltaQuery = `
UPDATE users
SET balance = balance + $1, updated_at = now()
WHERE id = $2
RETURNING ` + userColumns

// ApplyDeltas applies up to two signed balance changes and returns the
// updated users aligned with the input order.
//
// The updates are issued in ascending user id order so that two concurrent
// opposite-direction transfers cannot deadlock. Callers that need the deltas
// applied atomically must bind the repository to a transaction.
func (r *RepoPGS) ApplyDeltas(ctx context.Context, deltas []domain.BalanceDelta) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	if len(deltas) == 0 || len(deltas) > 2 {
		l.Error().Int("deltas", len(deltas)).Msg("ApplyDeltas supports one or two deltas")
		return nil, errorspkg.ErrInternal
	}

	if len(deltas) == 2 && deltas[0].UserID == deltas[1].UserID {
		l.Error().Int64("user_id", deltas[0].UserID).Msg("duplicate user in deltas")
		return nil, errorspkg.ErrInternal
	}

	for _, d := range deltas {
		if d.Amount == 0 {
			l.Error().Int64("user_id", d.UserID).Msg("zero delta")
			return nil, errorspkg.ErrInternal
		}
	}

	order := make([]int, len(deltas))
	for i := range deltas {
		order[i] = i
	}

	if len(order) == 2 && deltas[order[0]].UserID > deltas[order[1]].UserID {
		order[0], order[1] = order[1], order[0]
	}

	users := make([]domain.User, len(deltas))

	for _, i := range order {
		d := deltas[i]

		u, err := scanUser(r.db.QueryRowContext(ctx, applyDeltaQuery, d.Amount, d.UserID))
		if err != nil {
			l.Error().Err(err).Int64("user_id", d.UserID).Int64("delta", d.Amount).Send()
			return nil, mapBalanceError(err)
		}

		users[i] = u
	}

	return users, nil
}

// mapBalanceError translates driver errors from a balance update into
// domain errors.
func mapBalanceError(err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrUserNotFound
	}

	if pqErr, ok := err.(*pq.Error); ok {
		switch {
		case pqErr.Constraint == "users_balance_check":
			return domain.ErrInsufficientBalance
		case pqErr.Code == "40001" || pqErr.Code == "40P01":
			// serialization_failure and deadlock_detected are safe to
			// retry from the top of the unit of work.
			return domain.ErrConflictRetryable
		}
	}

	return errorspkg.ErrInternal
}
