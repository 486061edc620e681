package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the user does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates an attempt to send money to one's own wallet.
	ErrSelfTransfer = errors.New("cannot send money to your own account")
	// ErrRecipientNotFound indicates that no user owns the given phone number.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrConflictRetryable indicates a write conflict with a concurrent
	// mutation on the same user; the whole unit of work can be retried.
	ErrConflictRetryable = errors.New("concurrent balance update conflict")
	// ErrTransientFailure indicates that conflict retries were exhausted.
	ErrTransientFailure = errors.New("transient failure, please retry")
	// ErrPersistence indicates that the store could not durably commit.
	ErrPersistence = errors.New("persistence failure")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionKind classifies a ledger record.
type TransactionKind string

// All ledger record kinds. KindWithdraw is declared for forward
// compatibility; no current flow emits it.
const (
	KindAdd      TransactionKind = "ADD"
	KindTransfer TransactionKind = "TRANSFER"
	KindWithdraw TransactionKind = "WITHDRAW"
)

// Participant identifies one side of a ledger record. The zero value is the
// system side, which is not a user and carries no balance.
type Participant struct {
	UserID int64 `json:"user_id,omitempty"`
}

// UserParticipant returns the participant for a real user.
func UserParticipant(id int64) Participant {
	return Participant{UserID: id}
}

// System returns the sentinel participant representing money entering or
// leaving the closed system.
func System() Participant {
	return Participant{}
}

// IsSystem reports whether the participant is the system side.
func (p Participant) IsSystem() bool {
	return p.UserID == 0
}

// Transaction holds one immutable ledger record. Amount is in paise and
// always positive; the direction is carried by sender and receiver.
type Transaction struct {
	ID          int64           `json:"id"`
	Sender      Participant     `json:"sender"`
	Receiver    Participant     `json:"receiver"`
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// CreateTransactionParams is the input data for a ledger append. The record
// id and timestamp are assigned at insertion.
type CreateTransactionParams struct {
	Sender      Participant     `json:"sender"`
	Receiver    Participant     `json:"receiver"`
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
}

// BalanceDelta is one signed balance change to apply to a user.
type BalanceDelta struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}
