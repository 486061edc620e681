// Package historyservice reconstructs a display friendly transaction
// history for one user.
package historyservice

import (
	"context"
	"time"

	"github.com/paisa-app/paisa/internal/domain"
)

// LedgerRepo provides ledger access needed by the history service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package historyservice
type LedgerRepo interface {
	ListForParticipant(ctx context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error)
}

// UserResolver batch-resolves counterparty display names.
//
//go:generate mockgen -source service.go -destination service_mock.go -package historyservice
type UserResolver interface {
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

// DefaultWindowDays is used when the caller does not pass a window.
const DefaultWindowDays = 30

// UnknownCounterparty is rendered when a counterpart id no longer resolves
// to a user.
const UnknownCounterparty = "Unknown"

// Direction classifies a record from the viewpoint of the queried user.
type Direction string

// All history directions.
const (
	DirectionAdded    Direction = "added"
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Entry is one history row: the immutable record joined with the resolved
// counterparty name.
type Entry struct {
	RecordID     int64                  `json:"record_id"`
	Amount       int64                  `json:"amount"`
	Kind         domain.TransactionKind `json:"kind"`
	Direction    Direction              `json:"direction"`
	Counterparty string                 `json:"counterparty"`
	Description  string                 `json:"description"`
	Timestamp    time.Time              `json:"timestamp"`
}

// Service facilitates history service layer logic.
type Service struct {
	ledger LedgerRepo
	users  UserResolver
}

// New returns history service struct.
func New(ledger LedgerRepo, users UserResolver) *Service {
	return &Service{
		ledger: ledger,
		users:  users,
	}
}

// History returns the user's records over the last windowDays, newest
// first, each joined with the other participant's display name.
//
// A counterpart that no longer resolves renders as UnknownCounterparty
// rather than failing the whole query.
func (s *Service) History(ctx context.Context, userID int64, windowDays int) ([]Entry, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	to := time.Now()
	from := to.AddDate(0, 0, -windowDays)

	records, err := s.ledger.ListForParticipant(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	names, err := s.resolveNames(ctx, userID, records)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))

	for _, t := range records {
		other := counterpartOf(t, userID)

		counterparty := ""
		if !other.IsSystem() {
			name, ok := names[other.UserID]
			if !ok {
				name = UnknownCounterparty
			}
			counterparty = name
		}

		entries = append(entries, Entry{
			RecordID:     t.ID,
			Amount:       t.Amount,
			Kind:         t.Kind,
			Direction:    directionOf(t, userID),
			Counterparty: counterparty,
			Description:  t.Description,
			Timestamp:    t.Timestamp,
		})
	}

	return entries, nil
}

// resolveNames fetches all counterparty users in one query.
func (s *Service) resolveNames(ctx context.Context, userID int64, records []domain.Transaction) (map[int64]string, error) {
	idSet := map[int64]struct{}{}

	for _, t := range records {
		other := counterpartOf(t, userID)
		if !other.IsSystem() {
			idSet[other.UserID] = struct{}{}
		}
	}

	if len(idSet) == 0 {
		return map[int64]string{}, nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}

	return names, nil
}

func counterpartOf(t domain.Transaction, userID int64) domain.Participant {
	if t.Sender.UserID == userID && !t.Sender.IsSystem() {
		return t.Receiver
	}

	return t.Sender
}

func directionOf(t domain.Transaction, userID int64) Direction {
	switch {
	case t.Kind == domain.KindAdd:
		return DirectionAdded
	case t.Sender.UserID == userID && !t.Sender.IsSystem():
		return DirectionSent
	default:
		return DirectionReceived
	}
}
