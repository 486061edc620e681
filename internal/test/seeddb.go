// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/ledgerrepo"
	"github.com/paisa-app/paisa/internal/userrepo"
	"github.com/paisa-app/paisa/pkg/dbpkg"
	"github.com/paisa-app/paisa/pkg/passpkg"
	"github.com/paisa-app/paisa/pkg/randompkg"
)

// SeedUser creates a random user with zero balance inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		FirstName:      randompkg.Name(),
		LastName:       randompkg.Name(),
		Phone:          randompkg.Phone(),
		HashedPassword: hashedPassword,
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedUserWithBalance creates a random user and credits the given paise.
func SeedUserWithBalance(t *testing.T, tx dbpkg.SQLInterface, paise int64) domain.User {
	t.Helper()

	user := SeedUser(t, tx)

	userRepo := userrepo.NewRepoPGS(tx)

	deltas := []domain.BalanceDelta{{UserID: user.ID, Amount: paise}}

	users, err := userRepo.ApplyDeltas(context.Background(), deltas)
	if err != nil {
		t.Fatalf("userRepo.ApplyDeltas(context.Background(), %+v) returned error: %v", deltas, err)
	}

	return users[0]
}

// SeedRecord appends a ledger record inside a test transaction.
func SeedRecord(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateTransactionParams) domain.Transaction {
	t.Helper()

	ledgerRepo := ledgerrepo.NewRepoPGS(tx)

	record, err := ledgerRepo.Append(context.Background(), arg)
	if err != nil {
		t.Fatalf("ledgerRepo.Append(context.Background(), %+v) returned error: %v", arg, err)
	}

	return record
}

// SeedAddRecord appends a system credit record for the user.
func SeedAddRecord(t *testing.T, tx dbpkg.SQLInterface, userID, paise int64) domain.Transaction {
	t.Helper()

	return SeedRecord(t, tx, domain.CreateTransactionParams{
		Sender:      domain.System(),
		Receiver:    domain.UserParticipant(userID),
		Amount:      paise,
		Kind:        domain.KindAdd,
		Description: "Added money",
	})
}

// SeedTransferRecord appends a peer transfer record between two users.
func SeedTransferRecord(t *testing.T, tx dbpkg.SQLInterface, senderID, receiverID, paise int64) domain.Transaction {
	t.Helper()

	return SeedRecord(t, tx, domain.CreateTransactionParams{
		Sender:      domain.UserParticipant(senderID),
		Receiver:    domain.UserParticipant(receiverID),
		Amount:      paise,
		Kind:        domain.KindTransfer,
		Description: "Payment",
	})
}
