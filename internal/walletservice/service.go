// Package walletservice manages business logic layer of money movement.
//
// It is the only entry point that mutates balances: every flow validates its
// input, resolves the participants, and hands the deltas plus the ledger
// record to the wallet repository as one atomic unit of work.
package walletservice

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/walletrepo"
	"github.com/paisa-app/paisa/pkg/configpkg"
	"github.com/paisa-app/paisa/pkg/moneypkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type Repo interface {
	TransferTx(ctx context.Context, arg walletrepo.TransferTxParams) (walletrepo.TransferTxResult, error)
}

// UserGetter resolves transfer participants.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type UserGetter interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
}

const (
	defaultMaxRetries = 3
	defaultTimeout    = 5 * time.Second

	baseBackoff = 50 * time.Millisecond
	maxBackoff  = time.Second
)

var phoneRE = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Service facilitates wallet service layer logic.
type Service struct {
	repo       Repo
	users      UserGetter
	maxRetries int
	timeout    time.Duration
}

// New returns wallet service struct to manage money movement business logic.
func New(repo Repo, users UserGetter, config configpkg.Config) *Service {
	maxRetries := config.TransferMaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	timeout := config.TransferTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Service{
		repo:       repo,
		users:      users,
		maxRetries: maxRetries,
		timeout:    timeout,
	}
}

// AddFundsResult is the outcome of a completed add-funds flow.
type AddFundsResult struct {
	Balance int64
	Record  domain.Transaction
}

// TransferResult is the outcome of a completed peer transfer.
type TransferResult struct {
	SenderBalance int64
	ReceiverName  string
	Record        domain.Transaction
}

// parseAmount converts a rupee string into positive paise.
func parseAmount(amount string) (int64, error) {
	paise, err := moneypkg.ToPaise(amount)
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}

	if paise <= 0 {
		return 0, domain.ErrNegativeAmount
	}

	return paise, nil
}

// AddFunds credits the user's wallet from outside the closed system.
func (s *Service) AddFunds(ctx context.Context, userID int64, amount, method string) (AddFundsResult, error) {
	l := zerolog.Ctx(ctx)

	paise, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return AddFundsResult{}, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return AddFundsResult{}, err
	}

	description := "Added money"
	if method != "" {
		description = "Added money via " + method
	}

	arg := walletrepo.TransferTxParams{
		Deltas: []domain.BalanceDelta{
			{UserID: user.ID, Amount: paise},
		},
		Record: domain.CreateTransactionParams{
			Sender:      domain.System(),
			Receiver:    domain.UserParticipant(user.ID),
			Amount:      paise,
			Kind:        domain.KindAdd,
			Description: description,
		},
	}

	result, err := s.execTx(ctx, arg)
	if err != nil {
		return AddFundsResult{}, err
	}

	return AddFundsResult{
		Balance: result.Users[0].Balance,
		Record:  result.Record,
	}, nil
}

// Transfer moves money from the sender to the user owning receiverPhone.
//
// The balance pre-check here is advisory: it short-circuits an obviously
// doomed request, but the authoritative check runs inside the unit of work
// against the same snapshot as the update.
func (s *Service) Transfer(ctx context.Context, senderID int64, receiverPhone, amount, description string) (TransferResult, error) {
	l := zerolog.Ctx(ctx)

	paise, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return TransferResult{}, err
	}

	if !phoneRE.MatchString(receiverPhone) {
		l.Info().Str("phone", receiverPhone).Msg("invalid receiver phone")
		return TransferResult{}, domain.ErrInvalidPhone
	}

	sender, err := s.users.Get(ctx, senderID)
	if err != nil {
		return TransferResult{}, err
	}

	receiver, err := s.users.GetByPhone(ctx, receiverPhone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return TransferResult{}, domain.ErrRecipientNotFound
		}

		return TransferResult{}, err
	}

	if sender.ID == receiver.ID {
		l.Info().Int64("user_id", sender.ID).Msg("self transfer rejected")
		return TransferResult{}, domain.ErrSelfTransfer
	}

	if sender.Balance < paise {
		return TransferResult{}, domain.ErrInsufficientBalance
	}

	if description == "" {
		description = "Payment to " + receiver.DisplayName()
	}

	arg := walletrepo.TransferTxParams{
		Deltas: []domain.BalanceDelta{
			{UserID: sender.ID, Amount: -paise},
			{UserID: receiver.ID, Amount: paise},
		},
		Record: domain.CreateTransactionParams{
			Sender:      domain.UserParticipant(sender.ID),
			Receiver:    domain.UserParticipant(receiver.ID),
			Amount:      paise,
			Kind:        domain.KindTransfer,
			Description: description,
		},
	}

	result, err := s.execTx(ctx, arg)
	if err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		SenderBalance: result.Users[0].Balance,
		ReceiverName:  receiver.DisplayName(),
		Record:        result.Record,
	}, nil
}

// DebitForService pays the given amount out of the user's wallet to the
// system side, e.g. for a recharge or bill payment.
func (s *Service) DebitForService(ctx context.Context, userID int64, amount, description string) (AddFundsResult, error) {
	l := zerolog.Ctx(ctx)

	paise, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return AddFundsResult{}, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return AddFundsResult{}, err
	}

	if user.Balance < paise {
		return AddFundsResult{}, domain.ErrInsufficientBalance
	}

	arg := walletrepo.TransferTxParams{
		Deltas: []domain.BalanceDelta{
			{UserID: user.ID, Amount: -paise},
		},
		Record: domain.CreateTransactionParams{
			Sender:      domain.UserParticipant(user.ID),
			Receiver:    domain.System(),
			Amount:      paise,
			Kind:        domain.KindTransfer,
			Description: description,
		},
	}

	result, err := s.execTx(ctx, arg)
	if err != nil {
		return AddFundsResult{}, err
	}

	return AddFundsResult{
		Balance: result.Users[0].Balance,
		Record:  result.Record,
	}, nil
}

// execTx runs the unit of work with a per-attempt deadline, retrying write
// conflicts with capped exponential backoff.
func (s *Service) execTx(ctx context.Context, arg walletrepo.TransferTxParams) (walletrepo.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var (
		result walletrepo.TransferTxResult
		err    error
	)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		result, err = s.repo.TransferTx(attemptCtx, arg)
		cancel()

		if err == nil {
			return result, nil
		}

		if !errors.Is(err, domain.ErrConflictRetryable) {
			return walletrepo.TransferTxResult{}, err
		}

		backoff := backoffWithJitter(attempt)
		l.Warn().
			Int("attempt", attempt+1).
			Int("max_retries", s.maxRetries).
			Str("backoff", backoff.String()).
			Msg("write conflict, retrying unit of work")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return walletrepo.TransferTxResult{}, domain.ErrPersistence
		}
	}

	l.Warn().Int("attempts", s.maxRetries).Msg("conflict retries exhausted")

	return walletrepo.TransferTxResult{}, domain.ErrTransientFailure
}

func backoffWithJitter(attempt int) time.Duration {
	backoff := baseBackoff * (1 << uint(attempt))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	// Up to 20% jitter to avoid retry lockstep between competing flows.
	jitter := time.Duration(float64(backoff) * 0.2 * (float64(time.Now().UnixNano()%100) / 100.0))

	return backoff + jitter
}
