// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates a user with zero balance and returns it.
func (s *Service) Create(ctx context.Context, firstName, lastName, phone, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		HashedPassword: hashedPassword,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// CheckPassword checks if the password is valid for the user owning the
// given phone number.
func (s *Service) CheckPassword(ctx context.Context, phone, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return response, err
	}

	if err := passpkg.Check(password, gotUser.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	return NewUserWithoutPassword(gotUser), nil
}

// Get returns the user profile with the current balance.
func (s *Service) Get(ctx context.Context, id int64) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// FindByPhone returns the public profile of the user owning the phone
// number, for recipient lookup before sending money.
func (s *Service) FindByPhone(ctx context.Context, phone string) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	found := NewUserWithoutPassword(gotUser)
	// Recipient lookup must not leak the balance.
	found.Balance = 0

	return found, nil
}

// UpdateName changes the user's display name. It never touches the balance.
func (s *Service) UpdateName(ctx context.Context, id int64, firstName, lastName string) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.UpdateName(ctx, id, firstName, lastName)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}
