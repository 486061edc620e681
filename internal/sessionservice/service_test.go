package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/pkg/configpkg"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/randompkg"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T, repo Repo) *Service {
	t.Helper()

	config := configpkg.Config{
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	require.NoError(t, err)

	service, err := New(repo, config, tokenMaker)
	require.NoError(t, err)

	return service
}

func TestCreate(t *testing.T) {
	const userID = int64(1)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
			require.Equal(t, userID, arg.UserID)
			require.NotEmpty(t, arg.RefreshToken)
			require.NotZero(t, arg.ID)
			require.WithinDuration(t, time.Now().Add(time.Hour), arg.ExpiresAt, time.Minute)

			return domain.Session{
				ID:           arg.ID,
				UserID:       arg.UserID,
				RefreshToken: arg.RefreshToken,
				ExpiresAt:    arg.ExpiresAt,
			}, nil
		})

	service := testService(t, repo)

	arg := domain.CreateSessionParams{UserID: userID, UserAgent: "agent", ClientIP: "127.0.0.1"}

	accessToken, accessExpiresAt, sess, err := service.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), accessExpiresAt, time.Minute)
	require.Equal(t, userID, sess.UserID)

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, userID, payload.UserID)
}

func TestCreateRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(domain.Session{}, errorspkg.ErrInternal)

	service := testService(t, repo)

	accessToken, _, _, err := service.Create(context.Background(), domain.CreateSessionParams{UserID: 1})
	require.ErrorIs(t, err, errorspkg.ErrInternal)
	require.Empty(t, accessToken)
}

func TestRenewAccessToken(t *testing.T) {
	const userID = int64(1)

	testCases := []struct {
		name       string
		buildStubs func(service *Service, repo *MockRepo) string
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, payload, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Return(domain.Session{
						ID:           payload.ID,
						UserID:       userID,
						RefreshToken: refreshToken,
						ExpiresAt:    payload.ExpiredAt,
					}, nil)

				return refreshToken
			},
		},
		{
			name: "InvalidToken",
			buildStubs: func(service *Service, repo *MockRepo) string {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				return "not-a-token"
			},
			wantErr: tokenpkg.ErrInvalidToken,
		},
		{
			name: "SessionNotFound",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, _, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(domain.Session{}, domain.ErrSessionNotFound)

				return refreshToken
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "BlockedSession",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, payload, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Return(domain.Session{
						ID:           payload.ID,
						UserID:       userID,
						RefreshToken: refreshToken,
						IsBlocked:    true,
						ExpiresAt:    payload.ExpiredAt,
					}, nil)

				return refreshToken
			},
			wantErr: domain.ErrBlockedSession,
		},
		{
			name: "WrongUser",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, payload, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Return(domain.Session{
						ID:           payload.ID,
						UserID:       userID + 1,
						RefreshToken: refreshToken,
						ExpiresAt:    payload.ExpiredAt,
					}, nil)

				return refreshToken
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "MismatchedRefreshToken",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, payload, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Return(domain.Session{
						ID:           payload.ID,
						UserID:       userID,
						RefreshToken: "another-token",
						ExpiresAt:    payload.ExpiredAt,
					}, nil)

				return refreshToken
			},
			wantErr: domain.ErrMismatchedRefreshToken,
		},
		{
			name: "ExpiredSession",
			buildStubs: func(service *Service, repo *MockRepo) string {
				refreshToken, payload, err := service.TokenMaker.CreateToken(userID, time.Hour)
				require.NoError(t, err)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Return(domain.Session{
						ID:           payload.ID,
						UserID:       userID,
						RefreshToken: refreshToken,
						ExpiresAt:    time.Now().Add(-time.Minute),
					}, nil)

				return refreshToken
			},
			wantErr: domain.ErrExpiredSession,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := testService(t, repo)

			refreshToken := tc.buildStubs(service, repo)

			accessToken, expiresAt, err := service.RenewAccessToken(context.Background(), refreshToken)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, accessToken)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)

			payload, err := service.TokenMaker.VerifyToken(accessToken)
			require.NoError(t, err)
			require.Equal(t, userID, payload.UserID)
		})
	}
}
