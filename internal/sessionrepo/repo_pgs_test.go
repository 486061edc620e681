package sessionrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/test"
	"github.com/paisa-app/paisa/pkg/configpkg"
	"github.com/paisa-app/paisa/pkg/dbpkg"
	"github.com/paisa-app/paisa/pkg/randompkg"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	testDB          *sql.DB
	testSessionRepo *RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err = dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testSessionRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomSession(t *testing.T, userID int64) domain.Session {
	t.Helper()

	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: randompkg.String(32),
		UserAgent:    "test-agent",
		ClientIP:     "127.0.0.1",
		ExpiresAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	session, err := testSessionRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.Equal(t, arg.ID, session.ID)
	require.Equal(t, arg.UserID, session.UserID)
	require.Equal(t, arg.RefreshToken, session.RefreshToken)
	require.Equal(t, arg.UserAgent, session.UserAgent)
	require.Equal(t, arg.ClientIP, session.ClientIP)
	require.False(t, session.IsBlocked)
	require.NotZero(t, session.CreatedAt)

	return session
}

func TestCreate(t *testing.T) {
	user := test.SeedUser(t, testDB)
	createRandomSession(t, user.ID)
}

func TestCreateUserNotFound(t *testing.T) {
	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       -1,
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	session, err := testSessionRepo.Create(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.Empty(t, session)
}

func TestGet(t *testing.T) {
	user := test.SeedUser(t, testDB)
	session1 := createRandomSession(t, user.ID)

	session2, err := testSessionRepo.Get(context.Background(), session1.ID)
	require.NoError(t, err)
	require.Equal(t, session1.ID, session2.ID)
	require.Equal(t, session1.UserID, session2.UserID)
	require.Equal(t, session1.RefreshToken, session2.RefreshToken)
}

func TestGetNotFound(t *testing.T) {
	session, err := testSessionRepo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.Empty(t, session)
}
