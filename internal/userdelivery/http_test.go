package userdelivery

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/middleware"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/randompkg"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("phone", ValidPhone); err != nil {
			log.Fatal("cannot register phone validator:", err)
		}
	}

	os.Exit(m.Run())
}

func randomUserWithoutPassword() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        randompkg.Intn(1000) + 1,
		FirstName: randompkg.Name(),
		LastName:  randompkg.Name(),
		Phone:     randompkg.Phone(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func testSession(userID int64) domain.Session {
	return domain.Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
	}
}

func newTestServer(t *testing.T, service Service, sessionMaker SessionMaker) (*gin.Engine, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	handler := NewHandler(service, sessionMaker)

	server := gin.Default()
	server.POST("/users", handler.Create)
	server.POST("/users/login", handler.Login)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/users/me", handler.Me)
	authRoutes.PATCH("/users/me", handler.Update)
	authRoutes.GET("/users/find", handler.Find)

	return server, tokenMaker
}

func TestCreateAPI(t *testing.T) {
	user := randomUserWithoutPassword()
	password := randompkg.String(10)

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      user.Phone,
				"password":   password,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(user.FirstName), gomock.Eq(user.LastName), gomock.Eq(user.Phone), gomock.Eq(password)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("access-token", time.Now().Add(time.Minute), testSession(user.ID), nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidPhone",
			requestBody: gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      "abc",
				"password":   password,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ShortPassword",
			requestBody: gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      user.Phone,
				"password":   "short",
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "PhoneAlreadyExists",
			requestBody: gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      user.Phone,
				"password":   password,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrPhoneAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "SessionMakerError",
			requestBody: gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      user.Phone,
				"password":   password,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Session{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)
			tc.buildStubs(service, sessionMaker)

			server, _ := newTestServer(t, service, sessionMaker)

			data, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(data))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestLoginAPI(t *testing.T) {
	user := randomUserWithoutPassword()
	password := randompkg.String(10)

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
	}{
		{
			name:        "OK",
			requestBody: gin.H{"phone": user.Phone, "password": password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Phone), gomock.Eq(password)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("access-token", time.Now().Add(time.Minute), testSession(user.ID), nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "UserNotFound",
			requestBody: gin.H{"phone": user.Phone, "password": password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:        "WrongPassword",
			requestBody: gin.H{"phone": user.Phone, "password": password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrWrongPassword)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)
			tc.buildStubs(service, sessionMaker)

			server, _ := newTestServer(t, service, sessionMaker)

			data, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(data))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestMeAPI(t *testing.T) {
	user := randomUserWithoutPassword()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	sessionMaker := NewMockSessionMaker(ctrl)

	service.EXPECT().Get(gomock.Any(), gomock.Eq(user.ID)).Return(user, nil)

	server, tokenMaker := newTestServer(t, service, sessionMaker)

	request, err := http.NewRequest(http.MethodGet, "/users/me", nil)
	require.NoError(t, err)

	err = middleware.AddAuthorization(request, tokenMaker, middleware.AuthorizationTypeBearer, user.ID, time.Minute)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestFindAPI(t *testing.T) {
	user := randomUserWithoutPassword()

	testCases := []struct {
		name           string
		phone          string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name:  "OK",
			phone: user.Phone,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					FindByPhone(gomock.Any(), gomock.Eq(user.Phone)).
					Times(1).
					Return(user, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "NotFound",
			phone: user.Phone,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					FindByPhone(gomock.Any(), gomock.Eq(user.Phone)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:  "InvalidPhone",
			phone: "abc",
			buildStubs: func(service *MockService) {
				service.EXPECT().FindByPhone(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)
			tc.buildStubs(service)

			server, tokenMaker := newTestServer(t, service, sessionMaker)

			request, err := http.NewRequest(http.MethodGet, "/users/find?phone="+tc.phone, nil)
			require.NoError(t, err)

			err = middleware.AddAuthorization(request, tokenMaker, middleware.AuthorizationTypeBearer, user.ID, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestUpdateAPI(t *testing.T) {
	user := randomUserWithoutPassword()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	sessionMaker := NewMockSessionMaker(ctrl)

	updated := user
	updated.FirstName = "Asha"
	updated.LastName = "Rao"

	service.EXPECT().
		UpdateName(gomock.Any(), gomock.Eq(user.ID), gomock.Eq("Asha"), gomock.Eq("Rao")).
		Return(updated, nil)

	server, tokenMaker := newTestServer(t, service, sessionMaker)

	data, err := json.Marshal(gin.H{"first_name": "Asha", "last_name": "Rao"})
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(data))
	require.NoError(t, err)

	err = middleware.AddAuthorization(request, tokenMaker, middleware.AuthorizationTypeBearer, user.ID, time.Minute)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}
