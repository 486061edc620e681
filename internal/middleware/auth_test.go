package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paisa-app/paisa/pkg/randompkg"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	const userID = int64(1)

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		wantStatusCode int
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := AddAuthorization(request, tokenMaker, AuthorizationTypeBearer, userID, time.Minute)
				require.NoError(t, err)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := AddAuthorization(request, tokenMaker, "unsupported", userID, time.Minute)
				require.NoError(t, err)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAuthorizationFormat",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := AddAuthorization(request, tokenMaker, "", userID, time.Minute)
				require.NoError(t, err)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := AddAuthorization(request, tokenMaker, AuthorizationTypeBearer, userID, -time.Minute)
				require.NoError(t, err)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)

			tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
			require.NoError(t, err)

			server := gin.New()

			authPath := "/auth"
			server.GET(
				authPath,
				AuthMiddleware(tokenMaker),
				func(ctx *gin.Context) {
					payload := AuthPayload(ctx)
					require.Equal(t, userID, payload.UserID)
					ctx.JSON(http.StatusOK, gin.H{})
				},
			)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestAddAuthorizationSetsHeader(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	err = AddAuthorization(request, tokenMaker, AuthorizationTypeBearer, 1, time.Minute)
	require.NoError(t, err)

	header := request.Header.Get(AuthorizationHeaderKey)
	require.NotEmpty(t, header)
	require.Contains(t, header, fmt.Sprintf("%s ", AuthorizationTypeBearer))
}
