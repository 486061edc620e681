package historydelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/historyservice"
	"github.com/paisa-app/paisa/internal/middleware"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/randompkg"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, service Service) (*gin.Engine, tokenpkg.Maker) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	handler := NewHandler(service)

	server := gin.Default()
	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/transactions", handler.List)

	return server, tokenMaker
}

func TestListAPI(t *testing.T) {
	const userID = int64(1)

	entries := []historyservice.Entry{
		{
			RecordID:     2,
			Amount:       40_000,
			Kind:         domain.KindTransfer,
			Direction:    historyservice.DirectionSent,
			Counterparty: "Asha Rao",
			Description:  "Payment to Asha Rao",
			Timestamp:    time.Now().Truncate(time.Second).UTC(),
		},
		{
			RecordID:    1,
			Amount:      100_000,
			Kind:        domain.KindAdd,
			Direction:   historyservice.DirectionAdded,
			Description: "Added money",
			Timestamp:   time.Now().Add(-time.Hour).Truncate(time.Second).UTC(),
		},
	}

	testCases := []struct {
		name           string
		url            string
		noAuth         bool
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkBody      func(body []byte)
	}{
		{
			name: "OK",
			url:  "/transactions?days=7",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					History(gomock.Any(), gomock.Eq(userID), gomock.Eq(7)).
					Times(1).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
			checkBody: func(body []byte) {
				var res struct {
					Data struct {
						Transactions []struct {
							RecordID     int64  `json:"record_id"`
							Amount       string `json:"amount"`
							Direction    string `json:"direction"`
							Counterparty string `json:"counterparty"`
						} `json:"transactions"`
					} `json:"data"`
				}

				require.NoError(t, json.Unmarshal(body, &res))
				require.Len(t, res.Data.Transactions, 2)
				require.Equal(t, int64(2), res.Data.Transactions[0].RecordID)
				require.Equal(t, "400.00", res.Data.Transactions[0].Amount)
				require.Equal(t, "sent", res.Data.Transactions[0].Direction)
				require.Equal(t, "Asha Rao", res.Data.Transactions[0].Counterparty)
				require.Equal(t, "added", res.Data.Transactions[1].Direction)
				require.Empty(t, res.Data.Transactions[1].Counterparty)
			},
		},
		{
			name: "DefaultWindow",
			url:  "/transactions",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					History(gomock.Any(), gomock.Eq(userID), gomock.Eq(0)).
					Times(1).
					Return([]historyservice.Entry{}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidDays",
			url:  "/transactions?days=-1",
			buildStubs: func(service *MockService) {
				service.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "NoAuthorization",
			url:    "/transactions",
			noAuth: true,
			buildStubs: func(service *MockService) {
				service.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InternalError",
			url:  "/transactions",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					History(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
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
			tc.buildStubs(service)

			server, tokenMaker := newTestServer(t, service)

			request, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			if !tc.noAuth {
				err = middleware.AddAuthorization(request, tokenMaker, middleware.AuthorizationTypeBearer, userID, time.Minute)
				require.NoError(t, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.checkBody != nil {
				tc.checkBody(recorder.Body.Bytes())
			}
		})
	}
}
