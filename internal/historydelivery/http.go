// Package historydelivery manages delivery layer of transaction history.
package historydelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paisa-app/paisa/internal/historyservice"
	"github.com/paisa-app/paisa/internal/middleware"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/moneypkg"
	"github.com/paisa-app/paisa/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by history delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package historydelivery
type Service interface {
	History(ctx context.Context, userID int64, windowDays int) ([]historyservice.Entry, error)
}

// Handler facilitates history delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns history handler.
func NewHandler(hs Service) *Handler {
	return &Handler{
		service: hs,
	}
}

type listRequest struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

type listEntry struct {
	RecordID     int64  `json:"record_id"`
	Amount       string `json:"amount"`
	Kind         string `json:"kind"`
	Direction    string `json:"direction"`
	Counterparty string `json:"counterparty,omitempty"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

type listData struct {
	Transactions []listEntry `json:"transactions"`
}

// List handles http request for the authenticated user's history.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := middleware.AuthPayload(gctx)

	entries, err := h.service.History(ctx, authPayload.UserID, req.Days)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	items := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		items = append(items, listEntry{
			RecordID:     e.RecordID,
			Amount:       moneypkg.FromPaise(e.Amount),
			Kind:         string(e.Kind),
			Direction:    string(e.Direction),
			Counterparty: e.Counterparty,
			Description:  e.Description,
			Timestamp:    e.Timestamp.Format(time.RFC3339),
		})
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{Transactions: items}})
}
