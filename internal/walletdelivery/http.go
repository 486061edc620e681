// Package walletdelivery manages delivery layer of money movement.
package walletdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/paisa-app/paisa/internal/domain"
	"github.com/paisa-app/paisa/internal/middleware"
	"github.com/paisa-app/paisa/internal/walletservice"
	"github.com/paisa-app/paisa/pkg/errorspkg"
	"github.com/paisa-app/paisa/pkg/moneypkg"
	"github.com/paisa-app/paisa/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	AddFunds(ctx context.Context, userID int64, amount, method string) (walletservice.AddFundsResult, error)
	Transfer(ctx context.Context, senderID int64, receiverPhone, amount, description string) (walletservice.TransferResult, error)
	DebitForService(ctx context.Context, userID int64, amount, description string) (walletservice.AddFundsResult, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns wallet handler.
func NewHandler(ws Service) *Handler {
	return &Handler{
		service: ws,
	}
}

func bindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func serviceError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrInsufficientBalance):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipientNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrTransientFailure):
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type addMoneyRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
}

type addMoneyData struct {
	Balance   string    `json:"balance"`
	Amount    string    `json:"amount"`
	RecordID  int64     `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
}

// AddMoney handles http request to credit the authenticated user's wallet.
func (h *Handler) AddMoney(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req addMoneyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := middleware.AuthPayload(gctx)

	result, err := h.service.AddFunds(ctx, authPayload.UserID, req.Amount, req.Method)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := web.Response{
		Data: addMoneyData{
			Balance:   moneypkg.FromPaise(result.Balance),
			Amount:    moneypkg.FromPaise(result.Record.Amount),
			RecordID:  result.Record.ID,
			Timestamp: result.Record.Timestamp,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type sendRequest struct {
	ReceiverPhone string `json:"receiver_phone" binding:"required,phone"`
	Amount        string `json:"amount" binding:"required"`
	Description   string `json:"description"`
}

type sendData struct {
	Balance      string    `json:"balance"`
	Amount       string    `json:"amount"`
	ReceiverName string    `json:"receiver_name"`
	RecordID     int64     `json:"record_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// Send handles http request to transfer money to another user by phone.
func (h *Handler) Send(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req sendRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := middleware.AuthPayload(gctx)

	result, err := h.service.Transfer(ctx, authPayload.UserID, req.ReceiverPhone, req.Amount, req.Description)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := web.Response{
		Data: sendData{
			Balance:      moneypkg.FromPaise(result.SenderBalance),
			Amount:       moneypkg.FromPaise(result.Record.Amount),
			ReceiverName: result.ReceiverName,
			RecordID:     result.Record.ID,
			Timestamp:    result.Record.Timestamp,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type rechargeRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,phone"`
	Operator     string `json:"operator" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
}

type rechargeData struct {
	Balance      string    `json:"balance"`
	Amount       string    `json:"amount"`
	MobileNumber string    `json:"mobile_number"`
	Operator     string    `json:"operator"`
	RecordID     int64     `json:"record_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// Recharge handles http request to pay a mobile recharge from the wallet.
func (h *Handler) Recharge(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req rechargeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := middleware.AuthPayload(gctx)

	description := "Mobile recharge for " + req.MobileNumber + " (" + req.Operator + ")"

	result, err := h.service.DebitForService(ctx, authPayload.UserID, req.Amount, description)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := web.Response{
		Data: rechargeData{
			Balance:      moneypkg.FromPaise(result.Balance),
			Amount:       moneypkg.FromPaise(result.Record.Amount),
			MobileNumber: req.MobileNumber,
			Operator:     req.Operator,
			RecordID:     result.Record.ID,
			Timestamp:    result.Record.Timestamp,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
