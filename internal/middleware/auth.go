// Package middleware provides gin middleware for logging and authentication.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
	"github.com/paisa-app/paisa/pkg/web"
)

// Authorization header conventions.
const (
	AuthorizationHeaderKey  = "authorization"
	AuthorizationTypeBearer = "bearer"
	AuthorizationPayloadKey = "authorization_payload"
)

// AddAuthorization creates a token for the given user and sets the
// authorization header on the request. Tests use it to authenticate calls.
func AddAuthorization(
	r *http.Request,
	tokenMaker tokenpkg.Maker,
	authorizationType string,
	userID int64,
	duration time.Duration,
) error {
	accessToken, _, err := tokenMaker.CreateToken(userID, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthorizationHeaderKey, fmt.Sprintf("%s %s", authorizationType, accessToken))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in the
// gin context under AuthorizationPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(AuthorizationHeaderKey)
		if len(authorizationHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		authorizationType := strings.ToLower(fields[0])
		if authorizationType != AuthorizationTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authorizationType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		accessToken := fields[1]
		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthorizationPayloadKey, payload)
		ctx.Next()
	}
}

// AuthPayload extracts the verified token payload set by AuthMiddleware.
func AuthPayload(ctx *gin.Context) *tokenpkg.Payload {
	return ctx.MustGet(AuthorizationPayloadKey).(*tokenpkg.Payload)
}
