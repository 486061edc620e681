// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/paisa-app/paisa/internal/historydelivery"
	"github.com/paisa-app/paisa/internal/historyservice"
	"github.com/paisa-app/paisa/internal/ledgerrepo"
	"github.com/paisa-app/paisa/internal/middleware"
	"github.com/paisa-app/paisa/internal/sessiondelivery"
	"github.com/paisa-app/paisa/internal/sessionrepo"
	"github.com/paisa-app/paisa/internal/sessionservice"
	"github.com/paisa-app/paisa/internal/userdelivery"
	"github.com/paisa-app/paisa/internal/userrepo"
	"github.com/paisa-app/paisa/internal/userservice"
	"github.com/paisa-app/paisa/internal/walletdelivery"
	"github.com/paisa-app/paisa/internal/walletrepo"
	"github.com/paisa-app/paisa/internal/walletservice"
	"github.com/paisa-app/paisa/pkg/configpkg"
	"github.com/paisa-app/paisa/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	walletRepo := walletrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	walletService := walletservice.New(walletRepo, userRepo, config)
	historyService := historyservice.New(ledgerRepo, userRepo)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	walletHandler := walletdelivery.NewHandler(walletService)
	historyHandler := historydelivery.NewHandler(historyService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/users/me", userHandler.Me)
	authRoutes.PATCH("/users/me", userHandler.Update)
	authRoutes.GET("/users/find", userHandler.Find)

	authRoutes.POST("/wallet/add-money", walletHandler.AddMoney)
	authRoutes.POST("/wallet/send", walletHandler.Send)
	authRoutes.POST("/wallet/recharge", walletHandler.Recharge)

	authRoutes.GET("/transactions", historyHandler.List)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("phone", userdelivery.ValidPhone)
		if err != nil {
			return nil, errors.New("cannot register phone validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
