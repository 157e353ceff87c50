// Command api is the entry point for the member service HTTP API.
//
//  1. Load configuration and initialise the logger.
//  2. Connect to the selected store and, optionally, Redis for tokens.
//  3. Apply migrations or indexes.
//  4. Wire services into the echo router.
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully.
//
// @title                       Member Service API
// @version                     1.0
// @description                 Member accounts, session tokens and a shared chat room.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 Use "Token <key>".
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/memberchat/member-service/docs"
	"github.com/memberchat/member-service/internal/api"
	"github.com/memberchat/member-service/internal/core/service"
	"github.com/memberchat/member-service/internal/infrastructure/security"
	"github.com/memberchat/member-service/internal/pkg/config"
	"github.com/memberchat/member-service/pkg/logger"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		// Logger is not configured yet; fall back to a plain JSON logger.
		logger.Init(logger.Options{Service: "member-service"})
		log := logger.Get()
		log.Fatal().Err(err).Msg("load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "member-service",
	})
	log := logger.Get()
	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreDriver).
		Str("token_store", cfg.TokenStore).
		Msg("configuration loaded")

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	st, err := openStores(startupCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("open stores")
	}
	defer st.close(log)

	issuer := service.NewTokenIssuer(st.tokens, logger.Component("token_issuer"))
	accounts := service.NewAccountService(
		st.accounts,
		security.NewBcryptHasher(cfg.BcryptCost),
		issuer,
		logger.Component("account_service"),
	)
	chat := service.NewChatService(st.messages, logger.Component("chat_service"))
	authenticator := service.NewTokenAuthenticator(st.tokens, st.accounts, logger.Component("token_authenticator"))

	e := api.NewRouter(api.Dependencies{
		Accounts:      accounts,
		Chat:          chat,
		Authenticator: authenticator,
		Checks:        st.checks,
		Log:           logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
