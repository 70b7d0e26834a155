package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpServer "github.com/auraboard/auraboard-server/internal/api/http/server"

	"github.com/auraboard/auraboard-server/internal/api/http/handler"
	"github.com/auraboard/auraboard-server/internal/api/http/router"
	"github.com/auraboard/auraboard-server/internal/config"
	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
	"github.com/auraboard/auraboard-server/internal/repository/postgres"
	"github.com/auraboard/auraboard-server/internal/server"
	"github.com/auraboard/auraboard-server/internal/service"
	"github.com/auraboard/auraboard-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.Aura.ResetTimezone)
	if err != nil {
		logger.Fatal("failed to load reset timezone", "timezone", cfg.Aura.ResetTimezone, "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	auraRepo := postgres.NewAuraRepository(db)
	quotaRepo := postgres.NewQuotaRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, logger)
	quotaService := service.NewQuota(quotaRepo, cfg.Aura.DefaultDailyLimit, location, logger)
	auraService := service.NewAura(auraRepo, userRepo, quotaService, logger)
	userService := service.NewUser(userRepo, logger)
	authService := service.NewAuth(userRepo, auraRepo, tokenService, logger)

	engine := router.New(router.Config{
		Auth:   handler.NewAuth(authService, tokenService, logger),
		Aura:   handler.NewAura(auraService, quotaService, logger),
		User:   handler.NewUser(userService, logger),
		Tokens: tokenService,
		Pinger: db,
		Logger: logger,
	})

	apiServer := httpServer.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
