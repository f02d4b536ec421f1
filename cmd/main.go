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

	"github.com/JLawMcGraw/alchemix-server/internal/api/http/cookie"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/httpctx"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/router"
	"github.com/JLawMcGraw/alchemix-server/internal/config"
	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
	"github.com/JLawMcGraw/alchemix-server/internal/repository/postgres"
	"github.com/JLawMcGraw/alchemix-server/internal/server"
	"github.com/JLawMcGraw/alchemix-server/internal/service"
	"github.com/JLawMcGraw/alchemix-server/internal/token"
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

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	revokedTokenRepo := postgres.NewRevokedTokenRepository(db)
	codec := token.NewJWT([]byte(cfg.JWT.Secret))

	revocations := service.NewRevocationList(revokedTokenRepo, logger)
	if err := revocations.Hydrate(ctx); err != nil {
		// Accepting traffic with an empty cache could resurrect a session
		// revoked just before this restart.
		logger.Fatal("failed to hydrate revocation list", "error", err)
	}

	sessionService := service.NewSession(codec, userRepo, revocations, cfg.Database.StoreTimeout, logger)
	authService := service.NewAuth(userRepo, sessionService, logger)

	cookies := cookie.NewManager(cfg.HTTP.SecureCookies, token.SessionTTL)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, sessionService, cookies, ctxMgr, db, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	sweeper := service.NewSweeper(revocations, cfg.Revocation.SweepInterval, cfg.Database.StoreTimeout, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
