package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sthanna/UsTaxesFree/internal/api"
	"github.com/sthanna/UsTaxesFree/internal/calculation"
	"github.com/sthanna/UsTaxesFree/internal/config"
	"github.com/sthanna/UsTaxesFree/internal/logger"
	"github.com/sthanna/UsTaxesFree/internal/service"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger()
		defer func() { _ = logger.Sync() }()

		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)

		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		ctx := cmd.Context()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}

		users := postgres.NewUserRepository(db)
		auditLog := postgres.NewAuditRepository(db)

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(logger.NewEngineLogger(logger.Log))

		authSvc := service.NewAuthService(users, []byte(cfg.JWTSecret), cfg.TokenTTL, auditLog)
		returnSvc := service.NewReturnService(
			postgres.NewReturnRepository(db),
			postgres.NewW2Repository(db),
			postgres.NewForm1099Repository(db),
			postgres.NewTransactionRepository(db),
			postgres.NewDependentRepository(db),
			postgres.NewItemizedRepository(db),
			engine,
			auditLog,
		)

		router := api.NewRouter(api.NewHandler(authSvc, returnSvc, users, []byte(cfg.JWTSecret)))

		server := &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Port),
			Handler: router,
		}

		go func() {
			logger.Info("server starting", zap.String("port", cfg.Port))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("server failed", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

// migrateCmd applies the database schema and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}

		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("Schema applied.")
		return nil
	},
}
