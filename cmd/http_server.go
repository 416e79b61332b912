package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
	authPostgres "github.com/Efeg35/contravo-sub006/internal/auth/postgres"
	"github.com/Efeg35/contravo-sub006/internal/contract"
	contractPostgres "github.com/Efeg35/contravo-sub006/internal/contract/postgres"
	"github.com/Efeg35/contravo-sub006/internal/core/events"
	"github.com/Efeg35/contravo-sub006/internal/notification"
	notificationPostgres "github.com/Efeg35/contravo-sub006/internal/notification/postgres"
	"github.com/Efeg35/contravo-sub006/internal/transport/rest"
	"github.com/Efeg35/contravo-sub006/internal/user"
	userPostgres "github.com/Efeg35/contravo-sub006/internal/user/postgres"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
	workflowPostgres "github.com/Efeg35/contravo-sub006/internal/workflow/postgres"
	"github.com/Efeg35/contravo-sub006/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config              *internal.Config
	DB                  *sqlx.DB
	GormDB              *gorm.DB
	Router              *chi.Mux
	Logger              *slog.Logger
	EventBus            *events.EventBus
	AuthHandler         *auth.Handler
	AuthService         *auth.Service
	UserHandler         *user.Handler
	ContractHandler     *contract.Handler
	NotificationHandler *notification.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Config.Server.AllowedOrigins,
		deps.AuthHandler,
		deps.AuthService,
		deps.UserHandler,
		deps.ContractHandler,
		deps.NotificationHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Environment)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	// auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewAuthRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService)

	// workflow
	workflowRepo := workflowPostgres.NewWorkflowRepository(gormDB, lg)
	workflowService := workflow.NewService(workflowRepo, eventBus, lg)

	// contracts
	contractRepo := contractPostgres.NewContractRepository(gormDB)
	contractService := contract.NewService(contractRepo, workflowService, config.Workflow, lg)
	contractHandler := contract.NewHandler(contractService)

	// users
	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, config.Workflow, lg)
	userHandler := user.NewHandler(userService)

	// notifications, fed by the event bus
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, lg)
	notificationHandler := notification.NewHandler(notificationService)
	notification.NewEventHandler(notificationService, lg).RegisterEventHandlers(eventBus)

	return &Dependencies{
		Config:              config,
		DB:                  db,
		GormDB:              gormDB,
		Router:              chi.NewRouter(),
		Logger:              lg,
		EventBus:            eventBus,
		AuthHandler:         authHandler,
		AuthService:         authService,
		UserHandler:         userHandler,
		ContractHandler:     contractHandler,
		NotificationHandler: notificationHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
