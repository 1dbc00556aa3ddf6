package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/Evgen-Mutagen/go-ledger/internal/controller"
	"github.com/Evgen-Mutagen/go-ledger/internal/core"
	"github.com/Evgen-Mutagen/go-ledger/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/go-ledger/internal/repository"
	"github.com/Evgen-Mutagen/go-ledger/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"net/http"
)

// Storage bundles the repositories the services run on.
type Storage struct {
	Users      repository.UserRepository
	Accounts   repository.AccountRepository
	Operations repository.OperationRepository
	close      func() error
}

func MemoryStorage() Storage {
	store := repository.NewMemoryStore()
	return Storage{
		Users:      store.Users(),
		Accounts:   store.Accounts(),
		Operations: store.Operations(),
	}
}

func PostgresStorage(db *repository.Database) Storage {
	return Storage{
		Users:      repository.NewUserRepository(db),
		Accounts:   repository.NewAccountRepository(db),
		Operations: repository.NewOperationRepository(db),
		close:      db.Close,
	}
}

type App struct {
	cfg            *Config
	storage        Storage
	Router         *chi.Mux
	Logger         *zap.Logger
	Server         *http.Server
	AuthService    core.AuthService
	AccountService core.AccountService
}

// New picks PostgreSQL when a DSN is configured and memory otherwise.
func New(ctx context.Context, cfg *Config, logger *zap.Logger) (*App, error) {
	if cfg.InMemory() {
		logger.Warn("DATABASE_URI is empty, accounts are kept in memory")
		return NewWithStorage(cfg, MemoryStorage(), logger), nil
	}

	db, err := repository.NewDatabase(ctx, repository.DatabaseConfig{
		DSN:            cfg.DatabaseURI,
		MigrationsPath: cfg.MigrationsPath,
	})
	if err != nil {
		logger.Error("Database initialization failed",
			zap.String("dsn", cfg.MaskDBPassword()),
			zap.Error(err))
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}

	logger.Info("Database initialized successfully",
		zap.String("migrations_path", cfg.MigrationsPath))

	return NewWithStorage(cfg, PostgresStorage(db), logger), nil
}

func NewWithStorage(cfg *Config, storage Storage, logger *zap.Logger) *App {
	app := &App{
		cfg:     cfg,
		storage: storage,
		Router:  chi.NewRouter(),
		Logger:  logger,
	}

	app.AuthService = service.NewAuthService(storage.Users, cfg.JWTSecretKey)
	app.AccountService = service.NewAccountService(storage.Accounts, storage.Operations, logger)

	app.initRouter()
	return app
}

func (a *App) Run(ctx context.Context) error {
	a.Server = &http.Server{
		Addr:    a.cfg.RunAddress,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting HTTP server",
			zap.String("address", a.cfg.RunAddress))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down server...")
	return a.shutdown()
}

func (a *App) initRouter() {
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.RealIP)
	a.Router.Use(middlewareinternal.RequestLogger(a.Logger))
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.Compress(5))

	logger := a.Logger
	// Controllers
	authController := controller.NewAuthController(a.AuthService, logger)
	accountController := controller.NewAccountController(a.AccountService, logger)

	// Public routes
	a.Router.Post("/api/user/register", authController.Register)
	a.Router.Post("/api/user/login", authController.Login)

	// Protected routes
	a.Router.Group(func(r chi.Router) {
		r.Use(middlewareinternal.JWTAuthMiddleware(a.AuthService, logger))

		r.Route("/api/accounts", func(r chi.Router) {
			r.Post("/", accountController.Open)
			r.Get("/", accountController.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", accountController.Get)
				r.Get("/info", accountController.Info)
				r.Post("/deposit", accountController.Deposit)
				r.Post("/withdraw", accountController.Withdraw)
				r.Put("/balance", accountController.SetBalance)
				r.Put("/level", accountController.SetLevel)
				r.Put("/limit", accountController.SetLimit)
				r.Get("/interest", accountController.Interest)
				r.Post("/interest", accountController.ApplyInterest)
				r.Get("/operations", accountController.Operations)
			})
		})
	})
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	err := a.Server.Shutdown(ctx)
	if closeErr := a.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.storage.close == nil {
		return nil
	}
	return a.storage.close()
}
