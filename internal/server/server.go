// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/config"
	"codeberg.org/oliverandrich/go-storefront/internal/database"
	"codeberg.org/oliverandrich/go-storefront/internal/handlers"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"codeberg.org/oliverandrich/go-storefront/internal/services/auth"
	"codeberg.org/oliverandrich/go-storefront/internal/services/basket"
	"codeberg.org/oliverandrich/go-storefront/internal/services/email"
	"codeberg.org/oliverandrich/go-storefront/internal/services/orders"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"codeberg.org/oliverandrich/go-storefront/internal/services/verification"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database and migrations
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	sender, err := email.NewSender(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to configure mail: %w", err)
	}
	if !cfg.SMTP.Enabled() {
		slog.Warn("SMTP not configured, emails are written to the log")
	}

	e, err := New(cfg, repository.New(db), sender)
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the echo instance with all services, middleware and routes.
func New(cfg *config.Config, repo *repository.Repository, sender email.Sender) (*echo.Echo, error) {
	if err := i18n.Init(); err != nil {
		return nil, fmt.Errorf("failed to init i18n: %w", err)
	}

	sessions, err := session.NewManager(&cfg.Session, cfg.SecureCookies())
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	setupMiddleware(e, cfg, findAssets(), sessions, repo)
	setupRoutes(e, cfg, repo, sessions, sender)

	return e, nil
}

func setupRoutes(e *echo.Echo, cfg *config.Config, repo *repository.Repository, sessions *session.Manager, sender email.Sender) {
	authService := auth.NewService(repo)
	basketService := basket.NewService(repo)
	mailer := email.NewService(sender, cfg.Server.BaseURL)
	verifier := verification.NewService(repo, mailer, cfg.Verification.TTL())

	h := handlers.New(repo)
	users := handlers.NewUsers(authService, verifier, basketService, sessions)
	orderHandlers := handlers.NewOrders(orders.NewService(repo), basketService, cfg.Server.BaseURL)
	baskets := handlers.NewBasket(basketService)

	requireAuth := RequireAuth()

	e.GET("/static/*", staticHandler())
	e.GET("/health", h.Health)
	e.GET("/", h.Home)

	u := e.Group("/users")
	u.GET("/login", users.LoginPage)
	u.POST("/login", users.Login)
	u.POST("/logout", users.Logout)
	u.GET("/register", users.RegisterPage)
	u.POST("/register", users.Register)
	u.GET("/profile", users.ProfilePage, requireAuth)
	u.POST("/profile", users.Profile, requireAuth)
	u.GET("/email-verification/:email/:code", users.EmailVerification)

	o := e.Group("/orders", requireAuth)
	o.GET("", orderHandlers.List)
	o.GET("/order/:id", orderHandlers.Detail)
	o.GET("/order-create", orderHandlers.CreatePage)
	o.POST("/order-create", orderHandlers.Create)
	o.GET("/order-success", orderHandlers.Success)

	p := e.Group("/products", requireAuth)
	p.POST("/baskets/add/:id", baskets.Add)
	p.POST("/baskets/remove/:id", baskets.Remove)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e.Server.ReadHeaderTimeout = 10 * time.Second

	errChan := make(chan error, 1)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
