package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/config"
	internalhttp "auth-gateway/internal/http"
	internalmailer "auth-gateway/internal/mailer"
	"auth-gateway/internal/repository/postgres"
	"auth-gateway/pkg/mailer"
	"auth-gateway/pkg/mailer/providers"
)

// Service owns the wired-up gateway: configuration, database pool and the
// HTTP server.
type Service struct {
	config *config.Config
	db     *postgres.DB
	server *internalhttp.Server
}

// NewService loads configuration and wires all dependencies. A
// configuration error here aborts startup before any socket is bound.
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	accountRepo := postgres.NewAccountRepository(db)

	tokenService := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	resolver := auth.NewPrincipalResolver(accountRepo)
	authService := auth.NewAuthService(accountRepo, tokenService)

	passwordMailer, err := buildPasswordMailer(&cfg.Mail)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build mailer: %w", err)
	}

	resetService := auth.NewPasswordResetService(accountRepo, passwordMailer, cfg.Auth.ResetSecretLength, log.Default())

	server := internalhttp.NewServer(&internalhttp.ServerDependencies{
		Config:       cfg,
		AccountRepo:  accountRepo,
		TokenService: tokenService,
		AuthService:  authService,
		ResetService: resetService,
		Resolver:     resolver,
	})

	return &Service{
		config: cfg,
		db:     db,
		server: server,
	}, nil
}

func buildPasswordMailer(cfg *config.MailConfig) (*internalmailer.PasswordMailer, error) {
	var provider providers.EmailProvider
	switch cfg.Provider {
	case "resend":
		provider = providers.NewResendProvider(providers.ResendConfig{APIKey: cfg.APIKey})
	default:
		provider = providers.NewLogProvider(log.Default())
	}

	svc, err := mailer.NewEmailService(provider, cfg.From)
	if err != nil {
		return nil, err
	}

	return internalmailer.NewPasswordMailer(svc, cfg.Company)
}

// Start runs the HTTP server until the context is cancelled or a shutdown
// signal arrives, then drains within the configured timeout.
func (s *Service) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Start(":" + s.config.Server.Port)
	}()

	log.Printf("auth gateway listening on :%s", s.config.Server.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	s.db.Close()
	return nil
}
