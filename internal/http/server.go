package http

import (
	"context"
	stdhttp "net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/config"
	"auth-gateway/internal/http/handler"
	"auth-gateway/internal/http/middleware"
	"auth-gateway/internal/repository"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config       *config.Config
	AccountRepo  repository.AccountRepository
	TokenService *auth.TokenService
	AuthService  *auth.AuthService
	ResetService *auth.PasswordResetService
	Resolver     *auth.PrincipalResolver
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

// BuildRoutePolicy assembles the immutable rule table: the configured
// public patterns plus the self-or-admin account routes. Everything else
// falls through to the authenticated default.
func BuildRoutePolicy(cfg *config.AuthConfig) *auth.RoutePolicy {
	rules := make([]auth.Rule, 0, len(cfg.PublicGET)+len(cfg.PublicPOST)+2)

	for _, pattern := range cfg.PublicGET {
		rules = append(rules, auth.Rule{Method: stdhttp.MethodGet, Pattern: pattern, Access: auth.AccessPublic})
	}
	for _, pattern := range cfg.PublicPOST {
		rules = append(rules, auth.Rule{Method: stdhttp.MethodPost, Pattern: pattern, Access: auth.AccessPublic})
	}

	rules = append(rules,
		auth.Rule{
			Method:  stdhttp.MethodGet,
			Pattern: "/customers/email",
			Access:  auth.AccessSelfOrAdmin,
			Owner:   auth.OwnerRef{Lookup: auth.OwnerQueryEmail, Param: "value"},
		},
		auth.Rule{
			Method:  stdhttp.MethodGet,
			Pattern: "/customers/*",
			Access:  auth.AccessSelfOrAdmin,
			Owner:   auth.OwnerRef{Lookup: auth.OwnerPathID, Param: "id"},
		},
	)

	return auth.NewRoutePolicy(rules)
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	policy := BuildRoutePolicy(&deps.Config.Auth)
	gate := auth.NewMiddleware(deps.TokenService, deps.Resolver, policy)

	// Request ID first so all logs carry it; the authorization gate runs
	// after rate limiting so anonymous floods are shed before token work.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.Config.CORS.AllowedOrigins,
		AllowMethods: deps.Config.CORS.AllowedMethods,
	}))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())
	e.Use(gate.Authorize())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.ResetService)
	accountHandler := handler.NewAccountHandler(deps.AccountRepo)

	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/auth/forgot", authHandler.ForgotPassword, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	e.GET("/customers/email", accountHandler.GetByEmail)
	e.GET("/customers/:id", accountHandler.GetByID)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
