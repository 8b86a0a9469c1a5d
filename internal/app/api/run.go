package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	quickbiteserver "github.com/Apurer/quickbite-api/go"
	menuobs "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/observability"
	menuapp "github.com/Apurer/quickbite-api/internal/domains/menu/application"
	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	orderobs "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/quickbite-api/internal/domains/orders/application"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	usercrypto "github.com/Apurer/quickbite-api/internal/domains/users/adapters/crypto"
	userobs "github.com/Apurer/quickbite-api/internal/domains/users/adapters/observability"
	usertoken "github.com/Apurer/quickbite-api/internal/domains/users/adapters/token"
	userapp "github.com/Apurer/quickbite-api/internal/domains/users/application"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	platformobservability "github.com/Apurer/quickbite-api/internal/platform/observability"
)

const serviceName = "quickbite-api"

// App is a fully wired API process minus the listener.
type App struct {
	Router *gin.Engine
	Users  userports.Service
	Menu   menuports.Service
	Orders orderports.Service
	Driver string

	res *resources
}

// Close releases database and cache connections.
func (a *App) Close() {
	if a != nil && a.res != nil {
		a.res.close()
	}
}

// Build wires repositories, services, authentication and the router.
func Build(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*App, error) {
	if instruments == nil {
		instruments = &platformobservability.Instruments{}
	}
	logger := instruments.Logger
	if logger == nil {
		logger = platformobservability.DiscardLogger()
	}
	res := &resources{logger: logger}
	repos := res.buildRepositories(ctx, cfg)

	userService := userobs.New(
		userapp.NewService(repos.users, usercrypto.NewBcryptHasher(cfg.BcryptCost)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	menuService := menuobs.New(
		menuapp.NewService(repos.menu),
		menuobs.WithLogger(logger),
		menuobs.WithTracer(instruments.Tracer("internal.menu.application")),
		menuobs.WithMeter(instruments.Meter("internal.menu.application")),
	)
	orderService := orderobs.New(
		orderapp.NewService(repos.orders, userService, menuService),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	auth, err := buildAuthenticator(ctx, cfg, res, userService)
	if err != nil {
		res.close()
		return nil, err
	}

	if cfg.SeedData {
		if err := Seed(ctx, userService, menuService, orderService, logger); err != nil {
			res.close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	router := quickbiteserver.NewRouter(quickbiteserver.ApiHandleFunctions{
		AuthAPI:  quickbiteserver.NewAuthAPI(userService, auth),
		MenuAPI:  quickbiteserver.NewMenuAPI(menuService),
		OrderAPI: quickbiteserver.NewOrderAPI(orderService),
	}, quickbiteserver.RouterOptions{
		Middleware: []gin.HandlerFunc{
			otelgin.Middleware(serviceName, otelgin.WithTracerProvider(instruments.TracerProvider)),
			quickbiteserver.RequestLogger(logger),
		},
		Metrics:   quickbiteserver.NewMetrics(),
		StaticDir: cfg.StaticDir,
	})

	return &App{
		Router: router,
		Users:  userService,
		Menu:   menuService,
		Orders: orderService,
		Driver: repos.driver,
		res:    res,
	}, nil
}

func buildAuthenticator(ctx context.Context, cfg Config, res *resources, users userports.Service) (quickbiteserver.Authenticator, error) {
	switch cfg.AuthMode {
	case AuthToken:
		issuer, err := usertoken.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return nil, err
		}
		res.logger.Info("authentication uses signed tokens", slog.Duration("ttl", cfg.JWTTTL))
		return quickbiteserver.NewTokenAuthenticator(issuer, users), nil
	case AuthDisabled:
		res.logger.Warn("authentication disabled, every caller is treated as ADMIN")
		return quickbiteserver.NewDisabledAuthenticator(), nil
	default:
		sessions := userapp.NewSessions(res.buildSessionStore(ctx, cfg), cfg.SessionTTL)
		return quickbiteserver.NewSessionAuthenticator(sessions, users, cfg.SecureCookie), nil
	}
}

// Run boots the QuickBite HTTP API and blocks until ctx is cancelled or
// the listener fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		LogFormat:    cfg.LogFormat,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		SampleRatio:  cfg.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Build(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer app.Close()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("QuickBite API listening", slog.String("addr", server.Addr), slog.String("store", app.Driver), slog.String("auth", cfg.AuthMode))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("QuickBite API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Info("QuickBite API shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
