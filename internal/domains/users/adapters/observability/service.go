package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/platform/observability"
)

const tracerName = "github.com/Apurer/quickbite-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  observability.DiscardLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = observability.DiscardLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.username", input.Username)))
	defer span.End()
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to register user", slog.String("username", input.Username))
	}
	s.metrics.add(ctx, s.metrics.registered)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered", slog.String("user_id", result.ID), slog.String("username", result.Username))
	return result, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	result, err := s.inner.Login(ctx, username, password)
	if err != nil {
		s.metrics.add(ctx, s.metrics.loginFailures)
		return nil, observability.SpanError(ctx, s.logger, span, err, "login failed", slog.String("username", username))
	}
	s.metrics.add(ctx, s.metrics.logins)
	return result, nil
}

func (s *Service) ChangeRole(ctx context.Context, id, role string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ChangeRole", trace.WithAttributes(
		attribute.String("user.id", id),
		attribute.String("user.role", role),
	))
	defer span.End()
	result, err := s.inner.ChangeRole(ctx, id, role)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to change role", slog.String("user_id", id))
	}
	s.metrics.add(ctx, s.metrics.roleChanges)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "role changed", slog.String("user_id", id), slog.String("role", role))
	return result, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()
	result, err := s.inner.ListUsers(ctx)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.count", len(result)))
	return result, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindByID", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	return s.inner.FindByID(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindByUsername", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	return s.inner.FindByUsername(ctx, username)
}

func (s *Service) AttachOrder(ctx context.Context, userID, orderID string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.AttachOrder", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("order.id", orderID),
	))
	defer span.End()
	if err := s.inner.AttachOrder(ctx, userID, orderID); err != nil {
		return observability.SpanError(ctx, s.logger, span, err, "failed to attach order", slog.String("user_id", userID))
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.inner.Count(ctx)
}

type serviceMetrics struct {
	registered    metric.Int64Counter
	logins        metric.Int64Counter
	loginFailures metric.Int64Counter
	roleChanges   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of accounts registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	failures, _ := m.Int64Counter("users.service.login_failures", metric.WithDescription("Number of rejected logins"))
	roles, _ := m.Int64Counter("users.service.role_changes", metric.WithDescription("Number of role changes"))
	return serviceMetrics{registered: registered, logins: logins, loginFailures: failures, roleChanges: roles}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}

var _ userports.Service = (*Service)(nil)
