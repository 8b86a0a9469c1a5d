package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	"github.com/Apurer/quickbite-api/internal/platform/observability"
)

const tracerName = "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
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

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: observability.DiscardLogger(),
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

func (s *Service) Place(ctx context.Context, input orderports.PlaceInput) (orderports.View, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.String("menu_item.id", input.MenuItemID),
	))
	defer span.End()
	view, err := s.inner.Place(ctx, input)
	if err != nil {
		return orderports.View{}, observability.SpanError(ctx, s.logger, span, err, "failed to place order",
			slog.String("user_id", input.UserID), slog.String("menu_item_id", input.MenuItemID))
	}
	span.SetAttributes(attribute.String("order.id", view.ID))
	if s.metrics.placed != nil {
		s.metrics.placed.Add(ctx, int64(view.Quantity))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed", slog.String("order_id", view.ID), slog.Int("quantity", view.Quantity))
	return view, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]orderports.View, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByUser", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	views, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to list user orders", slog.String("user_id", userID))
	}
	return views, nil
}

func (s *Service) ListAll(ctx context.Context) ([]orderports.View, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListAll")
	defer span.End()
	views, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(views)))
	return views, nil
}

func (s *Service) ListPending(ctx context.Context) ([]orderports.View, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListPending")
	defer span.End()
	views, err := s.inner.ListPending(ctx)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to list pending orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(views)))
	return views, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (orderports.View, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", status),
	))
	defer span.End()
	view, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return orderports.View{}, observability.SpanError(ctx, s.logger, span, err, "failed to update order status", slog.String("order_id", id))
	}
	s.metrics.recordStatus(ctx, view.Status)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order status updated", slog.String("order_id", id), slog.String("status", string(view.Status)))
	return view, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()
	return s.inner.FindByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.inner.Count(ctx)
}

type serviceMetrics struct {
	placed        metric.Int64Counter
	statusUpdates metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed_items", metric.WithDescription("Quantity of items ordered"))
	updates, _ := m.Int64Counter("orders.service.status_updates", metric.WithDescription("Number of order status updates by resulting status"))
	return serviceMetrics{placed: placed, statusUpdates: updates}
}

func (m serviceMetrics) recordStatus(ctx context.Context, status orderdomain.Status) {
	if m.statusUpdates != nil {
		m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
	}
}

var _ orderports.Service = (*Service)(nil)
