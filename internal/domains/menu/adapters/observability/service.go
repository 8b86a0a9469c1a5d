package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	menudomain "github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	"github.com/Apurer/quickbite-api/internal/platform/observability"
)

const tracerName = "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/observability/service"

// Service decorates the menu service with tracing, logging, and metrics.
type Service struct {
	inner   menuports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	changes metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.changes, _ = m.Int64Counter("menu.service.changes", metric.WithDescription("Number of menu mutations by operation"))
	}
}

func New(inner menuports.Service, opts ...Option) menuports.Service {
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

func (s *Service) List(ctx context.Context) ([]*menudomain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.List")
	defer span.End()
	items, err := s.inner.List(ctx)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to list menu")
	}
	span.SetAttributes(attribute.Int("menu.count", len(items)))
	return items, nil
}

func (s *Service) Create(ctx context.Context, input menuports.ItemInput) (*menudomain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.Create", trace.WithAttributes(attribute.String("menu.name", input.Name)))
	defer span.End()
	item, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to create menu item", slog.String("name", input.Name))
	}
	s.record(ctx, "create")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "menu item created", slog.String("menu_item_id", item.ID))
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, input menuports.ItemInput) (*menudomain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.Update", trace.WithAttributes(attribute.String("menu.id", id)))
	defer span.End()
	item, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, observability.SpanError(ctx, s.logger, span, err, "failed to update menu item", slog.String("menu_item_id", id))
	}
	s.record(ctx, "update")
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "MenuService.Delete", trace.WithAttributes(attribute.String("menu.id", id)))
	defer span.End()
	if err := s.inner.Delete(ctx, id); err != nil {
		return observability.SpanError(ctx, s.logger, span, err, "failed to delete menu item", slog.String("menu_item_id", id))
	}
	s.record(ctx, "delete")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "menu item deleted", slog.String("menu_item_id", id))
	return nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*menudomain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.FindByID", trace.WithAttributes(attribute.String("menu.id", id)))
	defer span.End()
	return s.inner.FindByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.inner.Exists(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.inner.Count(ctx)
}

func (s *Service) record(ctx context.Context, op string) {
	if s.changes != nil {
		s.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ menuports.Service = (*Service)(nil)
