package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	orderdomain "github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
)

type stubService struct {
	orderports.Service
	view orderports.View
	err  error
}

func (s stubService) Place(context.Context, orderports.PlaceInput) (orderports.View, error) {
	return s.view, s.err
}

func (s stubService) UpdateStatus(context.Context, string, string) (orderports.View, error) {
	return s.view, s.err
}

func TestPlaceRecordsSpanAndQuantity(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := New(stubService{view: orderports.View{ID: "o1", Quantity: 3, Status: orderdomain.StatusPending}},
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)
	_, err := svc.Place(context.Background(), orderports.PlaceInput{UserID: "u1", MenuItemID: "m1"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "OrderService.Place", spans[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.EqualValues(t, 3, sum.DataPoints[0].Value)
}

func TestUpdateStatusFailureMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	boom := errors.New("boom")

	svc := New(stubService{err: boom}, WithTracer(tp.Tracer("test")))
	_, err := svc.UpdateStatus(context.Background(), "o1", "APPROVED")
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
}
