package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MarkFailed records err on span and flips its status to Error.
func MarkFailed(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, trace.WithAttributes(attribute.String("error.type", fmt.Sprintf("%T", err))))
	span.SetStatus(codes.Error, err.Error())
}

// SpanError marks span as failed, logs msg at error level and returns err,
// so decorators can end a failing branch with a single return.
func SpanError(ctx context.Context, logger *slog.Logger, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	MarkFailed(span, err)
	if logger != nil {
		logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	}
	return err
}
