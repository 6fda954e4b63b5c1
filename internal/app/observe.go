package app

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/kanban/internal/ctxutil"
	apperrors "github.com/example/kanban/internal/errors"
)

const tracerName = "github.com/example/kanban/internal/app"

// operation is one traced use-case invocation.
type operation struct {
	name   string
	span   trace.Span
	logger *log.Logger
}

// begin opens a span for a use case on the global tracer provider.
func begin(ctx context.Context, logger *log.Logger, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &operation{name: name, span: span, logger: logger}
}

// end records the outcome on the span and logs failures at warn level.
func (o *operation) end(ctx context.Context, err error) {
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		entry(ctx, o.logger, log.Fields{
			"operation": o.name,
			"code":      string(apperrors.CodeOf(err)),
			"error":     err.Error(),
		}).Warn("use case failed")
	} else {
		o.span.SetStatus(codes.Ok, "")
	}
	o.span.End()
}

// entry returns a log entry carrying the request-scoped fields of ctx.
func entry(ctx context.Context, logger *log.Logger, fields log.Fields) *log.Entry {
	if actor := ctxutil.ActorFromContext(ctx); actor != "" {
		fields["actor"] = actor
	}
	if requestID := ctxutil.RequestIDFromContext(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	return logger.WithContext(ctx).WithFields(fields)
}
