package binder

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced wraps a resolver so that each call is recorded as a span of tracer.
// Errors are recorded on the span but returned unchanged.
func Traced(tracer trace.Tracer, typeName, fieldName string, r Resolver) Resolver {
	spanName := "graphql.resolve " + typeName + "." + fieldName
	attrs := trace.WithAttributes(
		attribute.String("graphql.type", typeName),
		attribute.String("graphql.field", fieldName),
	)
	return func(ctx context.Context, source any, rawArgs map[string]any, info *ResolveInfo) (any, error) {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, span := tracer.Start(ctx, spanName, attrs)
		defer span.End()

		value, err := r(ctx, source, rawArgs, info)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return value, err
	}
}
