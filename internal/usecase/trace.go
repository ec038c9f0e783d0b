package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("survivor-league/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name)
}

// annotateLeagueWeekSpan records which league and week a service span acted
// on, matching the handler-level attributes so both layers line up in a trace.
func annotateLeagueWeekSpan(span trace.Span, leagueID string, week int) {
	if span == nil || !span.SpanContext().IsValid() {
		return
	}
	span.SetAttributes(attribute.String("league.id", leagueID))
	if week > 0 {
		span.SetAttributes(attribute.Int("league.week", week))
	}
}
