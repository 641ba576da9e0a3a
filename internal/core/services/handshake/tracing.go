package handshake

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer wraps each inbound-frame dispatch in a span.
var tracer = otel.Tracer("rsna.handshake")

// traceFrame starts a span for one inbound-frame dispatch, named after the
// message kind, tagged with the SM's session id and ifindex.
func (s *SM) traceFrame(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("rsna.session_id", s.id.String()),
			attribute.Int("rsna.ifindex", s.cfg.Ifindex),
		),
	)
}
