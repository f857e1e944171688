// Package runner fires the enter events of a dialogue node.
//
// The runner resolves each event's target from the participants taking part
// in the dialogue and hands the event to a dialogue.Dispatcher. It does not
// select nodes or traverse the graph; callers pass the events of the node
// being entered.
package runner

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dialogue/internal/dialogue"
)

const tracerName = "github.com/louisbranch/dialogue/internal/dialogue/runner"

// Participants maps participant names to the objects taking part in a
// dialogue.
type Participants map[string]dialogue.Participant

// Runner fires node events. The zero value is not usable; call New.
type Runner struct {
	dispatcher *dialogue.Dispatcher
	tracer     trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns a Runner dispatching through d, or dialogue.Default when d is
// nil.
func New(d *dialogue.Dispatcher, opts ...Option) *Runner {
	if d == nil {
		d = dialogue.Default()
	}
	r := &Runner{
		dispatcher: d,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fire calls events in order. A participant missing from participants is
// passed as nil so the event logs it the same way as any invalid target.
// Fire returns early with the context error when ctx is done between events.
func (r *Runner) Fire(ctx context.Context, events []dialogue.Event, participants Participants) error {
	ctx, span := r.tracer.Start(ctx, "dialogue.fire_events",
		trace.WithAttributes(attribute.Int("dialogue.event_count", len(events))),
	)
	defer span.End()

	unresolved := 0
	for i, e := range events {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Int("dialogue.events_fired", i))
			return err
		}
		target, ok := participants[e.TargetName()]
		if !ok {
			unresolved++
		}
		e.Dispatch(r.dispatcher, target)
	}
	span.SetAttributes(
		attribute.Int("dialogue.events_fired", len(events)),
		attribute.Int("dialogue.unresolved_participants", unresolved),
	)
	return nil
}
