package dialogue

import "github.com/louisbranch/dialogue/internal/dialogue/reflectvar"

// Dispatcher runs events against participants. It holds only its
// collaborators and is safe to share.
type Dispatcher struct {
	logger Logger
	vars   VariableAccessor
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the sink for absorbed failures.
func WithLogger(logger Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithVariableAccessor replaces the reflection accessor used by the
// ModifyClass* event types.
func WithVariableAccessor(vars VariableAccessor) Option {
	return func(d *Dispatcher) {
		if vars != nil {
			d.vars = vars
		}
	}
}

// NewDispatcher builds a Dispatcher logging through the standard logger and
// resolving variables with reflectvar unless overridden.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: NewLogger(nil),
		vars:   reflectvar.Accessor{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDispatcher = NewDispatcher()

// Default returns the process-wide Dispatcher used by BuiltinEvent.Call and
// CustomEvent.Call.
func Default() *Dispatcher {
	return defaultDispatcher
}

// Event is implemented by every event kind a dialogue node can hold.
type Event interface {
	// TargetName returns the participant name used for diagnostics and by
	// callers resolving the target.
	TargetName() string
	// Dispatch calls the event on target through d.
	Dispatch(d *Dispatcher, target Participant)
}

// CallAll dispatches events in order against the same target.
func (d *Dispatcher) CallAll(events []Event, target Participant) {
	for _, e := range events {
		e.Dispatch(d, target)
	}
}
