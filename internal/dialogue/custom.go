package dialogue

import (
	"reflect"

	"github.com/louisbranch/dialogue/internal/dialogue/archive"
)

// CustomEventObject is a user-defined event. Implementations live outside
// this package and are made decodable by registering them in a
// CustomRegistry under the tag returned by CustomEventType.
type CustomEventObject interface {
	// Enter runs the event against target. Target may be nil; the object
	// decides whether that is acceptable.
	Enter(target Participant) error
	// IsValid reports whether the object is configured well enough to run.
	IsValid() bool
	// Equal compares the object with another custom event object.
	Equal(other CustomEventObject) bool
	// CustomEventType is the tag written ahead of the object's fields.
	CustomEventType() string
	// EncodeDialogue writes the object's own fields.
	EncodeDialogue(w *archive.Writer) error
	// DecodeDialogue reads the fields written by EncodeDialogue.
	DecodeDialogue(r *archive.Reader) error
}

// CustomEvent owns a CustomEventObject. A nil Event, including a typed nil
// pointer, is allowed; calling it logs a warning and does nothing.
type CustomEvent struct {
	ParticipantName string
	Event           CustomEventObject
}

// IsValid reports whether the held object exists and is itself valid.
func (c CustomEvent) IsValid() bool {
	return !c.empty() && c.Event.IsValid()
}

func (c CustomEvent) empty() bool {
	if c.Event == nil {
		return true
	}
	v := reflect.ValueOf(c.Event)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// TargetName implements Event.
func (c CustomEvent) TargetName() string {
	return c.ParticipantName
}

// Dispatch implements Event.
func (c CustomEvent) Dispatch(d *Dispatcher, target Participant) {
	d.CallCustom(c, target)
}

// Call runs c on target through the default Dispatcher.
func (c CustomEvent) Call(target Participant) {
	defaultDispatcher.CallCustom(c, target)
}

// CallCustom forwards to the held object's Enter. An empty or invalid custom
// event is logged as a warning; an error from Enter is logged as an error.
// Neither is returned.
func (d *Dispatcher) CallCustom(c CustomEvent, target Participant) {
	if !c.IsValid() {
		d.logger.Warnf("Custom Event is empty (not valid). ParticipantName = %s", c.ParticipantName)
		return
	}
	if err := c.Event.Enter(target); err != nil {
		d.logger.Errorf("Custom Event %s failed: %v. ParticipantName = %s",
			c.Event.CustomEventType(), err, c.ParticipantName)
	}
}

// Equal reports whether both events target the same participant name and hold
// equal objects (or both hold none).
func (c CustomEvent) Equal(other CustomEvent) bool {
	if c.ParticipantName != other.ParticipantName {
		return false
	}
	if c.empty() || other.empty() {
		return c.empty() && other.empty()
	}
	return c.Event.Equal(other.Event)
}
