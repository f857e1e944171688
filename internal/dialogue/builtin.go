package dialogue

import "math"

// FloatTolerance is the absolute tolerance used when comparing FloatValue.
const FloatTolerance = 1e-4

// BuiltinEvent is a dialogue event from the closed EventType set. Only the
// payload field selected by EventType is meaningful; the rest stay at their
// zero values so equality and encoding remain deterministic.
type BuiltinEvent struct {
	// ParticipantName identifies the target in diagnostics.
	ParticipantName string
	// EventName is the notification name or the variable to change.
	EventName string

	IntValue   int32
	FloatValue float32
	NameValue  string
	BoolValue  bool

	// Delta adds numeric payloads to the current value instead of replacing it.
	Delta bool

	EventType EventType
}

// TargetName implements Event.
func (e BuiltinEvent) TargetName() string {
	return e.ParticipantName
}

// Dispatch implements Event.
func (e BuiltinEvent) Dispatch(d *Dispatcher, target Participant) {
	d.Call(e, target)
}

// Call runs e on target through the default Dispatcher.
func (e BuiltinEvent) Call(target Participant) {
	defaultDispatcher.Call(e, target)
}

// Call validates target and performs the single mutation selected by
// e.EventType. Invalid targets and variable resolution failures are logged and
// leave target untouched. An unknown EventType panics with
// UnreachableEventTypeError.
func (d *Dispatcher) Call(e BuiltinEvent, target Participant) {
	if !IsValidParticipant(target) {
		d.logger.Errorf("Event failed: invalid participant! ParticipantName = %s, EventName = %s",
			e.ParticipantName, e.EventName)
		return
	}

	var err error
	switch e.EventType {
	case EventTypeEvent:
		target.OnDialogueEvent(e.EventName)

	case EventTypeModifyInt:
		target.ModifyIntValue(e.EventName, e.Delta, e.IntValue)
	case EventTypeModifyFloat:
		target.ModifyFloatValue(e.EventName, e.Delta, e.FloatValue)
	case EventTypeModifyBool:
		target.ModifyBoolValue(e.EventName, e.BoolValue)
	case EventTypeModifyName:
		target.ModifyNameValue(e.EventName, e.NameValue)

	case EventTypeModifyClassIntVariable:
		err = d.vars.ModifyInt(target, e.EventName, e.IntValue, e.Delta)
	case EventTypeModifyClassFloatVariable:
		err = d.vars.ModifyFloat(target, e.EventName, e.FloatValue, e.Delta)
	case EventTypeModifyClassBoolVariable:
		err = d.vars.SetBool(target, e.EventName, e.BoolValue)
	case EventTypeModifyClassNameVariable:
		err = d.vars.SetName(target, e.EventName, e.NameValue)

	default:
		panic(UnreachableEventTypeError{EventType: e.EventType})
	}

	if err != nil {
		d.logger.Errorf("Event failed: %v. ParticipantName = %s, EventName = %s, EventType = %s",
			err, e.ParticipantName, e.EventName, e.EventType)
	}
}

// Equal reports whether e and other describe the same event. FloatValue is
// compared within FloatTolerance; every other field must match exactly.
func (e BuiltinEvent) Equal(other BuiltinEvent) bool {
	return e.ParticipantName == other.ParticipantName &&
		e.EventName == other.EventName &&
		e.IntValue == other.IntValue &&
		nearlyEqual(e.FloatValue, other.FloatValue) &&
		e.NameValue == other.NameValue &&
		e.Delta == other.Delta &&
		e.BoolValue == other.BoolValue &&
		e.EventType == other.EventType
}

func nearlyEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) <= FloatTolerance
}
