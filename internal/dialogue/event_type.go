package dialogue

import "fmt"

// EventType selects the operation a BuiltinEvent performs. The numeric value
// is persisted; never reorder.
type EventType uint8

const (
	// EventTypeEvent notifies the participant with the event name.
	EventTypeEvent EventType = iota
	// EventTypeModifyInt calls the participant's integer modifier.
	EventTypeModifyInt
	// EventTypeModifyFloat calls the participant's float modifier.
	EventTypeModifyFloat
	// EventTypeModifyBool calls the participant's bool setter.
	EventTypeModifyBool
	// EventTypeModifyName calls the participant's name setter.
	EventTypeModifyName
	// EventTypeModifyClassIntVariable changes an integer variable by reflection.
	EventTypeModifyClassIntVariable
	// EventTypeModifyClassFloatVariable changes a float variable by reflection.
	EventTypeModifyClassFloatVariable
	// EventTypeModifyClassBoolVariable sets a bool variable by reflection.
	EventTypeModifyClassBoolVariable
	// EventTypeModifyClassNameVariable sets a name variable by reflection.
	EventTypeModifyClassNameVariable

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventTypeEvent:                    "Event",
	EventTypeModifyInt:                "ModifyInt",
	EventTypeModifyFloat:              "ModifyFloat",
	EventTypeModifyBool:               "ModifyBool",
	EventTypeModifyName:               "ModifyName",
	EventTypeModifyClassIntVariable:   "ModifyClassIntVariable",
	EventTypeModifyClassFloatVariable: "ModifyClassFloatVariable",
	EventTypeModifyClassBoolVariable:  "ModifyClassBoolVariable",
	EventTypeModifyClassNameVariable:  "ModifyClassNameVariable",
}

// EventTypes returns every EventType in wire order.
func EventTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	return t < eventTypeCount
}

func (t EventType) String() string {
	if t.Valid() {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// ParseEventType returns the EventType with the given name.
func ParseEventType(name string) (EventType, bool) {
	for t, n := range eventTypeNames {
		if n == name {
			return EventType(t), true
		}
	}
	return 0, false
}

// UnreachableEventTypeError is the panic value raised when a BuiltinEvent with
// an unknown discriminator is called. It signals corrupted data or an
// encoder/decoder mismatch and is never returned as an ordinary error.
type UnreachableEventTypeError struct {
	EventType EventType
}

func (e UnreachableEventTypeError) Error() string {
	return fmt.Sprintf("dialogue: unreachable event type %d", uint8(e.EventType))
}
