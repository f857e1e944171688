package dialogue

import "reflect"

// Participant is the capability set a dialogue target must provide.
// Bool and name modifiers have no delta mode.
type Participant interface {
	OnDialogueEvent(name string)
	ModifyIntValue(name string, delta bool, value int32)
	ModifyFloatValue(name string, delta bool, value float32)
	ModifyBoolValue(name string, value bool)
	ModifyNameValue(name string, value string)
}

// Liveness is implemented by participants that can outlive their usefulness,
// e.g. a game object pending destruction. A participant reporting false is
// treated like a nil target.
type Liveness interface {
	DialogueAlive() bool
}

// VariableAccessor mutates a named variable on a participant at runtime.
// Implementations report a missing or mistyped variable through the returned
// error and must leave the target untouched in that case.
type VariableAccessor interface {
	ModifyInt(target any, field string, value int32, delta bool) error
	ModifyFloat(target any, field string, value float32, delta bool) error
	SetBool(target any, field string, value bool) error
	SetName(target any, field string, value string) error
}

// IsValidParticipant reports whether p can receive dialogue events: it must be
// non-nil (including typed nil pointers) and alive.
func IsValidParticipant(p Participant) bool {
	if p == nil {
		return false
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	if l, ok := p.(Liveness); ok {
		return l.DialogueAlive()
	}
	return true
}
