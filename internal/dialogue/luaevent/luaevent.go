// Package luaevent implements custom dialogue events scripted in Lua.
//
// A script defines a global function enter(participant). The participant
// argument is a userdata exposing the dialogue capability methods:
//
//	function enter(p)
//	  p:modify_int("Gold", true, 5)
//	  p:event("OnPaid")
//	end
//
// Scripts run in a fresh Lua state on every Enter with only the base,
// string, table and math libraries loaded.
package luaevent

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/dialogue/internal/dialogue"
	"github.com/louisbranch/dialogue/internal/dialogue/archive"
	apperrors "github.com/louisbranch/dialogue/internal/platform/errors"
)

// Type is the custom event tag written ahead of a Lua event's fields.
const Type = "lua"

const (
	participantTypeName = "dialogue.participant"
	entryFunction       = "enter"
)

// Event is a dialogue.CustomEventObject backed by Lua source.
type Event struct {
	Name   string
	Source string
}

// New returns a Lua event with the given chunk name and source.
func New(name, source string) *Event {
	return &Event{Name: name, Source: source}
}

// Register adds the Lua event type to registry.
func Register(registry *dialogue.CustomRegistry) error {
	if registry == nil {
		return errors.New("custom registry is required")
	}
	return registry.Register(dialogue.CustomDefinition{
		Type: Type,
		New:  func() dialogue.CustomEventObject { return &Event{} },
	})
}

// Compile checks that the source parses.
func (e *Event) Compile() error {
	if e == nil || strings.TrimSpace(e.Source) == "" {
		return apperrors.New(apperrors.CodeEmptyCustomEvent, "lua event source is empty")
	}
	state := lua.NewState()
	if err := lua.LoadBuffer(state, e.Source, e.chunkName(), "t"); err != nil {
		return apperrors.Wrap(apperrors.CodeCustomEventFailed, "compile "+e.chunkName(), err)
	}
	return nil
}

// Enter runs the script's enter function against target.
func (e *Event) Enter(target dialogue.Participant) error {
	if !dialogue.IsValidParticipant(target) {
		return apperrors.WithMetadata(apperrors.CodeInvalidParticipant,
			"lua event has no valid participant", map[string]string{"event": e.chunkName()})
	}
	state := newState()
	if err := lua.LoadBuffer(state, e.Source, e.chunkName(), "t"); err != nil {
		return apperrors.Wrap(apperrors.CodeCustomEventFailed, "compile "+e.chunkName(), err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return apperrors.Wrap(apperrors.CodeCustomEventFailed, "run "+e.chunkName(), err)
	}

	state.Global(entryFunction)
	if !state.IsFunction(-1) {
		state.Pop(1)
		return apperrors.New(apperrors.CodeCustomEventFailed,
			fmt.Sprintf("lua event %s: global %s is not a function", e.chunkName(), entryFunction))
	}
	state.PushUserData(&participantRef{target: target})
	lua.SetMetaTableNamed(state, participantTypeName)
	if err := state.ProtectedCall(1, 0, 0); err != nil {
		return apperrors.Wrap(apperrors.CodeCustomEventFailed, e.chunkName()+" "+entryFunction, err)
	}
	return nil
}

// IsValid reports whether the source compiles.
func (e *Event) IsValid() bool {
	return e.Compile() == nil
}

// Equal reports whether other is a Lua event with the same name and source.
func (e *Event) Equal(other dialogue.CustomEventObject) bool {
	o, ok := other.(*Event)
	if !ok || e == nil || o == nil {
		return ok && e == o
	}
	return e.Name == o.Name && e.Source == o.Source
}

// CustomEventType implements dialogue.CustomEventObject.
func (e *Event) CustomEventType() string {
	return Type
}

// EncodeDialogue writes name then source.
func (e *Event) EncodeDialogue(w *archive.Writer) error {
	w.String(e.Name)
	w.String(e.Source)
	return nil
}

// DecodeDialogue reads the fields written by EncodeDialogue.
func (e *Event) DecodeDialogue(r *archive.Reader) error {
	name, err := r.String()
	if err != nil {
		return err
	}
	source, err := r.String()
	if err != nil {
		return err
	}
	e.Name, e.Source = name, source
	return nil
}

func (e *Event) chunkName() string {
	if e.Name == "" {
		return "lua-event"
	}
	return e.Name
}

type participantRef struct {
	target dialogue.Participant
}

var participantMethods = []lua.RegistryFunction{
	{Name: "event", Function: participantEvent},
	{Name: "modify_int", Function: participantModifyInt},
	{Name: "modify_float", Function: participantModifyFloat},
	{Name: "set_bool", Function: participantSetBool},
	{Name: "set_name", Function: participantSetName},
}

func newState() *lua.State {
	state := lua.NewState()
	for _, lib := range []lua.RegistryFunction{
		{Name: "_G", Function: lua.BaseOpen},
		{Name: "string", Function: lua.StringOpen},
		{Name: "table", Function: lua.TableOpen},
		{Name: "math", Function: lua.MathOpen},
	} {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}

	lua.NewMetaTable(state, participantTypeName)
	state.NewTable()
	lua.SetFunctions(state, participantMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
	return state
}

func checkParticipant(state *lua.State) dialogue.Participant {
	ref, ok := lua.CheckUserData(state, 1, participantTypeName).(*participantRef)
	if !ok || ref == nil {
		lua.ArgumentError(state, 1, "participant expected")
	}
	return ref.target
}

func checkBool(state *lua.State, index int) bool {
	lua.CheckType(state, index, lua.TypeBoolean)
	return state.ToBoolean(index)
}

func participantEvent(state *lua.State) int {
	p := checkParticipant(state)
	p.OnDialogueEvent(lua.CheckString(state, 2))
	return 0
}

func participantModifyInt(state *lua.State) int {
	p := checkParticipant(state)
	name := lua.CheckString(state, 2)
	delta := checkBool(state, 3)
	value := lua.CheckInteger(state, 4)
	lua.ArgumentCheck(state, value >= math.MinInt32 && value <= math.MaxInt32, 4, "value out of int32 range")
	p.ModifyIntValue(name, delta, int32(value))
	return 0
}

func participantModifyFloat(state *lua.State) int {
	p := checkParticipant(state)
	name := lua.CheckString(state, 2)
	delta := checkBool(state, 3)
	value := lua.CheckNumber(state, 4)
	p.ModifyFloatValue(name, delta, float32(value))
	return 0
}

func participantSetBool(state *lua.State) int {
	p := checkParticipant(state)
	name := lua.CheckString(state, 2)
	p.ModifyBoolValue(name, checkBool(state, 3))
	return 0
}

func participantSetName(state *lua.State) int {
	p := checkParticipant(state)
	name := lua.CheckString(state, 2)
	p.ModifyNameValue(name, lua.CheckString(state, 3))
	return 0
}
