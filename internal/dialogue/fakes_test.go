package dialogue

import (
	"errors"
	"fmt"

	"github.com/louisbranch/dialogue/internal/dialogue/archive"
)

type call struct {
	method string
	name   string
	delta  bool
	value  any
}

// npc records capability calls and exposes reflection targets.
type npc struct {
	calls []call
	dead  bool

	Gold   int32
	Health float32
	Alive  bool `dialogue:"bIsAlive"`
	Mood   string
}

func (n *npc) OnDialogueEvent(name string) {
	n.calls = append(n.calls, call{method: "event", name: name})
}

func (n *npc) ModifyIntValue(name string, delta bool, value int32) {
	n.calls = append(n.calls, call{method: "int", name: name, delta: delta, value: value})
}

func (n *npc) ModifyFloatValue(name string, delta bool, value float32) {
	n.calls = append(n.calls, call{method: "float", name: name, delta: delta, value: value})
}

func (n *npc) ModifyBoolValue(name string, value bool) {
	n.calls = append(n.calls, call{method: "bool", name: name, value: value})
}

func (n *npc) ModifyNameValue(name string, value string) {
	n.calls = append(n.calls, call{method: "name", name: name, value: value})
}

func (n *npc) DialogueAlive() bool {
	return !n.dead
}

// counter keeps integer values the way a game participant would.
type counter struct {
	ints   map[string]int32
	floats map[string]float32
	bools  map[string]bool
	names  map[string]string
}

func newCounter() *counter {
	return &counter{
		ints:   map[string]int32{},
		floats: map[string]float32{},
		bools:  map[string]bool{},
		names:  map[string]string{},
	}
}

func (c *counter) OnDialogueEvent(string) {}

func (c *counter) ModifyIntValue(name string, delta bool, value int32) {
	if delta {
		value += c.ints[name]
	}
	c.ints[name] = value
}

func (c *counter) ModifyFloatValue(name string, delta bool, value float32) {
	if delta {
		value += c.floats[name]
	}
	c.floats[name] = value
}

func (c *counter) ModifyBoolValue(name string, value bool) {
	c.bools[name] = value
}

func (c *counter) ModifyNameValue(name string, value string) {
	c.names[name] = value
}

type recordingLogger struct {
	errors   []string
	warnings []string
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

type accessorCall struct {
	method string
	field  string
	value  any
	delta  bool
}

type fakeAccessor struct {
	calls []accessorCall
	err   error
}

func (f *fakeAccessor) ModifyInt(_ any, field string, value int32, delta bool) error {
	f.calls = append(f.calls, accessorCall{method: "int", field: field, value: value, delta: delta})
	return f.err
}

func (f *fakeAccessor) ModifyFloat(_ any, field string, value float32, delta bool) error {
	f.calls = append(f.calls, accessorCall{method: "float", field: field, value: value, delta: delta})
	return f.err
}

func (f *fakeAccessor) SetBool(_ any, field string, value bool) error {
	f.calls = append(f.calls, accessorCall{method: "bool", field: field, value: value})
	return f.err
}

func (f *fakeAccessor) SetName(_ any, field string, value string) error {
	f.calls = append(f.calls, accessorCall{method: "name", field: field, value: value})
	return f.err
}

const greetType = "greet"

// greet is a custom event that notifies the target with a fixed line.
type greet struct {
	Line    string
	entered []Participant
	fail    bool
}

func (g *greet) Enter(target Participant) error {
	g.entered = append(g.entered, target)
	if g.fail {
		return errors.New("line not found")
	}
	if target != nil {
		target.OnDialogueEvent(g.Line)
	}
	return nil
}

func (g *greet) IsValid() bool {
	return g.Line != ""
}

func (g *greet) Equal(other CustomEventObject) bool {
	o, ok := other.(*greet)
	return ok && o.Line == g.Line
}

func (g *greet) CustomEventType() string {
	return greetType
}

func (g *greet) EncodeDialogue(w *archive.Writer) error {
	w.String(g.Line)
	return nil
}

func (g *greet) DecodeDialogue(r *archive.Reader) error {
	line, err := r.String()
	if err != nil {
		return err
	}
	g.Line = line
	return nil
}

func newTestRegistry() *CustomRegistry {
	reg := NewCustomRegistry()
	if err := reg.Register(CustomDefinition{Type: greetType, New: func() CustomEventObject { return &greet{} }}); err != nil {
		panic(err)
	}
	return reg
}
