package dialogue

import (
	"strings"
	"testing"
)

func TestCallCustomEmptyWarnsOnce(t *testing.T) {
	targets := map[string]Participant{
		"nil target":   nil,
		"valid target": &npc{},
	}
	for name, target := range targets {
		t.Run(name, func(t *testing.T) {
			logger := &recordingLogger{}
			d := NewDispatcher(WithLogger(logger))

			d.CallCustom(CustomEvent{ParticipantName: "Guard"}, target)

			if len(logger.warnings) != 1 {
				t.Fatalf("warnings logged = %d, want 1", len(logger.warnings))
			}
			if len(logger.errors) != 0 {
				t.Fatalf("errors logged = %v, want none", logger.errors)
			}
			if p, ok := target.(*npc); ok && len(p.calls) != 0 {
				t.Fatalf("participant calls = %v, want none", p.calls)
			}
		})
	}
}

func TestCallCustomTypedNilObjectWarns(t *testing.T) {
	logger := &recordingLogger{}
	target := &npc{}

	NewDispatcher(WithLogger(logger)).CallCustom(CustomEvent{ParticipantName: "Guard", Event: (*greet)(nil)}, target)

	if len(logger.warnings) != 1 {
		t.Fatalf("warnings logged = %d, want 1", len(logger.warnings))
	}
	if len(target.calls) != 0 {
		t.Fatalf("participant calls = %v, want none", target.calls)
	}
}

func TestCallCustomInvalidObjectWarns(t *testing.T) {
	logger := &recordingLogger{}
	obj := &greet{}

	NewDispatcher(WithLogger(logger)).CallCustom(CustomEvent{ParticipantName: "Guard", Event: obj}, &npc{})

	if len(logger.warnings) != 1 {
		t.Fatalf("warnings logged = %d, want 1", len(logger.warnings))
	}
	if len(obj.entered) != 0 {
		t.Fatalf("enter calls = %d, want 0", len(obj.entered))
	}
}

func TestCallCustomForwardsTarget(t *testing.T) {
	logger := &recordingLogger{}
	obj := &greet{Line: "Welcome"}
	target := &npc{}

	NewDispatcher(WithLogger(logger)).CallCustom(CustomEvent{ParticipantName: "Guard", Event: obj}, target)

	if len(obj.entered) != 1 || obj.entered[0] != Participant(target) {
		t.Fatalf("entered = %v, want target once", obj.entered)
	}
	if len(target.calls) != 1 || target.calls[0].name != "Welcome" {
		t.Fatalf("calls = %+v, want Welcome notification", target.calls)
	}
	if len(logger.errors)+len(logger.warnings) != 0 {
		t.Fatalf("unexpected logs: %v %v", logger.errors, logger.warnings)
	}
}

func TestCallCustomLogsEnterError(t *testing.T) {
	logger := &recordingLogger{}
	obj := &greet{Line: "Welcome", fail: true}

	NewDispatcher(WithLogger(logger)).CallCustom(CustomEvent{ParticipantName: "Guard", Event: obj}, &npc{})

	if len(logger.errors) != 1 {
		t.Fatalf("errors logged = %d, want 1", len(logger.errors))
	}
	if !strings.Contains(logger.errors[0], "line not found") || !strings.Contains(logger.errors[0], greetType) {
		t.Fatalf("error log = %q, want cause and type", logger.errors[0])
	}
}

func TestCustomEventEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b CustomEvent
		want bool
	}{
		{name: "both empty", a: CustomEvent{ParticipantName: "A"}, b: CustomEvent{ParticipantName: "A"}, want: true},
		{name: "same object value", a: CustomEvent{ParticipantName: "A", Event: &greet{Line: "hi"}}, b: CustomEvent{ParticipantName: "A", Event: &greet{Line: "hi"}}, want: true},
		{name: "different participant", a: CustomEvent{ParticipantName: "A"}, b: CustomEvent{ParticipantName: "B"}, want: false},
		{name: "one empty", a: CustomEvent{ParticipantName: "A", Event: &greet{Line: "hi"}}, b: CustomEvent{ParticipantName: "A"}, want: false},
		{name: "different object", a: CustomEvent{ParticipantName: "A", Event: &greet{Line: "hi"}}, b: CustomEvent{ParticipantName: "A", Event: &greet{Line: "bye"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Fatalf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Fatalf("reverse Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventInterfaceDispatch(t *testing.T) {
	logger := &recordingLogger{}
	target := &npc{}
	events := []Event{
		BuiltinEvent{ParticipantName: "Guard", EventName: "OnGreet", EventType: EventTypeEvent},
		CustomEvent{ParticipantName: "Guard", Event: &greet{Line: "Hello"}},
		CustomEvent{ParticipantName: "Guard"},
	}

	NewDispatcher(WithLogger(logger)).CallAll(events, target)

	if len(target.calls) != 2 || target.calls[0].name != "OnGreet" || target.calls[1].name != "Hello" {
		t.Fatalf("calls = %+v, want OnGreet then Hello", target.calls)
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("warnings logged = %d, want 1", len(logger.warnings))
	}
	for _, e := range events {
		if e.TargetName() != "Guard" {
			t.Fatalf("target name = %q, want Guard", e.TargetName())
		}
	}
}
