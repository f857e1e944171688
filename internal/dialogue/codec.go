package dialogue

import (
	"fmt"

	"github.com/louisbranch/dialogue/internal/dialogue/archive"
	apperrors "github.com/louisbranch/dialogue/internal/platform/errors"
)

// Encode writes e in the persisted field order: participant name, event
// name, int, float, name, delta, bool, event type.
func (e BuiltinEvent) Encode(w *archive.Writer) {
	w.String(e.ParticipantName)
	w.String(e.EventName)
	w.Int32(e.IntValue)
	w.Float32(e.FloatValue)
	w.String(e.NameValue)
	w.Bool(e.Delta)
	w.Bool(e.BoolValue)
	w.Enum(uint64(e.EventType))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e BuiltinEvent) MarshalBinary() ([]byte, error) {
	w := archive.NewWriter()
	e.Encode(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are
// rejected.
func (e *BuiltinEvent) UnmarshalBinary(data []byte) error {
	r := archive.NewReader(data)
	decoded, err := DecodeBuiltinEvent(r)
	if err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return apperrors.New(apperrors.CodeMalformedRecord,
			fmt.Sprintf("decode event: %d trailing bytes", r.Remaining()))
	}
	*e = decoded
	return nil
}

// DecodeBuiltinEvent reads one event written by BuiltinEvent.Encode.
func DecodeBuiltinEvent(r *archive.Reader) (BuiltinEvent, error) {
	var e BuiltinEvent
	var err error
	if e.ParticipantName, err = r.String(); err != nil {
		return BuiltinEvent{}, malformed("participant name", err)
	}
	if e.EventName, err = r.String(); err != nil {
		return BuiltinEvent{}, malformed("event name", err)
	}
	if e.IntValue, err = r.Int32(); err != nil {
		return BuiltinEvent{}, malformed("int value", err)
	}
	if e.FloatValue, err = r.Float32(); err != nil {
		return BuiltinEvent{}, malformed("float value", err)
	}
	if e.NameValue, err = r.String(); err != nil {
		return BuiltinEvent{}, malformed("name value", err)
	}
	if e.Delta, err = r.Bool(); err != nil {
		return BuiltinEvent{}, malformed("delta", err)
	}
	if e.BoolValue, err = r.Bool(); err != nil {
		return BuiltinEvent{}, malformed("bool value", err)
	}
	raw, err := r.Enum()
	if err != nil {
		return BuiltinEvent{}, malformed("event type", err)
	}
	if raw >= uint64(eventTypeCount) {
		return BuiltinEvent{}, apperrors.WithMetadata(apperrors.CodeUnknownEventType,
			fmt.Sprintf("decode event: unknown event type %d", raw),
			map[string]string{"participant": e.ParticipantName, "event": e.EventName})
	}
	e.EventType = EventType(raw)
	return e, nil
}

// Encode writes the participant name followed by the held object's type tag
// and fields. A nil object, typed or not, is written as an empty tag with no
// fields.
func (c CustomEvent) Encode(w *archive.Writer) error {
	w.String(c.ParticipantName)
	if c.empty() {
		w.String("")
		return nil
	}
	tag := c.Event.CustomEventType()
	if tag == "" {
		return fmt.Errorf("encode custom event: %T has an empty type tag", c.Event)
	}
	w.String(tag)
	if err := c.Event.EncodeDialogue(w); err != nil {
		return fmt.Errorf("encode custom event %s: %w", tag, err)
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c CustomEvent) MarshalBinary() ([]byte, error) {
	w := archive.NewWriter()
	if err := c.Encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeCustomEvent reads one event written by CustomEvent.Encode,
// constructing the held object from its registered type tag.
func (r *CustomRegistry) DecodeCustomEvent(ar *archive.Reader) (CustomEvent, error) {
	var c CustomEvent
	var err error
	if c.ParticipantName, err = ar.String(); err != nil {
		return CustomEvent{}, malformed("participant name", err)
	}
	tag, err := ar.String()
	if err != nil {
		return CustomEvent{}, malformed("custom event type", err)
	}
	if tag == "" {
		return c, nil
	}
	def, ok := r.Lookup(tag)
	if !ok {
		return CustomEvent{}, apperrors.WithMetadata(apperrors.CodeUnknownCustomEventType,
			fmt.Sprintf("decode custom event: unregistered type %q", tag),
			map[string]string{"participant": c.ParticipantName, "type": tag})
	}
	obj := def.New()
	if (CustomEvent{Event: obj}).empty() {
		return CustomEvent{}, apperrors.WithMetadata(apperrors.CodeUnknownCustomEventType,
			fmt.Sprintf("decode custom event: constructor for %q returned nil", tag),
			map[string]string{"participant": c.ParticipantName, "type": tag})
	}
	if err := obj.DecodeDialogue(ar); err != nil {
		return CustomEvent{}, malformed("custom event "+tag, err)
	}
	c.Event = obj
	return c, nil
}

// UnmarshalCustomEvent decodes a complete custom event record.
func (r *CustomRegistry) UnmarshalCustomEvent(data []byte) (CustomEvent, error) {
	ar := archive.NewReader(data)
	c, err := r.DecodeCustomEvent(ar)
	if err != nil {
		return CustomEvent{}, err
	}
	if ar.Remaining() != 0 {
		return CustomEvent{}, apperrors.New(apperrors.CodeMalformedRecord,
			fmt.Sprintf("decode custom event: %d trailing bytes", ar.Remaining()))
	}
	return c, nil
}

func malformed(field string, err error) error {
	return apperrors.Wrap(apperrors.CodeMalformedRecord, "decode "+field, err)
}
