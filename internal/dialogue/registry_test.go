package dialogue

import (
	"reflect"
	"testing"
)

func TestCustomRegistryRegister(t *testing.T) {
	newGreet := func() CustomEventObject { return &greet{} }
	reg := NewCustomRegistry()

	if err := reg.Register(CustomDefinition{Type: greetType, New: newGreet}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(CustomDefinition{Type: greetType, New: newGreet}); err == nil {
		t.Fatal("expected duplicate type error")
	}
	if err := reg.Register(CustomDefinition{Type: " ", New: newGreet}); err == nil {
		t.Fatal("expected empty type error")
	}
	if err := reg.Register(CustomDefinition{Type: " padded", New: newGreet}); err == nil {
		t.Fatal("expected padded type error")
	}
	if err := reg.Register(CustomDefinition{Type: "nil-ctor"}); err == nil {
		t.Fatal("expected missing constructor error")
	}
	var nilRegistry *CustomRegistry
	if err := nilRegistry.Register(CustomDefinition{Type: "x", New: newGreet}); err == nil {
		t.Fatal("expected nil registry error")
	}

	def, ok := reg.Lookup(greetType)
	if !ok || def.Type != greetType {
		t.Fatalf("lookup = %+v, %v", def, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatal("expected missing lookup to fail")
	}
	if got := reg.Types(); !reflect.DeepEqual(got, []string{greetType}) {
		t.Fatalf("types = %v, want [%s]", got, greetType)
	}
}

func TestNilCustomRegistryHasNoTypes(t *testing.T) {
	var reg *CustomRegistry
	if _, ok := reg.Lookup(greetType); ok {
		t.Fatal("expected nil registry lookup to fail")
	}
	if got := reg.Types(); len(got) != 0 {
		t.Fatalf("types = %v, want none", got)
	}
}
