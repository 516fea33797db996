package runtime

import (
	"errors"
	"reflect"
	"testing"
)

func TestEnvironmentDefineThenAssign(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign("x", NumberValue{Val: 1}); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected undefined variable, got %v", err)
	}
	if env.Has("x") {
		t.Fatalf("failed assignment must not create a binding")
	}

	env.Define("x", NumberValue{Val: 1})
	if err := env.Assign("x", NumberValue{Val: 2}); err != nil {
		t.Fatalf("assign after define: %v", err)
	}
	got, err := env.Get("x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != (NumberValue{Val: 2}) {
		t.Fatalf("expected 2, got %#v", got)
	}
}

func TestEnvironmentDefineOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("a.b[0]", StringValue{Val: "one"})
	env.Define("a.b[0]", BoolValue{Val: true})
	got, _ := env.Get("a.b[0]")
	if got != (BoolValue{Val: true}) {
		t.Fatalf("expected redefinition to win, got %#v", got)
	}
}

func TestEnvironmentGetUndefined(t *testing.T) {
	_, err := NewEnvironment().Get("Missing")
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected undefined variable, got %v", err)
	}
	if err.Error() != "undefined variable 'Missing'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEnvironmentNamesAreCaseSensitive(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", NullValue{})
	if _, err := env.Get("X"); err == nil {
		t.Fatalf("expected X to be distinct from x")
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Define("b", NumberValue{Val: 2})
	env.Define("a", NumberValue{Val: 1})
	if keys := env.Keys(); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
	snap := env.Snapshot()
	snap["c"] = NullValue{}
	if env.Has("c") {
		t.Fatalf("snapshot must be a copy")
	}
}
