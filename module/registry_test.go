package module

import (
	"reflect"
	"testing"
)

func mustRegister(t *testing.T, r *Registry, name string, requires ...string) {
	t.Helper()
	if err := r.Register(Module{Name: name, Requires: requires}); err != nil {
		t.Fatalf("register %q: %v", name, err)
	}
}

func TestRegistryDuplicateNameFails(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a")
	if err := r.Register(Module{Name: "a"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestValidateRejectsUnregisteredDependency(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", "ghost")
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation to fail on unregistered dependency")
	}
}

func TestValidateDetectsCycle(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", "b")
	mustRegister(t, r, "b", "c")
	mustRegister(t, r, "c", "a")
	if err := r.Validate(); err == nil {
		t.Fatal("expected cycle detection to fail validation")
	}
}

func TestResolveEquipBlueprintOrdersDependenciesFirst(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a")
	mustRegister(t, r, "b", "a")
	mustRegister(t, r, "c", "b")
	if err := r.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got, err := r.ResolveEquipBlueprint([]string{"c"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveRemoveBlueprintOrdersDependentsFirst(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a")
	mustRegister(t, r, "b", "a")
	mustRegister(t, r, "c", "b")
	if err := r.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got, err := r.ResolveRemoveBlueprint([]string{"a"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveEquipBlueprintUnknownNameErrors(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a")
	if _, err := r.ResolveEquipBlueprint([]string{"missing"}); err == nil {
		t.Fatal("expected error for unknown module name")
	}
}

func TestNamesPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "z")
	mustRegister(t, r, "a")
	mustRegister(t, r, "m")
	got := r.Names()
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
