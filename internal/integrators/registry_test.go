package integrators

import "testing"

func TestLookup(t *testing.T) {
	for _, name := range []string{"", "euler", "rk4", "rk45"} {
		fn, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if fn() == nil {
			t.Errorf("Lookup(%q) returned a nil integrator", name)
		}
	}

	if _, err := Lookup("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestLookupBuildsFreshInstances(t *testing.T) {
	fn, err := Lookup("rk4")
	if err != nil {
		t.Fatal(err)
	}
	if fn() == fn() {
		t.Error("factory must not share integrator instances")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 3 || names[0] != "euler" || names[2] != "rk45" {
		t.Errorf("unexpected names: %v", names)
	}
}
