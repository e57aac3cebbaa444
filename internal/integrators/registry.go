package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/railsim/internal/dynamo"
)

// Default is the integrator used when none is named.
const Default = "rk4"

// Factory builds a fresh integrator. Integrators may carry scratch state,
// so concurrent callers each need their own instance.
type Factory func() dynamo.Integrator

var registry = map[string]Factory{
	"euler": func() dynamo.Integrator { return NewEuler() },
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"rk45":  func() dynamo.Integrator { return NewRK45() },
}

// Lookup returns the factory registered under name. An empty name selects
// Default.
func Lookup(name string) (Factory, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
