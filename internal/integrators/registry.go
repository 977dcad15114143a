package integrators

import (
	"fmt"
	"sort"

	"github.com/kswierk/physlab/internal/ode"
)

var constructors = map[string]func() ode.Integrator{
	"euler":    func() ode.Integrator { return NewEuler() },
	"rk4":      func() ode.Integrator { return NewRK4() },
	"rk45":     func() ode.Integrator { return NewRK45() },
	"verlet":   func() ode.Integrator { return NewVerlet() },
	"leapfrog": func() ode.Integrator { return NewLeapfrog() },
}

// ByName returns a fresh integrator for a registry name. Integrators carry
// scratch state, so every simulation needs its own instance.
func ByName(name string) (ode.Integrator, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (have %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
