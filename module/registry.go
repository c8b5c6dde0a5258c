package module

import (
	"strings"

	"github.com/limoiie/dofu/dofuerrors"
)

// Registry holds the frozen dependency graph over registered modules.
// Nodes are module names; an edge name -> dep means "name depends on
// dep". Populated at startup via Register, then Validate()'d once;
// reads thereafter are effectively immutable (spec.md section 5).
type Registry struct {
	modules map[string]Module
	order   []string // registration order, for deterministic iteration
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds m to the graph. Registering the same name twice fails.
func (r *Registry) Register(m Module) error {
	if _, exists := r.modules[m.Name]; exists {
		return dofuerrors.NewUserError("module %q is already registered", m.Name)
	}
	r.modules[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// ModuleByName looks up a registered module by name.
func (r *Registry) ModuleByName(name string) (Module, error) {
	m, ok := r.modules[name]
	if !ok {
		return Module{}, dofuerrors.NewUserError("unknown module %q", name)
	}
	return m, nil
}

// Names returns every registered module name, in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Validate checks that every declared dependency is itself registered
// and that the graph is acyclic.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		m := r.modules[name]
		for _, dep := range m.Requires {
			if _, ok := r.modules[dep]; !ok {
				return dofuerrors.NewUserError("module %q requires unregistered module %q", name, dep)
			}
		}
	}
	if cycle := r.findCycle(); cycle != nil {
		return dofuerrors.NewUserError("dependency cycle detected: %s", strings.Join(cycle, " -> "))
	}
	return nil
}

// findCycle returns the names forming a cycle (closed path), or nil if
// the graph is acyclic.
func (r *Registry) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(r.order))
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		color[name] = gray
		path = append(path, name)
		for _, dep := range r.modules[name].Requires {
			switch color[dep] {
			case gray:
				// Found the back-edge that closes the cycle; trim path to
				// start at dep.
				start := 0
				for i, n := range path {
					if n == dep {
						start = i
						break
					}
				}
				return append(append([]string{}, path[start:]...), dep)
			case white:
				if cyc := visit(dep); cyc != nil {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return nil
	}

	for _, name := range r.order {
		if color[name] == white {
			if cyc := visit(name); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// descendants collects the transitive dependencies of names (not
// including names themselves).
func (r *Registry) descendants(names []string) map[string]bool {
	seen := make(map[string]bool)
	var walk func(name string)
	walk = func(name string) {
		for _, dep := range r.modules[name].Requires {
			if !seen[dep] {
				seen[dep] = true
				walk(dep)
			}
		}
	}
	for _, n := range names {
		walk(n)
	}
	return seen
}

// ancestors collects the transitive dependents of names (not including
// names themselves): every module whose Requires set transitively
// includes one of names.
func (r *Registry) ancestors(names []string) map[string]bool {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	// reverse edges: dep -> [dependents]
	reverse := make(map[string][]string)
	for _, name := range r.order {
		for _, dep := range r.modules[name].Requires {
			reverse[dep] = append(reverse[dep], name)
		}
	}

	seen := make(map[string]bool)
	var walk func(name string)
	walk = func(name string) {
		for _, dependent := range reverse[name] {
			if !seen[dependent] {
				seen[dependent] = true
				walk(dependent)
			}
		}
	}
	for n := range wanted {
		walk(n)
	}
	return seen
}

// topoSort returns names topologically sorted dependencies-first,
// restricted to the given set.
func (r *Registry) topoSort(set map[string]bool) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(set))
	var out []string

	var visit func(name string)
	visit = func(name string) {
		if color[name] != white {
			return
		}
		color[name] = gray
		for _, dep := range r.modules[name].Requires {
			if set[dep] {
				visit(dep)
			}
		}
		color[name] = black
		out = append(out, name)
	}

	// Iterate in registration order for determinism.
	for _, name := range r.order {
		if set[name] {
			visit(name)
		}
	}
	return out
}

// ResolveEquipBlueprint collects names ∪ descendants(names) and returns
// them in reverse topological order (dependencies first), per spec.md
// section 4.5.
func (r *Registry) ResolveEquipBlueprint(names []string) ([]string, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := r.ModuleByName(n); err != nil {
			return nil, err
		}
		set[n] = true
	}
	for dep := range r.descendants(names) {
		set[dep] = true
	}
	return r.topoSort(set), nil
}

// ResolveRemoveBlueprint collects names ∪ ancestors(names) and returns
// them in forward topological order (dependents first), per spec.md
// section 4.5.
func (r *Registry) ResolveRemoveBlueprint(names []string) ([]string, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := r.ModuleByName(n); err != nil {
			return nil, err
		}
		set[n] = true
	}
	for dep := range r.ancestors(names) {
		set[dep] = true
	}
	// Dependents-first is the reverse of the dependencies-first topo
	// order over the same restricted set.
	ordered := r.topoSort(set)
	reversed := make([]string, len(ordered))
	for i, n := range ordered {
		reversed[len(ordered)-1-i] = n
	}
	return reversed, nil
}
