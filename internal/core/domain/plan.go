package domain

// Invocation is one recipe requested on the command line.
type Invocation struct {
	Recipe    string
	Arguments []string
	// Implicit is set when the recipe was chosen as the default rather than named.
	Implicit bool
}

// PlanEntry is one recipe run with its bound arguments.
type PlanEntry struct {
	Recipe    *Recipe
	Arguments []string
	// Scope holds the bound parameters over the global assignments.
	Scope *Scope
	// Key identifies the entry by recipe name and bound argument values.
	Key string
}

// Plan is the ordered, deduplicated list of recipe runs.
// Every dependency of an entry appears strictly earlier.
type Plan struct {
	Entries []PlanEntry
	Globals *Scope
}

// Names returns the recipe names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Recipe.Name.String()
	}
	return names
}
