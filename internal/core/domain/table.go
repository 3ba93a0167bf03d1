package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// FileSettings are the settings declared inside a recipe file.
type FileSettings struct {
	Shell      []string
	DotenvLoad bool
	DotenvPath string
	Export     bool
	TempDir    string
	Unstable   bool
}

// RecipeTable is the immutable result of loading a recipe file.
type RecipeTable struct {
	// Path is the absolute path of the root recipe file.
	Path          string
	DefaultRecipe string
	Settings      FileSettings

	recipes     map[InternedString]*Recipe
	order       []InternedString
	assignments []Assignment
	assigned    map[string]int
}

// NewRecipeTable creates an empty table for the file at path.
func NewRecipeTable(path string) *RecipeTable {
	return &RecipeTable{
		Path:     path,
		recipes:  make(map[InternedString]*Recipe),
		assigned: make(map[string]int),
	}
}

// AddRecipe appends r to the table.
// It returns an error if a recipe with the same name already exists.
func (t *RecipeTable) AddRecipe(r *Recipe) error {
	if _, exists := t.recipes[r.Name]; exists {
		return zerr.With(ErrRecipeAlreadyExists, "recipe", r.Name.String())
	}
	t.recipes[r.Name] = r
	t.order = append(t.order, r.Name)
	return nil
}

// AddAssignment appends a to the table in declaration order.
func (t *RecipeTable) AddAssignment(a Assignment) error {
	if _, exists := t.assigned[a.Name]; exists {
		return zerr.With(ErrAssignmentAlreadyExists, "variable", a.Name)
	}
	t.assigned[a.Name] = len(t.assignments)
	t.assignments = append(t.assignments, a)
	return nil
}

// Lookup returns the recipe called name.
func (t *RecipeTable) Lookup(name string) (*Recipe, bool) {
	r, ok := t.recipes[NewInternedString(name)]
	return r, ok
}

// Recipes yields the recipes in declaration order.
func (t *RecipeTable) Recipes() iter.Seq[*Recipe] {
	return func(yield func(*Recipe) bool) {
		for _, name := range t.order {
			if !yield(t.recipes[name]) {
				return
			}
		}
	}
}

// Names returns the recipe names in declaration order.
func (t *RecipeTable) Names() []string {
	names := make([]string, len(t.order))
	for i, name := range t.order {
		names[i] = name.String()
	}
	return names
}

// Len returns the number of recipes.
func (t *RecipeTable) Len() int {
	return len(t.order)
}

// Default returns the recipe run when no recipe is named on the command line:
// the configured default, or else the first recipe declared.
func (t *RecipeTable) Default() (*Recipe, bool) {
	if t.DefaultRecipe != "" {
		return t.Lookup(t.DefaultRecipe)
	}
	if len(t.order) == 0 {
		return nil, false
	}
	return t.recipes[t.order[0]], true
}

// Assignments returns the global assignments in declaration order.
func (t *RecipeTable) Assignments() []Assignment {
	return t.assignments
}

// Assignment returns the assignment called name.
func (t *RecipeTable) Assignment(name string) (Assignment, bool) {
	i, ok := t.assigned[name]
	if !ok {
		return Assignment{}, false
	}
	return t.assignments[i], true
}

// Validate checks the structural rules a loader must enforce before the table is used.
func (t *RecipeTable) Validate() error {
	if t.DefaultRecipe != "" {
		if _, ok := t.Lookup(t.DefaultRecipe); !ok {
			return zerr.With(ErrUnknownDefaultRecipe, "recipe", t.DefaultRecipe)
		}
	}

	for r := range t.Recipes() {
		if err := validateParameters(r); err != nil {
			return err
		}
		for _, dep := range r.Dependencies {
			if _, ok := t.recipes[dep.Recipe]; !ok {
				err := zerr.With(ErrMissingDependency, "recipe", r.Name.String())
				return zerr.With(err, "dependency", dep.Recipe.String())
			}
		}
	}
	return nil
}

func validateParameters(r *Recipe) error {
	seen := make(map[string]bool, len(r.Parameters))
	defaulted := false
	for i, p := range r.Parameters {
		if seen[p.Name] {
			err := zerr.With(ErrDuplicateParameter, "recipe", r.Name.String())
			return zerr.With(err, "parameter", p.Name)
		}
		seen[p.Name] = true
		if p.IsVariadic() && i != len(r.Parameters)-1 {
			err := zerr.With(ErrVariadicNotLast, "recipe", r.Name.String())
			return zerr.With(err, "parameter", p.Name)
		}
		if defaulted && p.Default == nil && !p.IsVariadic() {
			err := zerr.With(ErrRequiredAfterDefault, "recipe", r.Name.String())
			return zerr.With(err, "parameter", p.Name)
		}
		defaulted = defaulted || p.Default != nil
	}
	return nil
}
