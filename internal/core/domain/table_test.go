package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/zerr"
)

func recipe(name string, deps ...string) *domain.Recipe {
	r := &domain.Recipe{Name: domain.NewInternedString(name)}
	for _, d := range deps {
		r.Dependencies = append(r.Dependencies, domain.Dependency{Recipe: domain.NewInternedString(d)})
	}
	return r
}

func tableOf(t *testing.T, recipes ...*domain.Recipe) *domain.RecipeTable {
	t.Helper()
	table := domain.NewRecipeTable("jot.yaml")
	for _, r := range recipes {
		require.NoError(t, table.AddRecipe(r))
	}
	return table
}

func TestRecipeTable_AddRecipe(t *testing.T) {
	table := domain.NewRecipeTable("jot.yaml")
	require.NoError(t, table.AddRecipe(recipe("build")))

	err := table.AddRecipe(recipe("build"))
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "build", zErr.Metadata()["recipe"])
}

func TestRecipeTable_AddAssignment(t *testing.T) {
	table := domain.NewRecipeTable("jot.yaml")
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "a", Value: domain.Literal{Text: "1"}}))
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "b", Value: domain.Literal{Text: "2"}}))

	err := table.AddAssignment(domain.Assignment{Name: "a"})
	assert.ErrorContains(t, err, "variable already assigned")

	got, ok := table.Assignment("b")
	require.True(t, ok)
	assert.Equal(t, domain.Literal{Text: "2"}, got.Value)

	names := []string{}
	for _, a := range table.Assignments() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRecipeTable_Default(t *testing.T) {
	empty := domain.NewRecipeTable("jot.yaml")
	_, ok := empty.Default()
	assert.False(t, ok)

	table := tableOf(t, recipe("first"), recipe("second"))
	r, ok := table.Default()
	require.True(t, ok)
	assert.Equal(t, "first", r.Name.String())

	table.DefaultRecipe = "second"
	r, ok = table.Default()
	require.True(t, ok)
	assert.Equal(t, "second", r.Name.String())
	assert.Equal(t, []string{"first", "second"}, table.Names())
	assert.Equal(t, 2, table.Len())
}

func TestRecipeTable_Validate(t *testing.T) {
	t.Run("missing dependency", func(t *testing.T) {
		table := tableOf(t, recipe("a", "ghost"))
		assert.ErrorContains(t, table.Validate(), "missing dependency")
	})

	t.Run("variadic not last", func(t *testing.T) {
		r := recipe("a")
		r.Parameters = []domain.Parameter{{Name: "rest", Kind: domain.VariadicOneOrMore}, {Name: "b"}}
		table := tableOf(t, r)
		assert.ErrorContains(t, table.Validate(), "variadic parameter must be last")
	})

	t.Run("required after default", func(t *testing.T) {
		r := recipe("a")
		r.Parameters = []domain.Parameter{{Name: "a", Default: domain.Literal{Text: "x"}}, {Name: "b"}}
		table := tableOf(t, r)
		assert.ErrorContains(t, table.Validate(), "non-default parameter follows default parameter")
	})

	t.Run("variadic after default", func(t *testing.T) {
		r := recipe("a")
		r.Parameters = []domain.Parameter{
			{Name: "a", Default: domain.Literal{Text: "x"}},
			{Name: "rest", Kind: domain.VariadicOneOrMore},
		}
		table := tableOf(t, r)
		assert.NoError(t, table.Validate())
	})

	t.Run("duplicate parameter", func(t *testing.T) {
		r := recipe("a")
		r.Parameters = []domain.Parameter{{Name: "x"}, {Name: "x"}}
		table := tableOf(t, r)
		assert.ErrorContains(t, table.Validate(), "duplicate parameter")
	})

	t.Run("unknown default", func(t *testing.T) {
		table := tableOf(t, recipe("a"))
		table.DefaultRecipe = "b"
		assert.ErrorContains(t, table.Validate(), "default recipe not found")
	})

	t.Run("valid", func(t *testing.T) {
		table := tableOf(t, recipe("a", "b"), recipe("b"))
		assert.NoError(t, table.Validate())
	})
}

func TestRecipeTable_CheckCycles(t *testing.T) {
	t.Run("self dependency", func(t *testing.T) {
		table := tableOf(t, recipe("a", "a"))

		err := table.CheckCycles([]string{"a"})
		var cycle *domain.CircularDependencyError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "a"}, cycle.Cycle)
		assert.Equal(t, "Recipe `a` depends on itself", err.Error())
	})

	t.Run("transitive", func(t *testing.T) {
		table := tableOf(t, recipe("a", "b"), recipe("b", "c"), recipe("c", "a"))

		err := table.CheckCycles([]string{"a"})
		var cycle *domain.CircularDependencyError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "b", "c", "a"}, cycle.Cycle)
		assert.Equal(t, "Recipe `a` has circular dependency `a -> b -> c -> a`", err.Error())
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		table := tableOf(t, recipe("a", "b", "c"), recipe("b", "d"), recipe("c", "d"), recipe("d"))
		assert.NoError(t, table.CheckCycles([]string{"a"}))
	})

	t.Run("unreachable cycle is ignored", func(t *testing.T) {
		table := tableOf(t, recipe("a"), recipe("x", "y"), recipe("y", "x"))
		assert.NoError(t, table.CheckCycles([]string{"a"}))
	})
}
