package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports/mocks"
	"go.trai.ch/jot/internal/engine/evaluator"
	"go.trai.ch/jot/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

type recipeSpec struct {
	name   string
	params []domain.Parameter
	deps   []domain.Dependency
}

func dep(name string, args ...domain.Expression) domain.Dependency {
	return domain.Dependency{Recipe: domain.NewInternedString(name), Arguments: args}
}

func buildTable(t *testing.T, specs ...recipeSpec) *domain.RecipeTable {
	t.Helper()
	table := domain.NewRecipeTable("/project/jot.yaml")
	for _, s := range specs {
		require.NoError(t, table.AddRecipe(&domain.Recipe{
			Name:         domain.NewInternedString(s.name),
			Parameters:   s.params,
			Dependencies: s.deps,
		}))
	}
	return table
}

func newPlanner(t *testing.T) (*planner.Planner, *mocks.MockBacktickRunner) {
	t.Helper()
	runner := mocks.NewMockBacktickRunner(gomock.NewController(t))
	return planner.New(evaluator.New(runner, evaluator.Config{})), runner
}

func invoke(name string, args ...string) domain.Invocation {
	return domain.Invocation{Recipe: name, Arguments: args}
}

func TestPlan_Chain(t *testing.T) {
	p, _ := newPlanner(t)
	// Declaration order deliberately differs from execution order.
	table := buildTable(t,
		recipeSpec{name: "A", deps: []domain.Dependency{dep("B")}},
		recipeSpec{name: "C"},
		recipeSpec{name: "B", deps: []domain.Dependency{dep("C")}},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("A")},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, plan.Names())
}

func TestPlan_DiamondRunsSharedDependencyOnce(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{name: "top", deps: []domain.Dependency{dep("left"), dep("right")}},
		recipeSpec{name: "left", deps: []domain.Dependency{dep("base")}},
		recipeSpec{name: "right", deps: []domain.Dependency{dep("base")}},
		recipeSpec{name: "base"},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("top"), invoke("base")},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"base", "left", "right", "top"}, plan.Names())
}

func TestPlan_DistinctArgumentsRunSeparately(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{name: "all", deps: []domain.Dependency{
			dep("build", domain.Literal{Text: "linux"}),
			dep("build", domain.Literal{Text: "darwin"}),
			dep("build", domain.Literal{Text: "linux"}),
		}},
		recipeSpec{name: "build", params: []domain.Parameter{{Name: "os"}}},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("all")},
	})

	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)
	assert.Equal(t, []string{"linux"}, plan.Entries[0].Arguments)
	assert.Equal(t, []string{"darwin"}, plan.Entries[1].Arguments)
	assert.NotEqual(t, plan.Entries[0].Key, plan.Entries[1].Key)

	os, _ := plan.Entries[1].Scope.Lookup("os")
	assert.Equal(t, "darwin", os)
}

func TestPlan_VariadicArgumentsKeepBoundaries(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{name: "each", params: []domain.Parameter{{Name: "items", Kind: domain.VariadicOneOrMore}}},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("each", "a b"), invoke("each", "a", "b"), invoke("each", "a", "b")},
	})

	require.NoError(t, err)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, []string{"a b"}, plan.Entries[0].Arguments)
	assert.Equal(t, []string{"a", "b"}, plan.Entries[1].Arguments)
	assert.NotEqual(t, plan.Entries[0].Key, plan.Entries[1].Key)
}

func TestPlan_EmptyVariadicDiffersFromEmptyArgument(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{name: "each", params: []domain.Parameter{{Name: "items", Kind: domain.VariadicZeroOrMore}}},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("each"), invoke("each", "")},
	})

	require.NoError(t, err)
	assert.Len(t, plan.Entries, 2)
}

func TestPlan_DependencyArgumentsUseCallerScope(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{
			name:   "release",
			params: []domain.Parameter{{Name: "version"}},
			deps: []domain.Dependency{dep("tag", domain.Concatenation{Parts: []domain.Expression{
				domain.Literal{Text: "v"}, domain.Variable{Name: "version"},
			}})},
		},
		recipeSpec{name: "tag", params: []domain.Parameter{{Name: "name"}}},
	)

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("release", "1.0")},
	})

	require.NoError(t, err)
	require.Equal(t, []string{"tag", "release"}, plan.Names())
	name, _ := plan.Entries[0].Scope.Lookup("name")
	assert.Equal(t, "v1.0", name)
	_, leaked := plan.Entries[0].Scope.Lookup("version")
	assert.False(t, leaked, "dependency scope must not see the caller's parameters")
}

func TestPlan_CycleSpawnsNothing(t *testing.T) {
	tests := []struct {
		name  string
		specs []recipeSpec
		cycle []string
	}{
		{
			name:  "self",
			specs: []recipeSpec{{name: "a", deps: []domain.Dependency{dep("a")}}},
			cycle: []string{"a", "a"},
		},
		{
			name: "transitive",
			specs: []recipeSpec{
				{name: "a", deps: []domain.Dependency{dep("b")}},
				{name: "b", deps: []domain.Dependency{dep("a")}},
			},
			cycle: []string{"a", "b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The runner has no expectations: a backtick in the assignment would fail the test.
			p, _ := newPlanner(t)
			table := buildTable(t, tt.specs...)
			require.NoError(t, table.AddAssignment(domain.Assignment{
				Name:  "expensive",
				Value: domain.Backtick{Command: domain.Literal{Text: "sleep 10"}},
			}))

			_, err := p.Plan(context.Background(), planner.Input{
				Table:       table,
				Invocations: []domain.Invocation{invoke("a")},
			})

			var cycle *domain.CircularDependencyError
			require.ErrorAs(t, err, &cycle)
			assert.Equal(t, tt.cycle, cycle.Cycle)
		})
	}
}

func TestPlan_DefaultRecipe(t *testing.T) {
	t.Run("no recipes", func(t *testing.T) {
		p, _ := newPlanner(t)
		_, err := p.Plan(context.Background(), planner.Input{Table: buildTable(t)})
		var noRecipes *domain.NoRecipesError
		assert.ErrorAs(t, err, &noRecipes)
	})

	t.Run("first recipe is the default", func(t *testing.T) {
		p, _ := newPlanner(t)
		plan, err := p.Plan(context.Background(), planner.Input{
			Table: buildTable(t, recipeSpec{name: "first"}, recipeSpec{name: "second"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"first"}, plan.Names())
	})

	t.Run("default requires arguments", func(t *testing.T) {
		p, _ := newPlanner(t)
		_, err := p.Plan(context.Background(), planner.Input{
			Table: buildTable(t, recipeSpec{name: "greet", params: []domain.Parameter{{Name: "who"}}}),
		})
		var requires *domain.DefaultRecipeRequiresArgumentsError
		require.ErrorAs(t, err, &requires)
		assert.Equal(t, "greet", requires.Recipe)
	})
}

func TestPlan_UnknownRecipes(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t, recipeSpec{name: "build"}, recipeSpec{name: "test"})

	_, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("biuld"), invoke("test"), invoke("deploy"), invoke("biuld")},
	})

	var unknown *domain.UnknownRecipesError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"biuld", "deploy"}, unknown.Recipes)
	assert.Equal(t, "build", unknown.Suggestion())
}

func TestPlan_Overrides(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t, recipeSpec{name: "show"})
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "mode", Value: domain.Literal{Text: "debug"}}))

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Overrides:   map[string]string{"mode": "release"},
		Invocations: []domain.Invocation{invoke("show")},
	})
	require.NoError(t, err)
	mode, _ := plan.Globals.Lookup("mode")
	assert.Equal(t, "release", mode)

	_, err = p.Plan(context.Background(), planner.Input{
		Table:       table,
		Overrides:   map[string]string{"zeta": "1", "alpha": "2"},
		Invocations: []domain.Invocation{invoke("show")},
	})
	var unknown *domain.UnknownOverridesError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"alpha", "zeta"}, unknown.Overrides)
}

func TestPlan_ArgumentMismatchOnDependency(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t,
		recipeSpec{name: "a", deps: []domain.Dependency{dep("b")}},
		recipeSpec{name: "b", params: []domain.Parameter{{Name: "x"}}},
	)

	_, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Invocations: []domain.Invocation{invoke("a")},
	})

	var mismatch *domain.ArgumentCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "b", mismatch.Recipe)
}

func TestPlan_BaseScopeVisibleToAssignments(t *testing.T) {
	p, _ := newPlanner(t)
	table := buildTable(t, recipeSpec{name: "show"})
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "home", Value: domain.Variable{Name: "HOME"}}))

	plan, err := p.Plan(context.Background(), planner.Input{
		Table:       table,
		Base:        domain.NewScope(domain.EnvironmentLayer([]string{"HOME=/home/jot"})),
		Invocations: []domain.Invocation{invoke("show")},
	})

	require.NoError(t, err)
	home, _ := plan.Entries[0].Scope.Lookup("home")
	assert.Equal(t, "/home/jot", home)
}
