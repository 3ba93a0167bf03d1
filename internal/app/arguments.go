package app

import (
	"maps"
	"regexp"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
)

var overridePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*=`)

// parseArguments splits command-line words into variable overrides and recipe invocations.
// Overrides are only recognized before the first recipe name. A word naming a recipe
// consumes up to that recipe's maximum argument count; a variadic recipe consumes the rest.
// Unknown names become argument-less invocations so the planner can report them together.
func parseArguments(
	table *domain.RecipeTable,
	words []string,
	base map[string]string,
) (map[string]string, []domain.Invocation) {
	overrides := maps.Clone(base)
	if overrides == nil {
		overrides = make(map[string]string)
	}

	i := 0
	for ; i < len(words) && overridePattern.MatchString(words[i]); i++ {
		name, value, _ := strings.Cut(words[i], "=")
		overrides[name] = value
	}

	var invocations []domain.Invocation
	for i < len(words) {
		name := words[i]
		i++

		recipe, ok := table.Lookup(name)
		if !ok {
			invocations = append(invocations, domain.Invocation{Recipe: name})
			continue
		}

		end := len(words)
		if limit := recipe.MaxArguments(); limit >= 0 && i+limit < end {
			end = i + limit
		}
		invocations = append(invocations, domain.Invocation{
			Recipe:    name,
			Arguments: words[i:end],
		})
		i = end
	}
	return overrides, invocations
}
