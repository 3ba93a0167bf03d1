package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jot/internal/adapters/render"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/zerr"
)

// List prints the public recipes in alphabetical order with their parameters and docs.
func (a *App) List(_ context.Context, settings domain.Settings) error {
	s, err := a.open(settings)
	if err != nil {
		return err
	}

	recipes := publicRecipes(s.table)
	slices.SortFunc(recipes, func(x, y *domain.Recipe) int {
		return strings.Compare(x.Name.String(), y.Name.String())
	})

	r := render.NewRenderer(a.stdout, s.settings.Color)
	name := r.NewStyle().Bold(true)
	doc := r.NewStyle().Foreground(lipgloss.Color("4"))

	width := 0
	for _, recipe := range recipes {
		width = max(width, len(recipe.Signature()))
	}

	var b strings.Builder
	b.WriteString("Available recipes:\n")
	for _, recipe := range recipes {
		signature := recipe.Signature()
		b.WriteString("    ")
		b.WriteString(name.Render(recipe.Name.String()))
		b.WriteString(strings.TrimPrefix(signature, recipe.Name.String()))
		if recipe.Doc != "" {
			b.WriteString(strings.Repeat(" ", width-len(signature)))
			b.WriteString(" ")
			b.WriteString(doc.Render("# " + recipe.Doc))
		}
		b.WriteString("\n")
	}

	if _, err := fmt.Fprint(a.stdout, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write recipe list")
	}
	return nil
}

func publicRecipes(table *domain.RecipeTable) []*domain.Recipe {
	var recipes []*domain.Recipe
	for recipe := range table.Recipes() {
		if !recipe.Attributes.Private {
			recipes = append(recipes, recipe)
		}
	}
	return recipes
}
