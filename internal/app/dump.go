package app

import (
	"context"
	"encoding/json"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
)

type dumpFile struct {
	Path        string                    `json:"path"`
	Default     string                    `json:"default,omitempty"`
	Settings    dumpSettings              `json:"settings"`
	Assignments map[string]dumpAssignment `json:"assignments"`
	Recipes     map[string]dumpRecipe     `json:"recipes"`
}

type dumpSettings struct {
	Shell      []string `json:"shell,omitempty"`
	DotenvLoad bool     `json:"dotenv_load"`
	DotenvPath string   `json:"dotenv_path,omitempty"`
	Export     bool     `json:"export"`
	TempDir    string   `json:"tempdir,omitempty"`
	Unstable   bool     `json:"unstable"`
}

type dumpAssignment struct {
	Value  string `json:"value"`
	Export bool   `json:"export"`
}

type dumpParameter struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Default *string `json:"default"`
	Export  bool    `json:"export"`
}

type dumpDependency struct {
	Recipe    string   `json:"recipe"`
	Arguments []string `json:"arguments"`
}

type dumpRecipe struct {
	Doc              string           `json:"doc,omitempty"`
	Parameters       []dumpParameter  `json:"parameters"`
	Dependencies     []dumpDependency `json:"dependencies"`
	Body             []string         `json:"body"`
	Quiet            bool             `json:"quiet"`
	Private          bool             `json:"private"`
	NoExitMessage    bool             `json:"no_exit_message"`
	WorkingDirectory string           `json:"working_directory,omitempty"`
}

// Dump writes the loaded recipe table to stdout as JSON.
func (a *App) Dump(_ context.Context, settings domain.Settings) error {
	s, err := a.open(settings)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dumpTable(s.table)); err != nil {
		return &domain.DumpJSONError{Err: err}
	}
	return nil
}

func dumpTable(table *domain.RecipeTable) dumpFile {
	out := dumpFile{
		Path:    table.Path,
		Default: table.DefaultRecipe,
		Settings: dumpSettings{
			Shell:      table.Settings.Shell,
			DotenvLoad: table.Settings.DotenvLoad,
			DotenvPath: table.Settings.DotenvPath,
			Export:     table.Settings.Export,
			TempDir:    table.Settings.TempDir,
			Unstable:   table.Settings.Unstable,
		},
		Assignments: make(map[string]dumpAssignment),
		Recipes:     make(map[string]dumpRecipe),
	}

	for _, a := range table.Assignments() {
		out.Assignments[a.Name] = dumpAssignment{
			Value:  domain.FormatExpression(a.Value),
			Export: a.Export,
		}
	}

	for recipe := range table.Recipes() {
		r := dumpRecipe{
			Doc:              recipe.Doc,
			Parameters:       make([]dumpParameter, 0, len(recipe.Parameters)),
			Dependencies:     make([]dumpDependency, 0, len(recipe.Dependencies)),
			Body:             make([]string, 0, len(recipe.Body)),
			Quiet:            recipe.Attributes.Quiet,
			Private:          recipe.Attributes.Private,
			NoExitMessage:    recipe.Attributes.NoExitMessage,
			WorkingDirectory: recipe.Attributes.WorkingDirectory,
		}
		for _, p := range recipe.Parameters {
			param := dumpParameter{Name: p.Name, Kind: kindName(p.Kind), Export: p.Export}
			if p.Default != nil {
				def := domain.FormatExpression(p.Default)
				param.Default = &def
			}
			r.Parameters = append(r.Parameters, param)
		}
		for _, dep := range recipe.Dependencies {
			args := make([]string, len(dep.Arguments))
			for i, arg := range dep.Arguments {
				args[i] = domain.FormatExpression(arg)
			}
			r.Dependencies = append(r.Dependencies, dumpDependency{Recipe: dep.Recipe.String(), Arguments: args})
		}
		for _, line := range recipe.Body {
			r.Body = append(r.Body, formatLine(line))
		}
		out.Recipes[recipe.Name.String()] = r
	}
	return out
}

func kindName(kind domain.VariadicKind) string {
	switch kind {
	case domain.VariadicOneOrMore:
		return "plus"
	case domain.VariadicZeroOrMore:
		return "star"
	default:
		return "singular"
	}
}

// formatLine renders a body line back into template syntax.
func formatLine(line domain.Line) string {
	var b strings.Builder
	for _, part := range line.Parts {
		if lit, ok := part.(domain.Literal); ok {
			b.WriteString(strings.ReplaceAll(lit.Text, "{{", "{{{{"))
			continue
		}
		b.WriteString("{{ ")
		b.WriteString(domain.FormatExpression(part))
		b.WriteString(" }}")
	}
	return b.String()
}
