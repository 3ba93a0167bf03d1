// Package config provides the recipe file loader for jot.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the recipe file looked up by Discover.
const DefaultFilename = "jot.yaml"

const supportedVersion = "1"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// FileConfigLoader implements ports.ConfigLoader using YAML files.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader that discovers files called filename.
func NewLoader(filename string) *FileConfigLoader {
	return &FileConfigLoader{Filename: filename}
}

// Discover walks up from cwd and returns the first recipe file found.
func (l *FileConfigLoader) Discover(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		candidate := filepath.Join(dir, l.Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrRecipeFileNotFound, "search_root", cwd)
		}
		dir = parent
	}
}

// Load reads the recipe file at path and the files it includes.
func (l *FileConfigLoader) Load(path string) (*domain.RecipeTable, error) {
	return Load(path)
}

// Load reads a recipe file from the given path and returns a domain.RecipeTable.
func Load(path string) (*domain.RecipeTable, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	c := &compiler{
		table:     domain.NewRecipeTable(abs),
		depTokens: make(map[string][]domain.Token),
	}
	if err := c.file(abs, true); err != nil {
		return nil, err
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	if err := c.table.Validate(); err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return c.table, nil
}

// compiler accumulates the table across a file and its includes.
type compiler struct {
	table *domain.RecipeTable
	stack []string
	// depTokens holds the position of each dependency, parallel to Recipe.Dependencies.
	depTokens    map[string][]domain.Token
	defaultToken domain.Token
}

func (c *compiler) file(path string, root bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return &domain.LoadError{Path: path, Err: err}
	}
	src := newSource(path, data)

	var jf Jotfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&jf); err != nil && !errors.Is(err, io.EOF) {
		return &domain.CompileError{Message: err.Error(), Token: domain.Token{Path: path}}
	}

	if jf.Version != "" && jf.Version != supportedVersion {
		return &domain.CompileError{
			Message: "Unsupported recipe file version `" + jf.Version + "`",
			Token:   domain.Token{Path: path},
		}
	}

	if root {
		c.table.DefaultRecipe = jf.Default
		c.table.Settings = domain.FileSettings{
			Shell:      jf.Settings.Shell,
			DotenvLoad: jf.Settings.DotenvLoad,
			DotenvPath: jf.Settings.DotenvPath,
			Export:     jf.Settings.Export,
			TempDir:    jf.Settings.TempDir,
			Unstable:   jf.Settings.Unstable,
		}
		if jf.Default != "" {
			c.defaultToken = src.token(1, 1, jf.Default)
		}
	}

	if err := c.variables(src, &jf.Variables); err != nil {
		return err
	}
	if err := c.recipes(src, &jf.Recipes); err != nil {
		return err
	}

	c.stack = append(c.stack, path)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()
	for i := range jf.Include {
		if err := c.include(path, &jf.Include[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) include(current string, node *yaml.Node) error {
	if strings.TrimSpace(node.Value) == "" {
		return &domain.IncludeMissingPathError{File: current, Line: node.Line}
	}
	target := node.Value
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(current), target)
	}
	target = filepath.Clean(target)
	if slices.Contains(c.stack, target) {
		return &domain.CircularIncludeError{Current: current, Include: target}
	}
	return c.file(target, false)
}

func (c *compiler) variables(src *source, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return src.errorf(node.Line, node.Column, "variables", "`variables` must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if !namePattern.MatchString(key.Value) {
			return src.errorf(key.Line, key.Column, key.Value, "Invalid variable name `%s`", key.Value)
		}

		assignment := domain.Assignment{Name: key.Value, Line: key.Line}
		valueNode := value
		if value.Kind == yaml.MappingNode {
			var dto VariableDTO
			if err := decodeStrict(src, value, &dto, variableKeys); err != nil {
				return err
			}
			assignment.Export = dto.Export
			valueNode = &dto.Value
		}

		expr, err := c.template(src, valueNode)
		if err != nil {
			return err
		}
		assignment.Value = expr

		if _, exists := c.table.Assignment(key.Value); exists {
			return src.errorf(key.Line, key.Column, key.Value, "Variable `%s` has multiple definitions", key.Value)
		}
		if err := c.table.AddAssignment(assignment); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) recipes(src *source, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return src.errorf(node.Line, node.Column, "recipes", "`recipes` must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if _, exists := c.table.Lookup(key.Value); exists {
			return src.errorf(key.Line, key.Column, key.Value, "Recipe `%s` has multiple definitions", key.Value)
		}
		recipe, err := c.recipe(src, key, value)
		if err != nil {
			return err
		}
		if err := c.table.AddRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) recipe(src *source, key, value *yaml.Node) (*domain.Recipe, error) {
	name := key.Value
	if !namePattern.MatchString(name) {
		return nil, src.errorf(key.Line, key.Column, name, "Invalid recipe name `%s`", name)
	}

	recipe := &domain.Recipe{
		Name: domain.NewInternedString(name),
		Line: key.Line,
	}
	recipe.Attributes.Private = strings.HasPrefix(name, "_")

	// Short forms: `name: command` and `name: [lines...]`.
	var dto RecipeDTO
	switch value.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		dto.Run = *value
	case yaml.MappingNode:
		if err := decodeStrict(src, value, &dto, recipeKeys); err != nil {
			return nil, err
		}
	default:
		return nil, src.errorf(value.Line, value.Column, name, "Recipe `%s` must be a command, a list or a mapping", name)
	}

	recipe.Doc = dto.Doc
	recipe.Attributes.Quiet = dto.Quiet
	recipe.Attributes.Private = recipe.Attributes.Private || dto.Private
	recipe.Attributes.NoExitMessage = dto.NoExitMessage
	recipe.Attributes.WorkingDirectory = dto.WorkingDirectory

	for i := range dto.Params {
		param, err := c.parameter(src, &dto.Params[i])
		if err != nil {
			return nil, err
		}
		recipe.Parameters = append(recipe.Parameters, param)
	}
	if err := checkParameters(src, name, recipe.Parameters, dto.Params); err != nil {
		return nil, err
	}

	tokens := make([]domain.Token, 0, len(dto.Deps))
	for i := range dto.Deps {
		dep, tok, err := c.dependency(src, &dto.Deps[i])
		if err != nil {
			return nil, err
		}
		recipe.Dependencies = append(recipe.Dependencies, dep)
		tokens = append(tokens, tok)
	}
	c.depTokens[name] = tokens

	body, err := c.body(src, &dto.Run)
	if err != nil {
		return nil, err
	}
	recipe.Body = body
	return recipe, nil
}

var (
	recipeKeys     = []string{"doc", "params", "deps", "run", "quiet", "private", "no-exit-message", "working-directory"}
	variableKeys   = []string{"value", "export"}
	dependencyKeys = []string{"recipe", "args"}
)

// decodeStrict decodes a mapping node into out, rejecting keys outside allowed.
// Node.Decode does not honor KnownFields, so nested mappings are checked here.
func decodeStrict(src *source, node *yaml.Node, out any, allowed []string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return src.errorf(key.Line, key.Column, key.Value, "Unknown key `%s`", key.Value)
		}
	}
	if err := node.Decode(out); err != nil {
		return src.errorf(node.Line, node.Column, "", "%v", err)
	}
	return nil
}

func checkParameters(src *source, recipe string, params []domain.Parameter, nodes []yaml.Node) error {
	seen := make(map[string]bool, len(params))
	defaulted := false
	for i, p := range params {
		node := nodes[i]
		if seen[p.Name] {
			return src.errorf(node.Line, src.column(node.Line, node.Value, node.Column), p.Name,
				"Recipe `%s` has duplicate parameter `%s`", recipe, p.Name)
		}
		seen[p.Name] = true
		if i > 0 && params[i-1].IsVariadic() {
			return src.errorf(node.Line, src.column(node.Line, node.Value, node.Column), p.Name,
				"Parameter `%s` follows variadic parameter", p.Name)
		}
		if defaulted && p.Default == nil && !p.IsVariadic() {
			return src.errorf(node.Line, src.column(node.Line, node.Value, node.Column), p.Name,
				"Non-default parameter `%s` follows default parameter", p.Name)
		}
		defaulted = defaulted || p.Default != nil
	}
	return nil
}

// parameter parses `name`, `name=default`, `+name`, `*name` and `$name`.
func (c *compiler) parameter(src *source, node *yaml.Node) (domain.Parameter, error) {
	col := src.column(node.Line, node.Value, node.Column)
	spec := node.Value
	var p domain.Parameter

	offset := 0
sigils:
	for ; offset < len(spec); offset++ {
		switch spec[offset] {
		case '+':
			p.Kind = domain.VariadicOneOrMore
		case '*':
			p.Kind = domain.VariadicZeroOrMore
		case '$':
			p.Export = true
		default:
			break sigils
		}
	}
	rest := spec[offset:]
	nameText, def, hasDefault := strings.Cut(rest, "=")
	nameText = strings.TrimSpace(nameText)
	if !namePattern.MatchString(nameText) {
		return p, src.errorf(node.Line, col+offset, nameText, "Invalid parameter `%s`", spec)
	}
	p.Name = nameText

	if hasDefault {
		defCol := col + offset + len(rest) - len(def)
		expr, err := parseExpression(src, def, node.Line, defCol)
		if err != nil {
			return p, err
		}
		p.Default = expr
	}
	return p, nil
}

// dependency parses `name` or `{recipe: name, args: [...]}`.
func (c *compiler) dependency(src *source, node *yaml.Node) (domain.Dependency, domain.Token, error) {
	var dto DependencyDTO
	switch node.Kind {
	case yaml.ScalarNode:
		dto.Recipe = node.Value
	case yaml.MappingNode:
		if err := decodeStrict(src, node, &dto, dependencyKeys); err != nil {
			return domain.Dependency{}, domain.Token{}, err
		}
	default:
		return domain.Dependency{}, domain.Token{},
			src.errorf(node.Line, node.Column, "", "Dependency must be a name or a mapping")
	}

	dep := domain.Dependency{Recipe: domain.NewInternedString(dto.Recipe)}
	tok := src.token(node.Line, src.column(node.Line, dto.Recipe, node.Column), dto.Recipe)
	for i := range dto.Args {
		expr, err := c.template(src, &dto.Args[i])
		if err != nil {
			return dep, tok, err
		}
		dep.Arguments = append(dep.Arguments, expr)
	}
	return dep, tok, nil
}

// body turns the run node into lines. A block scalar is split on newlines.
func (c *compiler) body(src *source, node *yaml.Node) ([]domain.Line, error) {
	var items []*yaml.Node
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		items = []*yaml.Node{node}
	case yaml.SequenceNode:
		items = node.Content
	default:
		return nil, src.errorf(node.Line, node.Column, "run", "`run` must be a string or a list")
	}

	var lines []domain.Line
	for _, item := range items {
		if item.Kind != yaml.ScalarNode {
			return nil, src.errorf(item.Line, item.Column, "", "Recipe lines must be strings")
		}
		first := item.Line
		if item.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			first++
		}
		text := strings.TrimSuffix(item.Value, "\n")
		for i, raw := range strings.Split(text, "\n") {
			line := first + i
			parts, err := parseTemplate(src, raw, line, src.column(line, raw, item.Column))
			if err != nil {
				return nil, err
			}
			lines = append(lines, domain.Line{Parts: parts, Number: line})
		}
	}
	return lines, nil
}

func (c *compiler) template(src *source, node *yaml.Node) (domain.Expression, error) {
	if node.Kind == 0 {
		return domain.Literal{}, nil
	}
	if node.Kind != yaml.ScalarNode {
		return nil, src.errorf(node.Line, node.Column, "", "Expected a string")
	}
	return parseValue(src, node.Value, node.Line, src.column(node.Line, node.Value, node.Column))
}

// check reports references to recipes that do not exist, with their source position.
func (c *compiler) check() error {
	if name := c.table.DefaultRecipe; name != "" {
		if _, ok := c.table.Lookup(name); !ok {
			return &domain.CompileError{
				Message: "Default recipe `" + name + "` does not exist",
				Token:   c.defaultToken,
			}
		}
	}
	for recipe := range c.table.Recipes() {
		name := recipe.Name.String()
		for i, dep := range recipe.Dependencies {
			if _, ok := c.table.Lookup(dep.Recipe.String()); ok {
				continue
			}
			return &domain.CompileError{
				Message: "Recipe `" + name + "` has unknown dependency `" + dep.Recipe.String() + "`",
				Token:   c.depTokens[name][i],
			}
		}
	}
	return nil
}
