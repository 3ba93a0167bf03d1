package config

import "gopkg.in/yaml.v3"

// Jotfile represents the structure of the jot.yaml recipe file.
// Variables and recipes stay as nodes so declaration order and line numbers survive.
type Jotfile struct {
	Version   string      `yaml:"version"`
	Default   string      `yaml:"default"`
	Settings  SettingsDTO `yaml:"settings"`
	Include   []yaml.Node `yaml:"include"`
	Variables yaml.Node   `yaml:"variables"`
	Recipes   yaml.Node   `yaml:"recipes"`
}

// SettingsDTO represents the settings block.
type SettingsDTO struct {
	Shell      []string `yaml:"shell"`
	DotenvLoad bool     `yaml:"dotenv-load"`
	DotenvPath string   `yaml:"dotenv-path"`
	Export     bool     `yaml:"export"`
	TempDir    string   `yaml:"tempdir"`
	Unstable   bool     `yaml:"unstable"`
}

// VariableDTO is the long form of a variable: `{value: ..., export: true}`.
type VariableDTO struct {
	Value  yaml.Node `yaml:"value"`
	Export bool      `yaml:"export"`
}

// RecipeDTO represents a recipe definition in the long form.
type RecipeDTO struct {
	Doc              string      `yaml:"doc"`
	Params           []yaml.Node `yaml:"params"`
	Deps             []yaml.Node `yaml:"deps"`
	Run              yaml.Node   `yaml:"run"`
	Quiet            bool        `yaml:"quiet"`
	Private          bool        `yaml:"private"`
	NoExitMessage    bool        `yaml:"no-exit-message"`
	WorkingDirectory string      `yaml:"working-directory"`
}

// DependencyDTO is the long form of a dependency: `{recipe: name, args: [...]}`.
type DependencyDTO struct {
	Recipe string      `yaml:"recipe"`
	Args   []yaml.Node `yaml:"args"`
}
