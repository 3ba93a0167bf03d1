package domain

import "slices"

// Settings is the resolved run configuration: command-line flags and environment
// variables over the recipe file's own settings.
type Settings struct {
	File       string
	Shell      []string
	ShellArgs  []string
	TempDir    string
	DotenvPath string
	DotenvLoad bool
	Export     bool
	Overrides  map[string]string
	Unstable   bool
	DryRun     bool
	Quiet      bool
	Color      bool
	Trace      bool
}

// DefaultShell is used when neither the flags nor the recipe file name a shell.
var DefaultShell = []string{"sh", "-cu"}

// ShellCommand returns the program and leading arguments used to run a line.
func (s Settings) ShellCommand() []string {
	shell := s.Shell
	if len(shell) == 0 {
		shell = DefaultShell
	}
	if len(s.ShellArgs) == 0 {
		return slices.Clone(shell)
	}
	return append([]string{shell[0]}, s.ShellArgs...)
}

// Merge fills fields left empty in s from the recipe file settings.
func (s Settings) Merge(file FileSettings) Settings {
	if len(s.Shell) == 0 {
		s.Shell = file.Shell
	}
	if s.TempDir == "" {
		s.TempDir = file.TempDir
	}
	if s.DotenvPath == "" {
		s.DotenvPath = file.DotenvPath
	}
	s.DotenvLoad = s.DotenvLoad || file.DotenvLoad || s.DotenvPath != ""
	s.Export = s.Export || file.Export
	s.Unstable = s.Unstable || file.Unstable
	return s
}
