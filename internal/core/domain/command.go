package domain

// CommandLine is a fully rendered line-mode command.
type CommandLine struct {
	Text string
	// Number is the 1-based line reported in failures.
	Number     int
	Quiet      bool
	Infallible bool
}

// Command is a recipe body rendered and ready for the process layer.
type Command struct {
	Recipe string
	// Shebang is set for script-mode recipes.
	Shebang *Shebang
	// Script is the body after the shebang line, joined with newlines.
	Script string
	Lines  []CommandLine

	// Shell is the program and leading arguments used for line mode.
	Shell   []string
	TempDir string
	WorkDir string
	// Env overlays the inherited environment.
	Env           map[string]string
	NoExitMessage bool
}

// IsScript reports whether the command runs as a script file.
func (c *Command) IsScript() bool {
	return c.Shebang != nil
}
