package domain

import (
	"fmt"
	"strings"
)

// ErrorKind names a variant of the run error catalog.
type ErrorKind string

// Catalog kinds, grouped by the component that raises them.
const (
	// Planning.
	KindNoRecipes                      ErrorKind = "NoRecipes"
	KindNoDefaultRecipe                ErrorKind = "NoDefaultRecipe"
	KindUnknownRecipes                 ErrorKind = "UnknownRecipes"
	KindUnknownOverrides               ErrorKind = "UnknownOverrides"
	KindCircularDependency             ErrorKind = "CircularDependency"
	KindInternal                       ErrorKind = "Internal"
	KindArgumentCountMismatch          ErrorKind = "ArgumentCountMismatch"
	KindDefaultRecipeRequiresArguments ErrorKind = "DefaultRecipeRequiresArguments"

	// Evaluation.
	KindUnknownVariable ErrorKind = "UnknownVariable"
	KindFunctionCall    ErrorKind = "FunctionCall"
	KindBacktick        ErrorKind = "Backtick"
	KindUnstable        ErrorKind = "Unstable"

	// Execution.
	KindCode           ErrorKind = "Code"
	KindSignal         ErrorKind = "Signal"
	KindUnknownFailure ErrorKind = "Unknown"
	KindIO             ErrorKind = "Io"
	KindShebang        ErrorKind = "Shebang"
	KindTmpdirIO       ErrorKind = "TmpdirIo"
	KindCygpath        ErrorKind = "Cygpath"

	// Loading.
	KindLoad               ErrorKind = "Load"
	KindCompile            ErrorKind = "Compile"
	KindCircularInclude    ErrorKind = "CircularInclude"
	KindIncludeMissingPath ErrorKind = "IncludeMissingPath"
	KindDotenv             ErrorKind = "Dotenv"

	// Front ends.
	KindNoChoosableRecipes ErrorKind = "NoChoosableRecipes"
	KindChooserInvoke      ErrorKind = "ChooserInvoke"
	KindChooserRead        ErrorKind = "ChooserRead"
	KindChooserWrite       ErrorKind = "ChooserWrite"
	KindChooserStatus      ErrorKind = "ChooserStatus"
	KindEditorInvoke       ErrorKind = "EditorInvoke"
	KindEditorStatus       ErrorKind = "EditorStatus"
	KindCommandInvoke      ErrorKind = "CommandInvoke"
	KindCommandStatus      ErrorKind = "CommandStatus"
	KindDumpJSON           ErrorKind = "DumpJson"
)

// RunError is implemented by every user-facing error.
type RunError interface {
	error
	Kind() ErrorKind
}

// Suggester is implemented by errors that can propose a correction.
type Suggester interface {
	Suggestion() string
}

// NoRecipesError is returned when the recipe file declares no recipes.
type NoRecipesError struct{}

func (*NoRecipesError) Error() string   { return "Recipe file contains no recipes." }
func (*NoRecipesError) Kind() ErrorKind { return KindNoRecipes }

// NoDefaultRecipeError is returned when nothing is requested and no default exists.
type NoDefaultRecipeError struct{}

func (*NoDefaultRecipeError) Error() string   { return "Recipe file contains no default recipe." }
func (*NoDefaultRecipeError) Kind() ErrorKind { return KindNoDefaultRecipe }

// UnknownRecipesError lists every requested recipe absent from the table.
type UnknownRecipesError struct {
	Recipes []string
	Suggest string
}

func (e *UnknownRecipesError) Error() string {
	return fmt.Sprintf("Recipe file does not contain %s %s.",
		plural("recipe", len(e.Recipes)), joinTicked(e.Recipes, "or"))
}
func (*UnknownRecipesError) Kind() ErrorKind      { return KindUnknownRecipes }
func (e *UnknownRecipesError) Suggestion() string { return e.Suggest }

// UnknownOverridesError lists command-line overrides that name no assignment.
type UnknownOverridesError struct {
	Overrides []string
}

func (e *UnknownOverridesError) Error() string {
	return fmt.Sprintf("%s %s overridden on the command line but not present in recipe file",
		capitalizedPlural("variable", len(e.Overrides)), joinTicked(e.Overrides, "and"))
}
func (*UnknownOverridesError) Kind() ErrorKind { return KindUnknownOverrides }

// CircularDependencyError reports a cycle among recipe dependencies.
// Cycle starts and ends with the same recipe.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	if len(e.Cycle) == 2 {
		return fmt.Sprintf("Recipe `%s` depends on itself", e.Cycle[0])
	}
	return fmt.Sprintf("Recipe `%s` has circular dependency `%s`",
		e.Cycle[0], strings.Join(e.Cycle, " -> "))
}
func (*CircularDependencyError) Kind() ErrorKind { return KindCircularDependency }

// InternalError signals a broken invariant.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "Internal runtime error, this may indicate a bug in jot: " + e.Message
}
func (*InternalError) Kind() ErrorKind { return KindInternal }

// ArgumentCountMismatchError is returned when a recipe receives too few or too many arguments.
type ArgumentCountMismatchError struct {
	Recipe     string
	Parameters []Parameter
	Found      int
	Min        int
	// Max is -1 when the recipe is variadic.
	Max int
}

func (e *ArgumentCountMismatchError) Error() string {
	prefix := fmt.Sprintf("Recipe `%s` got %d %s but ", e.Recipe, e.Found, plural("argument", e.Found))
	switch {
	case e.Min == e.Max:
		only := ""
		if e.Max < e.Found {
			only = "only "
		}
		return fmt.Sprintf("%s%stakes %d", prefix, only, e.Max)
	case e.Found < e.Min:
		return fmt.Sprintf("%stakes at least %d", prefix, e.Min)
	default:
		return fmt.Sprintf("%stakes at most %d", prefix, e.Max)
	}
}
func (*ArgumentCountMismatchError) Kind() ErrorKind { return KindArgumentCountMismatch }

// Usage renders the recipe's signature for display under the error.
func (e *ArgumentCountMismatchError) Usage() string {
	parts := []string{"jot", e.Recipe}
	for _, p := range e.Parameters {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// DefaultRecipeRequiresArgumentsError is returned when the implicit default recipe
// has required parameters.
type DefaultRecipeRequiresArgumentsError struct {
	Recipe       string
	MinArguments int
}

func (e *DefaultRecipeRequiresArgumentsError) Error() string {
	return fmt.Sprintf("Recipe `%s` cannot be used as default recipe since it requires at least %d %s.",
		e.Recipe, e.MinArguments, plural("argument", e.MinArguments))
}
func (*DefaultRecipeRequiresArgumentsError) Kind() ErrorKind {
	return KindDefaultRecipeRequiresArguments
}

// UnknownVariableError is returned when a variable cannot be resolved.
type UnknownVariableError struct {
	Variable string
	Suggest  string
	Token    Token
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("Variable `%s` not defined", e.Variable)
}
func (*UnknownVariableError) Kind() ErrorKind       { return KindUnknownVariable }
func (e *UnknownVariableError) Suggestion() string { return e.Suggest }
func (e *UnknownVariableError) Location() Token    { return e.Token }

// FunctionCallError is returned when a built-in function fails.
type FunctionCallError struct {
	Function string
	Message  string
	Token    Token
}

func (e *FunctionCallError) Error() string {
	return fmt.Sprintf("Call to function `%s` failed: %s", e.Function, e.Message)
}
func (*FunctionCallError) Kind() ErrorKind    { return KindFunctionCall }
func (e *FunctionCallError) Location() Token { return e.Token }

// BacktickError is returned when a backtick command does not succeed.
type BacktickError struct {
	Token  Token
	Output *OutputError
}

func (e *BacktickError) Error() string {
	switch e.Output.Kind {
	case OutputCode:
		return fmt.Sprintf("Backtick failed with exit code %d", e.Output.Code)
	case OutputSignal:
		return fmt.Sprintf("Backtick was terminated by signal %d", e.Output.Signal)
	case OutputUnknown:
		return "Backtick failed for an unknown reason"
	case OutputUtf8:
		return fmt.Sprintf("Backtick succeeded but stdout was not utf8: %v", e.Output.Err)
	case OutputIO:
		switch ClassifyLaunch(e.Output.Err) {
		case LaunchNotFound:
			return fmt.Sprintf("Backtick could not be run because jot could not find the shell:\n%v", e.Output.Err)
		case LaunchPermission:
			return fmt.Sprintf("Backtick could not be run because jot could not run the shell:\n%v", e.Output.Err)
		case LaunchOther:
		}
		return fmt.Sprintf("Backtick could not be run because of an IO error while launching the shell:\n%v",
			e.Output.Err)
	default:
		return e.Output.Error()
	}
}
func (*BacktickError) Kind() ErrorKind    { return KindBacktick }
func (e *BacktickError) Location() Token { return e.Token }
func (e *BacktickError) Unwrap() error   { return e.Output }

// UnstableError is returned when an unstable feature is used without opting in.
type UnstableError struct {
	Message string
}

func (e *UnstableError) Error() string {
	return e.Message + " Invoke `jot` with `--unstable` or set `JOT_UNSTABLE=1` to enable unstable features."
}
func (*UnstableError) Kind() ErrorKind { return KindUnstable }

// CodeError is returned when a recipe line exits with a nonzero status.
type CodeError struct {
	Recipe string
	// Line is 0 when the failure cannot be attributed to a line.
	Line int
	Code int
	// PrintMessage is false for recipes marked no-exit-message.
	PrintMessage bool
}

func (e *CodeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("Recipe `%s` failed with exit code %d", e.Recipe, e.Code)
	}
	return fmt.Sprintf("Recipe `%s` failed on line %d with exit code %d", e.Recipe, e.Line, e.Code)
}
func (*CodeError) Kind() ErrorKind { return KindCode }

// SignalError is returned when a recipe line is terminated by a signal.
type SignalError struct {
	Recipe string
	Line   int
	Signal int
}

func (e *SignalError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("Recipe `%s` was terminated by signal %d", e.Recipe, e.Signal)
	}
	return fmt.Sprintf("Recipe `%s` was terminated on line %d by signal %d", e.Recipe, e.Line, e.Signal)
}
func (*SignalError) Kind() ErrorKind { return KindSignal }

// UnknownFailureError is returned when a recipe line ends with neither a code nor a signal.
type UnknownFailureError struct {
	Recipe string
	Line   int
}

func (e *UnknownFailureError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("Recipe `%s` failed for an unknown reason", e.Recipe)
	}
	return fmt.Sprintf("Recipe `%s` failed on line %d for an unknown reason", e.Recipe, e.Line)
}
func (*UnknownFailureError) Kind() ErrorKind { return KindUnknownFailure }

// IOError is returned when the shell for a line-mode recipe cannot be launched.
type IOError struct {
	Recipe string
	Err    error
}

func (e *IOError) Error() string {
	switch ClassifyLaunch(e.Err) {
	case LaunchNotFound:
		return fmt.Sprintf("Recipe `%s` could not be run because jot could not find the shell: %v", e.Recipe, e.Err)
	case LaunchPermission:
		return fmt.Sprintf("Recipe `%s` could not be run because jot could not run the shell: %v", e.Recipe, e.Err)
	case LaunchOther:
	}
	return fmt.Sprintf("Recipe `%s` could not be run because of an IO error while launching the shell: %v",
		e.Recipe, e.Err)
}
func (*IOError) Kind() ErrorKind  { return KindIO }
func (e *IOError) Unwrap() error { return e.Err }

// ShebangError is returned when a script-mode interpreter cannot be launched.
type ShebangError struct {
	Recipe   string
	Command  string
	Argument string
	Err      error
}

func (e *ShebangError) Error() string {
	directive := e.Command
	if e.Argument != "" {
		directive += " " + e.Argument
	}
	return fmt.Sprintf("Recipe `%s` with shebang `#!%s` execution error: %v", e.Recipe, directive, e.Err)
}
func (*ShebangError) Kind() ErrorKind  { return KindShebang }
func (e *ShebangError) Unwrap() error { return e.Err }

// TmpdirIOError is returned when the scratch directory or script file cannot be prepared.
type TmpdirIOError struct {
	Recipe string
	Err    error
}

func (e *TmpdirIOError) Error() string {
	return fmt.Sprintf("Recipe `%s` could not be run because of an IO error while trying to create "+
		"a temporary directory or write a file to that directory: %v", e.Recipe, e.Err)
}
func (*TmpdirIOError) Kind() ErrorKind  { return KindTmpdirIO }
func (e *TmpdirIOError) Unwrap() error { return e.Err }

// CygpathError is returned when an interpreter path cannot be translated for the host.
type CygpathError struct {
	Recipe string
	Output *OutputError
}

func (e *CygpathError) Error() string {
	const suffix = "translating recipe `%s` shebang interpreter path"
	switch e.Output.Kind {
	case OutputCode:
		return fmt.Sprintf("Cygpath failed with exit code %d while "+suffix, e.Output.Code, e.Recipe)
	case OutputSignal:
		return fmt.Sprintf("Cygpath terminated by signal %d while "+suffix, e.Output.Signal, e.Recipe)
	case OutputUnknown:
		return fmt.Sprintf("Cygpath experienced an unknown failure while "+suffix, e.Recipe)
	case OutputUtf8:
		return fmt.Sprintf("Cygpath successfully translated recipe `%s` shebang interpreter path, "+
			"but output was not utf8: %v", e.Recipe, e.Output.Err)
	default:
		return fmt.Sprintf("Could not find `cygpath` executable to translate recipe `%s` shebang interpreter path:\n%v",
			e.Recipe, e.Output.Err)
	}
}
func (*CygpathError) Kind() ErrorKind  { return KindCygpath }
func (e *CygpathError) Unwrap() error { return e.Output }

// LoadError is returned when a recipe file cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Failed to read recipe file at `%s`: %v", e.Path, e.Err)
}
func (*LoadError) Kind() ErrorKind  { return KindLoad }
func (e *LoadError) Unwrap() error { return e.Err }

// CompileError is returned when recipe file text is malformed.
type CompileError struct {
	Message string
	Token   Token
}

func (e *CompileError) Error() string      { return e.Message }
func (*CompileError) Kind() ErrorKind      { return KindCompile }
func (e *CompileError) Location() Token   { return e.Token }

// CircularIncludeError is returned when includes form a cycle.
type CircularIncludeError struct {
	Current string
	Include string
}

func (e *CircularIncludeError) Error() string {
	return fmt.Sprintf("Include `%s` in `%s` is a circular include", e.Include, e.Current)
}
func (*CircularIncludeError) Kind() ErrorKind { return KindCircularInclude }

// IncludeMissingPathError is returned for an include entry without a path.
type IncludeMissingPathError struct {
	File string
	Line int
}

func (e *IncludeMissingPathError) Error() string {
	return fmt.Sprintf("Include directive on line %d of `%s` has no path", e.Line, e.File)
}
func (*IncludeMissingPathError) Kind() ErrorKind { return KindIncludeMissingPath }

// DotenvError is returned when an environment file cannot be loaded.
type DotenvError struct {
	Err error
}

func (e *DotenvError) Error() string  { return fmt.Sprintf("Failed to load environment file: %v", e.Err) }
func (*DotenvError) Kind() ErrorKind  { return KindDotenv }
func (e *DotenvError) Unwrap() error { return e.Err }

// NoChoosableRecipesError is returned when the chooser has nothing to offer.
type NoChoosableRecipesError struct{}

func (*NoChoosableRecipesError) Error() string   { return "Recipe file contains no choosable recipes." }
func (*NoChoosableRecipesError) Kind() ErrorKind { return KindNoChoosableRecipes }

// ChooserInvokeError is returned when the chooser cannot be started.
type ChooserInvokeError struct {
	Shell   []string
	Chooser string
	Err     error
}

func (e *ChooserInvokeError) Error() string {
	return fmt.Sprintf("Chooser `%s %s` invocation failed: %v", strings.Join(e.Shell, " "), e.Chooser, e.Err)
}
func (*ChooserInvokeError) Kind() ErrorKind  { return KindChooserInvoke }
func (e *ChooserInvokeError) Unwrap() error { return e.Err }

// ChooserReadError is returned when the chooser's output cannot be read.
type ChooserReadError struct {
	Chooser string
	Err     error
}

func (e *ChooserReadError) Error() string {
	return fmt.Sprintf("Failed to read output from chooser `%s`: %v", e.Chooser, e.Err)
}
func (*ChooserReadError) Kind() ErrorKind  { return KindChooserRead }
func (e *ChooserReadError) Unwrap() error { return e.Err }

// ChooserWriteError is returned when the recipe list cannot be written to the chooser.
type ChooserWriteError struct {
	Chooser string
	Err     error
}

func (e *ChooserWriteError) Error() string {
	return fmt.Sprintf("Failed to write to chooser `%s`: %v", e.Chooser, e.Err)
}
func (*ChooserWriteError) Kind() ErrorKind  { return KindChooserWrite }
func (e *ChooserWriteError) Unwrap() error { return e.Err }

// ChooserStatusError is returned when the chooser exits unsuccessfully.
type ChooserStatusError struct {
	Chooser string
	Status  int
}

func (e *ChooserStatusError) Error() string {
	return fmt.Sprintf("Chooser `%s` failed: exit status %d", e.Chooser, e.Status)
}
func (*ChooserStatusError) Kind() ErrorKind { return KindChooserStatus }

// EditorInvokeError is returned when the editor cannot be started.
type EditorInvokeError struct {
	Editor string
	Err    error
}

func (e *EditorInvokeError) Error() string {
	return fmt.Sprintf("Editor `%s` invocation failed: %v", e.Editor, e.Err)
}
func (*EditorInvokeError) Kind() ErrorKind  { return KindEditorInvoke }
func (e *EditorInvokeError) Unwrap() error { return e.Err }

// EditorStatusError is returned when the editor exits unsuccessfully.
type EditorStatusError struct {
	Editor string
	Status int
}

func (e *EditorStatusError) Error() string {
	return fmt.Sprintf("Editor `%s` failed: exit status %d", e.Editor, e.Status)
}
func (*EditorStatusError) Kind() ErrorKind { return KindEditorStatus }

// CommandInvokeError is returned when an external command cannot be started.
type CommandInvokeError struct {
	Binary    string
	Arguments []string
	Err       error
}

func (e *CommandInvokeError) Error() string {
	return fmt.Sprintf("Failed to invoke %s: %v", commandLine(e.Binary, e.Arguments), e.Err)
}
func (*CommandInvokeError) Kind() ErrorKind  { return KindCommandInvoke }
func (e *CommandInvokeError) Unwrap() error { return e.Err }

// CommandStatusError is returned when an external command exits unsuccessfully.
type CommandStatusError struct {
	Binary    string
	Arguments []string
	Status    int
}

func (e *CommandStatusError) Error() string {
	return fmt.Sprintf("Command %s failed: exit status %d", commandLine(e.Binary, e.Arguments), e.Status)
}
func (*CommandStatusError) Kind() ErrorKind { return KindCommandStatus }

// DumpJSONError is returned when the recipe table cannot be serialized.
type DumpJSONError struct {
	Err error
}

func (e *DumpJSONError) Error() string  { return fmt.Sprintf("Failed to dump JSON to stdout: %v", e.Err) }
func (*DumpJSONError) Kind() ErrorKind  { return KindDumpJSON }
func (e *DumpJSONError) Unwrap() error { return e.Err }

func commandLine(binary string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, fmt.Sprintf("%q", binary))
	for _, a := range args {
		quoted = append(quoted, fmt.Sprintf("%q", a))
	}
	return strings.Join(quoted, " ")
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func capitalizedPlural(word string, n int) string {
	w := plural(word, n)
	return strings.ToUpper(w[:1]) + w[1:]
}

// joinTicked renders `a`, `b` <conj> `c`.
func joinTicked(items []string, conj string) string {
	ticked := make([]string, len(items))
	for i, item := range items {
		ticked[i] = "`" + item + "`"
	}
	switch len(ticked) {
	case 0:
		return ""
	case 1:
		return ticked[0]
	case 2:
		return ticked[0] + " " + conj + " " + ticked[1]
	default:
		return strings.Join(ticked[:len(ticked)-1], ", ") + ", " + conj + " " + ticked[len(ticked)-1]
	}
}
