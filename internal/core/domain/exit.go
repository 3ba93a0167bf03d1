package domain

import "errors"

// ExitCode returns the process exit status for err.
// Failures that carry a child's status pass it through; every other failure is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var code *CodeError
	if errors.As(err, &code) {
		return code.Code
	}
	var backtick *BacktickError
	if errors.As(err, &backtick) && backtick.Output.Kind == OutputCode {
		return backtick.Output.Code
	}
	var chooser *ChooserStatusError
	if errors.As(err, &chooser) {
		return chooser.Status
	}
	var editor *EditorStatusError
	if errors.As(err, &editor) {
		return editor.Status
	}
	var command *CommandStatusError
	if errors.As(err, &command) {
		return command.Status
	}
	return 1
}

// ShouldReport reports whether err should be printed before exiting.
func ShouldReport(err error) bool {
	var code *CodeError
	if errors.As(err, &code) {
		return code.PrintMessage
	}
	return err != nil
}
