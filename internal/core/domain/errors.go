package domain

import "go.trai.ch/zerr"

var (
	// ErrRecipeAlreadyExists is returned when two recipes share a name.
	ErrRecipeAlreadyExists = zerr.New("recipe already exists")

	// ErrAssignmentAlreadyExists is returned when a variable is assigned twice.
	ErrAssignmentAlreadyExists = zerr.New("variable already assigned")

	// ErrMissingDependency is returned when a recipe depends on a recipe absent from the table.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrDuplicateParameter is returned when a recipe declares the same parameter twice.
	ErrDuplicateParameter = zerr.New("duplicate parameter")

	// ErrVariadicNotLast is returned when a variadic parameter is followed by another parameter.
	ErrVariadicNotLast = zerr.New("variadic parameter must be last")

	// ErrRequiredAfterDefault is returned when a parameter without a default follows one with a default.
	ErrRequiredAfterDefault = zerr.New("non-default parameter follows default parameter")

	// ErrUnknownDefaultRecipe is returned when the configured default recipe does not exist.
	ErrUnknownDefaultRecipe = zerr.New("default recipe not found")

	// ErrInvalidSetting is returned when a setting has an unusable value.
	ErrInvalidSetting = zerr.New("invalid setting")

	// ErrRecipeFileNotFound is returned when no recipe file exists at or above a directory.
	ErrRecipeFileNotFound = zerr.New("no recipe file found")

	// ErrNoCommand is returned when exec is called without a command.
	ErrNoCommand = zerr.New("no command given")
)
