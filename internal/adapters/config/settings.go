package config

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/jot/internal/adapters/render"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Flag names shared by the command line and the JOT_ environment variables.
const (
	FlagFile       = "file"
	FlagSet        = "set"
	FlagShell      = "shell"
	FlagShellArg   = "shell-arg"
	FlagTempDir    = "tempdir"
	FlagDotenvPath = "dotenv-path"
	FlagUnstable   = "unstable"
	FlagDryRun     = "dry-run"
	FlagQuiet      = "quiet"
	FlagColor      = "color"
	FlagTrace      = "trace"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const envPrefix = "jot"

// RegisterFlags defines the run settings on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagFile, "f", "", "Use `FILE` as the recipe file")
	fs.StringArray(FlagSet, nil, "Override a variable with `NAME=VALUE`")
	fs.String(FlagShell, "", "Invoke `SHELL` to run recipe lines")
	fs.StringArray(FlagShellArg, nil, "Pass `ARG` to the shell; repeatable")
	fs.String(FlagTempDir, "", "Write script-mode recipes to `DIR`")
	fs.String(FlagDotenvPath, "", "Load environment variables from `PATH`")
	fs.Bool(FlagUnstable, false, "Enable unstable features")
	fs.BoolP(FlagDryRun, "n", false, "Print what would run without running it")
	fs.BoolP(FlagQuiet, "q", false, "Suppress command echoing")
	fs.String(FlagColor, ColorAuto, "Print colorful output: auto, always or never")
	fs.Bool(FlagTrace, false, "Report recipe lifecycle events on stderr")
}

// ResolveSettings reads the run settings from fs, falling back to JOT_ environment variables.
func ResolveSettings(fs *pflag.FlagSet) (domain.Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to bind flags")
	}

	settings := domain.Settings{
		File:       v.GetString(FlagFile),
		TempDir:    v.GetString(FlagTempDir),
		DotenvPath: v.GetString(FlagDotenvPath),
		Unstable:   v.GetBool(FlagUnstable),
		DryRun:     v.GetBool(FlagDryRun),
		Quiet:      v.GetBool(FlagQuiet),
		Trace:      v.GetBool(FlagTrace),
		ShellArgs:  v.GetStringSlice(FlagShellArg),
	}

	if shell := v.GetString(FlagShell); shell != "" {
		settings.Shell = []string{shell}
		if len(settings.ShellArgs) == 0 {
			settings.ShellArgs = slices.Clone(domain.DefaultShell[1:])
		}
	}

	overrides, err := parseOverrides(v.GetStringSlice(FlagSet))
	if err != nil {
		return domain.Settings{}, err
	}
	settings.Overrides = overrides

	color, err := resolveColor(v.GetString(FlagColor))
	if err != nil {
		return domain.Settings{}, err
	}
	settings.Color = color

	return settings, nil
}

func parseOverrides(assignments []string) (map[string]string, error) {
	overrides := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok || name == "" {
			return nil, zerr.With(domain.ErrInvalidSetting, FlagSet, assignment)
		}
		overrides[name] = value
	}
	return overrides, nil
}

func resolveColor(mode string) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		return render.DetectColor(os.Stderr), nil
	default:
		return false, zerr.With(domain.ErrInvalidSetting, FlagColor, mode)
	}
}
