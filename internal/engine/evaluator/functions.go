package evaluator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/jot/internal/core/domain"
	"mvdan.cc/sh/v3/syntax"
)

// function is a built-in callable from expressions.
type function struct {
	min, max int // max -1 means variadic
	unstable bool
	call     func(fc *funcContext, args []string) (string, error)
}

type funcContext struct {
	ctx   context.Context
	cfg   Config
	scope *domain.Scope
}

var functions map[string]function

func init() {
	nullary := func(fn func(fc *funcContext) (string, error)) function {
		return function{call: func(fc *funcContext, _ []string) (string, error) { return fn(fc) }}
	}
	unary := func(fn func(fc *funcContext, s string) (string, error)) function {
		return function{min: 1, max: 1, call: func(fc *funcContext, a []string) (string, error) { return fn(fc, a[0]) }}
	}
	pure := func(fn func(s string) string) function {
		return unary(func(_ *funcContext, s string) (string, error) { return fn(s), nil })
	}
	binary := func(fn func(a, b string) string) function {
		return function{min: 2, max: 2, call: func(_ *funcContext, a []string) (string, error) { return fn(a[0], a[1]), nil }}
	}

	functions = map[string]function{
		"arch":      nullary(func(*funcContext) (string, error) { return arch(), nil }),
		"os":        nullary(func(*funcContext) (string, error) { return operatingSystem(), nil }),
		"os_family": nullary(func(*funcContext) (string, error) { return osFamily(), nil }),
		"num_cpus": nullary(func(*funcContext) (string, error) {
			return strconv.Itoa(runtime.NumCPU()), nil
		}),

		"env_var": unary(func(fc *funcContext, key string) (string, error) {
			value, ok := fc.lookupEnv(key)
			if !ok {
				return "", fmt.Errorf("environment variable `%s` not present", key)
			}
			return value, nil
		}),
		"env_var_or_default": {min: 2, max: 2, call: envOrDefault},
		"env": {min: 1, max: 2, call: func(fc *funcContext, a []string) (string, error) {
			if len(a) == 2 {
				return envOrDefault(fc, a)
			}
			return functions["env_var"].call(fc, a)
		}},

		"invocation_directory": nullary(func(fc *funcContext) (string, error) { return fc.cfg.InvocationDir, nil }),
		"recipe_file":          nullary(func(fc *funcContext) (string, error) { return fc.cfg.RecipeFile, nil }),
		"recipe_directory": nullary(func(fc *funcContext) (string, error) {
			return filepath.Dir(fc.cfg.RecipeFile), nil
		}),
		"jot_executable": nullary(func(fc *funcContext) (string, error) {
			if fc.cfg.Executable != "" {
				return fc.cfg.Executable, nil
			}
			return os.Executable()
		}),

		"uppercase":  pure(strings.ToUpper),
		"lowercase":  pure(strings.ToLower),
		"capitalize": pure(capitalize),
		"trim":       pure(strings.TrimSpace),
		"trim_start": pure(func(s string) string { return strings.TrimLeft(s, " \t\r\n") }),
		"trim_end":   pure(func(s string) string { return strings.TrimRight(s, " \t\r\n") }),

		"trim_start_match": binary(strings.TrimPrefix),
		"trim_end_match":   binary(strings.TrimSuffix),
		"replace": {min: 3, max: 3, call: func(_ *funcContext, a []string) (string, error) {
			return strings.ReplaceAll(a[0], a[1], a[2]), nil
		}},
		"replace_regex": {min: 3, max: 3, call: func(_ *funcContext, a []string) (string, error) {
			re, err := regexp.Compile(a[1])
			if err != nil {
				return "", err
			}
			return re.ReplaceAllString(a[0], a[2]), nil
		}},
		"quote": unary(func(_ *funcContext, s string) (string, error) {
			return syntax.Quote(s, syntax.LangPOSIX)
		}),

		"join": {min: 2, max: -1, call: func(_ *funcContext, a []string) (string, error) {
			return filepath.Join(a...), nil
		}},
		"clean": pure(filepath.Clean),
		"absolute_path": unary(func(fc *funcContext, p string) (string, error) {
			return fc.resolve(p), nil
		}),
		"canonicalize": unary(func(fc *funcContext, p string) (string, error) {
			return filepath.EvalSymlinks(fc.resolve(p))
		}),
		"extension": unary(func(_ *funcContext, p string) (string, error) {
			ext := filepath.Ext(p)
			if ext == "" {
				return "", fmt.Errorf("could not extract extension from `%s`", p)
			}
			return ext[1:], nil
		}),
		"file_name": unary(func(_ *funcContext, p string) (string, error) {
			name := filepath.Base(p)
			if p == "" || name == string(filepath.Separator) {
				return "", fmt.Errorf("could not extract file name from `%s`", p)
			}
			return name, nil
		}),
		"file_stem": unary(func(_ *funcContext, p string) (string, error) {
			name := filepath.Base(p)
			if p == "" || name == string(filepath.Separator) {
				return "", fmt.Errorf("could not extract file stem from `%s`", p)
			}
			return strings.TrimSuffix(name, filepath.Ext(name)), nil
		}),
		"parent_directory": unary(func(_ *funcContext, p string) (string, error) {
			clean := filepath.Clean(p)
			if p == "" || clean == string(filepath.Separator) {
				return "", fmt.Errorf("could not extract parent directory from `%s`", p)
			}
			return filepath.Dir(clean), nil
		}),
		"without_extension": unary(func(_ *funcContext, p string) (string, error) {
			ext := filepath.Ext(p)
			if ext == "" {
				return "", fmt.Errorf("could not extract extension from `%s`", p)
			}
			return strings.TrimSuffix(p, ext), nil
		}),
		"path_exists": unary(func(fc *funcContext, p string) (string, error) {
			_, err := os.Stat(fc.resolve(p))
			return strconv.FormatBool(err == nil), nil
		}),

		"sha256": pure(func(s string) string {
			sum := sha256.Sum256([]byte(s))
			return hex.EncodeToString(sum[:])
		}),
		"sha256_file": unary(func(fc *funcContext, p string) (string, error) {
			data, err := os.ReadFile(fc.resolve(p))
			if err != nil {
				return "", err
			}
			sum := sha256.Sum256(data)
			return hex.EncodeToString(sum[:]), nil
		}),
		"xxhash": pure(func(s string) string {
			return fmt.Sprintf("%016x", xxhash.Sum64String(s))
		}),
		"xxhash_file": unary(func(fc *funcContext, p string) (string, error) {
			data, err := os.ReadFile(fc.resolve(p))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
		}),
		"uuid": nullary(func(*funcContext) (string, error) { return uuid.NewString(), nil }),

		"error": unary(func(_ *funcContext, msg string) (string, error) {
			return "", fmt.Errorf("%s", msg)
		}),

		"which": {min: 1, max: 1, unstable: true, call: func(_ *funcContext, a []string) (string, error) {
			path, err := exec.LookPath(a[0])
			if err != nil {
				return "", nil //nolint:nilerr // an absent program evaluates to the empty string
			}
			return path, nil
		}},
		"read": {min: 1, max: 1, unstable: true, call: func(fc *funcContext, a []string) (string, error) {
			data, err := os.ReadFile(fc.resolve(a[0]))
			if err != nil {
				return "", err
			}
			return string(data), nil
		}},
	}
}

func (e *Evaluator) call(ctx context.Context, c domain.Call, scope *domain.Scope) (string, error) {
	fn, ok := functions[c.Name]
	if !ok {
		return "", &domain.FunctionCallError{Function: c.Name, Message: "unknown function", Token: c.Token}
	}
	if fn.unstable && !e.cfg.Unstable {
		return "", &domain.UnstableError{Message: fmt.Sprintf("The `%s()` function is currently unstable.", c.Name)}
	}
	if n := len(c.Arguments); n < fn.min || (fn.max >= 0 && n > fn.max) {
		return "", &domain.FunctionCallError{
			Function: c.Name,
			Message:  arityMessage(fn, n),
			Token:    c.Token,
		}
	}

	args := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		value, err := e.Evaluate(ctx, arg, scope)
		if err != nil {
			return "", err
		}
		args[i] = value
	}

	value, err := fn.call(&funcContext{ctx: ctx, cfg: e.cfg, scope: scope}, args)
	if err != nil {
		return "", &domain.FunctionCallError{Function: c.Name, Message: err.Error(), Token: c.Token}
	}
	return value, nil
}

func arityMessage(fn function, found int) string {
	switch {
	case fn.min == fn.max:
		return fmt.Sprintf("expected %d %s but got %d", fn.min, pluralArgs(fn.min), found)
	case fn.max < 0:
		return fmt.Sprintf("expected at least %d %s but got %d", fn.min, pluralArgs(fn.min), found)
	default:
		return fmt.Sprintf("expected %d to %d arguments but got %d", fn.min, fn.max, found)
	}
}

func pluralArgs(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// lookupEnv resolves key against the scope's environment and dotenv layers in scope order.
// Without an environment layer the process environment is consulted last.
func (fc *funcContext) lookupEnv(key string) (string, bool) {
	sourced := false
	for _, l := range fc.scope.Layers() {
		switch l.Name() {
		case domain.EnvironmentLayerName:
			sourced = true
		case domain.DotenvLayerName:
		default:
			continue
		}
		if b, ok := l.Lookup(key); ok {
			return b.Value, true
		}
	}
	if sourced {
		return "", false
	}
	return os.LookupEnv(key)
}

func (fc *funcContext) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(fc.cfg.WorkDir, p)
}

func envOrDefault(fc *funcContext, a []string) (string, error) {
	if value, ok := fc.lookupEnv(a[0]); ok {
		return value, nil
	}
	return a[1], nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r := []rune(lower)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func arch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}

func operatingSystem() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}

func osFamily() string {
	if runtime.GOOS == "windows" {
		return "windows"
	}
	return "unix"
}
