// Package dotenv loads environment files into exported scope layers.
package dotenv

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/subosito/gotenv"
	"go.trai.ch/jot/internal/core/domain"
)

// Loader implements ports.DotenvLoader using gotenv.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file at path. A missing file yields an empty layer unless required is set.
func (l *Loader) Load(path string, required bool) (*domain.Layer, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from settings
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return domain.NewLayer(domain.DotenvLayerName), nil
		}
		return nil, &domain.DotenvError{Err: err}
	}
	defer func() { _ = f.Close() }()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, &domain.DotenvError{Err: err}
	}

	bindings := make([]domain.Binding, 0, len(env))
	for _, name := range slices.Sorted(maps.Keys(env)) {
		bindings = append(bindings, domain.Binding{Name: name, Value: env[name], Export: true})
	}
	return domain.NewLayer(domain.DotenvLayerName, bindings...), nil
}
