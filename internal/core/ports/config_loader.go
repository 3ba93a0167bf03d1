package ports

import "go.trai.ch/jot/internal/core/domain"

// ConfigLoader defines the interface for loading recipe files.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Discover returns the path of the nearest recipe file at or above cwd.
	Discover(cwd string) (string, error)
	// Load reads the recipe file at path, following its includes.
	Load(path string) (*domain.RecipeTable, error)
}
