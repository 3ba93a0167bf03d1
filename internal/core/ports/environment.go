package ports

import "go.trai.ch/jot/internal/core/domain"

// DotenvLoader reads environment files.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type DotenvLoader interface {
	// Load parses the file at path into an exported scope layer.
	// A missing file is not an error unless required is set.
	Load(path string, required bool) (*domain.Layer, error)
}
