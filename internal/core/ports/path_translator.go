package ports

import "context"

// PathTranslator converts interpreter paths written for a POSIX layout into host paths.
//
//go:generate mockgen -source=path_translator.go -destination=mocks/mock_path_translator.go -package=mocks
type PathTranslator interface {
	// Translate returns the host form of path. Failures are *domain.OutputError.
	Translate(ctx context.Context, path string) (string, error)
}
