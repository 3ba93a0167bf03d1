package ports

// ErrorFormatter renders an error for a terminal.
//
//go:generate mockgen -source=formatter.go -destination=mocks/mock_formatter.go -package=mocks
type ErrorFormatter interface {
	Format(err error) string
}
