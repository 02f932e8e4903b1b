package constants

import "errors"

// Command line errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json, yaml or auto")
	ErrInvalidLimit        = errors.New("--limit must be between 1 and 500")
	ErrInvalidOffset       = errors.New("--offset must not be negative")
	ErrQueryRequired       = errors.New("a GraphQL document is required, pass it as an argument, with --file or on stdin")
	ErrQueryFileAndArg     = errors.New("pass the GraphQL document either as an argument or with --file, not both")
)

// Scenario errors.
var (
	ErrCreateIncomplete  = errors.New("create scenario did not return the created resource")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
