package cmd

import (
	"errors"

	"github.com/masnyjimmy/envschema/validation"
)

const (
	ExitOK                 = 0
	ExitSchemaUnreadable   = 1
	ExitSchemaMalformed    = 2
	ExitSchemaInvalid      = 3
	ExitEnvironmentInvalid = 4
)

// ExitCode maps an error to the exit code of the stage that produced it.
// Unclassified errors, including flag errors, exit with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, new(*validation.ValidationError)):
		return ExitEnvironmentInvalid
	case errors.As(err, new(*validation.SchemaError)):
		return ExitSchemaInvalid
	case errors.As(err, new(*validation.ParseError)):
		return ExitSchemaMalformed
	default:
		return ExitSchemaUnreadable
	}
}
