package validation

import (
	"errors"
	"fmt"

	"github.com/masnyjimmy/envschema/environment"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

type Options struct {
	// Draft applies when the document has no $schema keyword.
	Draft string
	// Coerce converts string values to the type the schema declares for
	// them before validating.
	Coerce bool
	// AssertFormat makes the format keyword a constraint instead of an
	// annotation.
	AssertFormat bool
}

func DefaultOptions() Options {
	return Options{
		Draft: DefaultDraft,
	}
}

type SchemaValidator struct {
	schema   *jsonschema.Schema
	path     string
	coercion *coercion
}

func New(document *Document, opt Options) (*SchemaValidator, error) {
	draft, err := ParseDraft(opt.Draft)

	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(draft)

	if opt.AssertFormat {
		compiler.AssertFormat()
	}

	if err := compiler.AddResource(document.Path, document.Value); err != nil {
		return nil, &SchemaError{Path: document.Path, Err: err}
	}

	schema, err := compiler.Compile(document.Path)

	if err != nil {
		return nil, &SchemaError{Path: document.Path, Err: err}
	}

	out := &SchemaValidator{
		schema: schema,
		path:   document.Path,
	}

	if opt.Coerce {
		out.coercion = newCoercion(document.Value)
	}

	return out, nil
}

// Validate checks the snapshot against the compiled schema. It returns nil
// when every constraint holds and a *ValidationError otherwise.
func (self *SchemaValidator) Validate(snapshot environment.Snapshot) error {
	instance := snapshot.Instance()

	if self.coercion != nil {
		self.coercion.apply(instance)
	}

	return self.ValidateObject(instance)
}

func (self *SchemaValidator) ValidateObject(obj any) error {
	err := self.schema.Validate(obj)

	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError

	if errors.As(err, &verr) {
		return newValidationError(self.path, verr)
	}

	return fmt.Errorf("Unable to validate instance: %w", err)
}

// Validate compiles schema with DefaultOptions and checks instance against it.
func Validate(instance environment.Snapshot, schema *Document) error {
	validator, err := New(schema, DefaultOptions())

	if err != nil {
		return err
	}

	return validator.Validate(instance)
}
