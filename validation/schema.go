package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultSchemaPath is where the schema lives relative to the working
// directory when no path is given.
const DefaultSchemaPath = "../environment.schema.json"

var ErrSchemaNotFound = errors.New("schema file not found")

// Document is a parsed schema file. Its value has not been checked against
// any metaschema yet.
type Document struct {
	Path  string
	Value any
}

type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to parse schema %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func LoadSchema(path string) (*Document, error) {
	abs, err := filepath.Abs(path)

	if err != nil {
		return nil, fmt.Errorf("Unable to resolve schema path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSchemaNotFound, err)
		}
		return nil, fmt.Errorf("Unable to read schema: %w", err)
	}

	value, err := parseSchema(abs, data)

	if err != nil {
		return nil, &ParseError{Path: abs, Err: err}
	}

	return &Document{Path: abs, Value: value}, nil
}

// ParseSchema parses schema text that did not come from a file. name is used
// as the document location and picks the format by extension.
func ParseSchema(name string, data []byte) (*Document, error) {
	value, err := parseSchema(name, data)

	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	return &Document{Path: name, Value: value}, nil
}

func parseSchema(name string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)

		if err != nil {
			return nil, err
		}
		data = converted
	}

	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
