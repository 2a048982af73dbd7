// Package report renders the outcome of an environment validation.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/envschema/validation"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatText, FormatJSON, FormatYAML}

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(value string) error {
	switch Format(strings.ToLower(value)) {
	case FormatText:
		*f = FormatText
	case FormatJSON:
		*f = FormatJSON
	case FormatYAML, "yml":
		*f = FormatYAML
	default:
		return fmt.Errorf("unsupported output format %q, expected one of text, json, yaml", value)
	}
	return nil
}

func (f *Format) Type() string {
	return "format"
}

const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
)

type Report struct {
	Schema     string                 `json:"schema" yaml:"schema"`
	Status     string                 `json:"status" yaml:"status"`
	Violations []validation.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// New builds a report from the result of a validation. Only nil and
// *validation.ValidationError describe an outcome; other errors are returned.
func New(schema string, err error) (Report, error) {
	out := Report{
		Schema: schema,
		Status: StatusOK,
	}

	if err == nil {
		return out, nil
	}

	var verr *validation.ValidationError

	if !errors.As(err, &verr) {
		return out, err
	}

	out.Status = StatusInvalid
	out.Violations = verr.Violations

	return out, nil
}

func (r Report) Valid() bool {
	return r.Status == StatusOK
}

func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case FormatYAML:
		bytes, err := yaml.Marshal(r)

		if err != nil {
			return err
		}

		_, err = w.Write(bytes)
		return err
	default:
		return r.writeText(w)
	}
}

func (r Report) writeText(w io.Writer) error {
	if r.Valid() {
		_, err := fmt.Fprintf(w, "%s: OK\n", r.Schema)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s: %d violation(s)\n", r.Schema, len(r.Violations)); err != nil {
		return err
	}

	for _, v := range r.Violations {
		if _, err := fmt.Fprintf(w, "  - %s\n", v); err != nil {
			return err
		}
	}

	return nil
}
