package validation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// SchemaError reports a schema document that could not be compiled, most
// often because it does not conform to its draft's metaschema.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Invalid schema %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Violation is a single unmet constraint.
type Violation struct {
	InstanceLocation string `json:"instanceLocation" yaml:"instanceLocation"`
	KeywordLocation  string `json:"keywordLocation" yaml:"keywordLocation"`
	Message          string `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	location := v.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("at '%s': %s", location, v.Message)
}

// ValidationError is returned when the environment does not satisfy the
// schema. It lists every violated leaf constraint.
type ValidationError struct {
	Schema     string
	Violations []Violation

	cause *jsonschema.ValidationError
}

func newValidationError(schema string, cause *jsonschema.ValidationError) *ValidationError {
	violations := collectViolations(cause)

	slices.SortStableFunc(violations, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.InstanceLocation, b.InstanceLocation),
			cmp.Compare(a.KeywordLocation, b.KeywordLocation),
		)
	})

	return &ValidationError{
		Schema:     schema,
		Violations: violations,
		cause:      cause,
	}
}

func (e *ValidationError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Environment does not conform to %s", e.Schema)

	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.String())
	}

	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func collectViolations(err *jsonschema.ValidationError) []Violation {
	if len(err.Causes) == 0 {
		return []Violation{{
			InstanceLocation: instancePointer(err.InstanceLocation),
			KeywordLocation:  keywordLocation(err),
			Message:          err.ErrorKind.LocalizedString(printer),
		}}
	}

	var out []Violation

	for _, cause := range err.Causes {
		out = append(out, collectViolations(cause)...)
	}

	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func instancePointer(tokens []string) string {
	var sb strings.Builder

	for _, token := range tokens {
		sb.WriteByte('/')
		sb.WriteString(pointerEscaper.Replace(token))
	}

	return sb.String()
}

// keywordLocation joins the schema fragment and the keyword path, e.g.
// "/properties/COUNT/type".
func keywordLocation(err *jsonschema.ValidationError) string {
	_, fragment, _ := strings.Cut(err.SchemaURL, "#")

	path := err.ErrorKind.KeywordPath()

	if len(path) == 0 {
		return fragment
	}

	return fragment + "/" + strings.Join(path, "/")
}
