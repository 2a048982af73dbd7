package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/masnyjimmy/envschema/environment"
	"github.com/masnyjimmy/envschema/report"
	"github.com/masnyjimmy/envschema/validation"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environment.schema.json")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func snapshotOf(m map[string]string) func() environment.Snapshot {
	return func() environment.Snapshot {
		return environment.FromMap(m)
	}
}

func options(schema string) ValidateOptions {
	return ValidateOptions{
		Schema:  schema,
		Output:  report.FormatText,
		Options: validation.DefaultOptions(),
	}
}

func TestValidateEnvironmentOK(t *testing.T) {
	schema := writeSchema(t, `{"required": ["PATH"], "properties": {"PATH": {"type": "string"}}}`)

	var out bytes.Buffer
	err := ValidateEnvironment(&out, options(schema), snapshotOf(map[string]string{"PATH": "/usr/bin"}))

	assert.NilError(t, err)
	assert.Equal(t, out.String(), schema+": OK\n")
	assert.Equal(t, ExitCode(err), ExitOK)
}

func TestValidateEnvironmentInvalid(t *testing.T) {
	schema := writeSchema(t, `{"required": ["FOO"], "properties": {"COUNT": {"type": "integer"}}}`)

	var out bytes.Buffer
	opt := options(schema)
	opt.Output = report.FormatJSON
	err := ValidateEnvironment(&out, opt, snapshotOf(map[string]string{"COUNT": "abc"}))

	assert.Equal(t, ExitCode(err), ExitEnvironmentInvalid)

	var r report.Report
	assert.NilError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, r.Status, report.StatusInvalid)
	assert.Equal(t, len(r.Violations), 2)
}

func TestValidateEnvironmentCoerce(t *testing.T) {
	schema := writeSchema(t, `{"properties": {"COUNT": {"type": "integer"}}}`)
	env := snapshotOf(map[string]string{"COUNT": "5"})

	err := ValidateEnvironment(&bytes.Buffer{}, options(schema), env)
	assert.Equal(t, ExitCode(err), ExitEnvironmentInvalid)

	opt := options(schema)
	opt.Coerce = true
	assert.NilError(t, ValidateEnvironment(&bytes.Buffer{}, opt, env))
}

func TestValidateEnvironmentStagesFailBeforeSnapshot(t *testing.T) {
	captured := false
	capture := func() environment.Snapshot {
		captured = true
		return environment.FromMap(nil)
	}

	tests := []struct {
		name     string
		schema   string
		expected int
	}{
		{"missing", filepath.Join(t.TempDir(), "environment.schema.json"), ExitSchemaUnreadable},
		{"malformed", writeSchema(t, `{"required": ["FOO"],}`), ExitSchemaMalformed},
		{"invalid", writeSchema(t, `{"required": "FOO"}`), ExitSchemaInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := ValidateEnvironment(&out, options(tt.schema), capture)

			assert.Assert(t, err != nil)
			assert.Equal(t, ExitCode(err), tt.expected)
			assert.Equal(t, out.Len(), 0)
		})
	}

	assert.Assert(t, !captured)
}

func TestValidateEnvironmentMissingSchema(t *testing.T) {
	err := ValidateEnvironment(&bytes.Buffer{}, options(filepath.Join(t.TempDir(), "nope.json")), environment.Capture)

	assert.Assert(t, errors.Is(err, validation.ErrSchemaNotFound))
}

func TestExitCodeWrapped(t *testing.T) {
	err := fmt.Errorf("%q: %w", "x.json", &validation.ParseError{Path: "x.json", Err: errors.New("bad")})
	assert.Equal(t, ExitCode(err), ExitSchemaMalformed)
	assert.Equal(t, ExitCode(errors.New("unknown flag")), 1)
}

func TestLintFiles(t *testing.T) {
	good := writeSchema(t, `{"type": "object"}`)
	bad := writeSchema(t, `{"type": "bogus"}`)

	assert.NilError(t, LintFiles("", []string{good}))

	err := LintFiles("7", []string{good, bad})
	assert.Equal(t, ExitCode(err), ExitSchemaInvalid)
	assert.Check(t, is.Contains(err.Error(), bad))
}

func TestWriteSnapshot(t *testing.T) {
	snapshot := environment.FromMap(map[string]string{"B": "2", "A": "1"})

	var out bytes.Buffer
	assert.NilError(t, WriteSnapshot(&out, snapshot, false))
	assert.Equal(t, out.String(), "A\nB\n")

	out.Reset()
	assert.NilError(t, WriteSnapshot(&out, snapshot, true))
	assert.Equal(t, out.String(), "A=1\nB=2\n")
}

func TestDraftValue(t *testing.T) {
	d := draftValue(validation.DefaultDraft)

	assert.NilError(t, d.Set("draft-07"))
	assert.Equal(t, d.String(), "draft-07")
	assert.ErrorContains(t, d.Set("3"), "Unknown draft")
}

func TestValidateOptionsFromFlags(t *testing.T) {
	validateCmd.Flags().Set("schema", "env.yaml")
	validateCmd.Flags().Set("coerce", "true")
	validateCmd.Flags().Set("output", "yaml")
	validateCmd.Flags().Set("draft", "7")
	t.Cleanup(func() {
		validateCmd.Flags().Set("schema", validation.DefaultSchemaPath)
		validateCmd.Flags().Set("coerce", "false")
		validateCmd.Flags().Set("output", "text")
		validateCmd.Flags().Set("draft", validation.DefaultDraft)
	})

	opt, err := validateOptionsFromFlags(validateCmd.Flags())
	assert.NilError(t, err)
	assert.Equal(t, opt.Schema, "env.yaml")
	assert.Assert(t, opt.Coerce)
	assert.Assert(t, !opt.AssertFormat)
	assert.Equal(t, opt.Output, report.FormatYAML)
	assert.Equal(t, opt.Draft, "7")
}

func TestProcessGlobalFlags(t *testing.T) {
	rootCmd.PersistentFlags().Set("log-format", "xml")
	t.Cleanup(func() { rootCmd.PersistentFlags().Set("log-format", "text") })

	assert.ErrorContains(t, processGlobalFlags(rootCmd), "unsupported log-format")
}

func TestDefaultSchemaLints(t *testing.T) {
	// tests run in cmd/, so the default path points at the repository root
	assert.NilError(t, LintFiles("", []string{validation.DefaultSchemaPath}))
}
