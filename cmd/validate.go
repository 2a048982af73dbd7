/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/masnyjimmy/envschema/environment"
	"github.com/masnyjimmy/envschema/report"
	"github.com/masnyjimmy/envschema/validation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current environment against a schema",
	Long: `Validate reads the schema file, takes a snapshot of the environment and
checks it against the schema.

Exit codes:
  1  schema file missing or unreadable
  2  schema file is not well-formed JSON (or YAML)
  3  schema does not compile
  4  environment does not conform to the schema`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addValidateFlags(validateCmd.Flags())
}

// draftValue rejects unknown drafts while parsing flags
type draftValue string

func (d *draftValue) String() string {
	return string(*d)
}

func (d *draftValue) Set(value string) error {
	if _, err := validation.ParseDraft(value); err != nil {
		return err
	}
	*d = draftValue(value)
	return nil
}

func (d *draftValue) Type() string {
	return "draft"
}

func addValidateFlags(flags *pflag.FlagSet) {
	draft := draftValue(validation.DefaultDraft)
	output := report.FormatText

	flags.StringP("schema", "s", validation.DefaultSchemaPath, "Schema file (JSON, or YAML by extension)")
	flags.Var(&draft, "draft", fmt.Sprintf("Draft used when the schema has no $schema [%s]", strings.Join(validation.DraftNames, ", ")))
	flags.Bool("coerce", false, "Convert string values to the type the schema declares for them")
	flags.Bool("assert-format", false, "Treat the format keyword as a constraint")
	flags.VarP(&output, "output", "o", "Report format [text, json, yaml]")

	_ = flags.SetAnnotation("schema", cobra.BashCompFilenameExt, []string{"json", "yaml", "yml"})
}

type ValidateOptions struct {
	Schema string
	Output report.Format
	validation.Options
}

func validateOptionsFromFlags(flags *pflag.FlagSet) (ValidateOptions, error) {
	var (
		opt ValidateOptions
		err error
	)

	if opt.Schema, err = flags.GetString("schema"); err != nil {
		return opt, err
	}
	if opt.Coerce, err = flags.GetBool("coerce"); err != nil {
		return opt, err
	}
	if opt.AssertFormat, err = flags.GetBool("assert-format"); err != nil {
		return opt, err
	}

	opt.Draft = flags.Lookup("draft").Value.String()
	opt.Output = report.Format(flags.Lookup("output").Value.String())

	return opt, nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	opt, err := validateOptionsFromFlags(cmd.Flags())

	if err != nil {
		return err
	}

	return ValidateEnvironment(cmd.OutOrStdout(), opt, environment.Capture)
}

/*
Stages
1. read schema
2. parse
3. compile
4. snapshot environment
5. validate and report
*/
func ValidateEnvironment(out io.Writer, opt ValidateOptions, capture func() environment.Snapshot) error {
	logrus.Debugf("Reading %v", opt.Schema)

	document, err := validation.LoadSchema(opt.Schema)

	if err != nil {
		return err
	}

	logrus.Debugf("Compiling schema %v", document.Path)

	validator, err := validation.New(document, opt.Options)

	if err != nil {
		return err
	}

	env := capture()

	logrus.WithFields(logrus.Fields{
		"variables": env.Len(),
		"coerce":    opt.Coerce,
	}).Debug("Validating environment")

	result := validator.Validate(env)

	r, err := report.New(document.Path, result)

	if err != nil {
		return err
	}

	if err := r.Write(out, opt.Output); err != nil {
		return fmt.Errorf("Unable to write report: %w", err)
	}

	return result
}
