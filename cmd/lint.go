/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/masnyjimmy/envschema/validation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint FILE [FILE...]",
	Short: "Check that schema files parse and compile",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := cmd.Flags().Lookup("draft").Value.String()

		return LintFiles(draft, args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	draft := draftValue(validation.DefaultDraft)
	lintCmd.Flags().Var(&draft, "draft", fmt.Sprintf("Draft used when the schema has no $schema [%s]", strings.Join(validation.DraftNames, ", ")))
}

// LintFiles stops at the first schema that fails to load or compile.
func LintFiles(draft string, files []string) error {
	opt := validation.DefaultOptions()
	opt.Draft = draft

	for _, f := range files {
		document, err := validation.LoadSchema(f)

		if err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}

		if _, err := validation.New(document, opt); err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}

		logrus.Infof("%q: OK", f)
	}

	return nil
}
