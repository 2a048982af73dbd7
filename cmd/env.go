/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/masnyjimmy/envschema/environment"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the environment snapshot that would be validated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		values, _ := cmd.Flags().GetBool("values")

		return WriteSnapshot(cmd.OutOrStdout(), environment.Capture(), values)
	},
}

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().Bool("values", false, "Print NAME=VALUE instead of names only")
}

func WriteSnapshot(w io.Writer, snapshot environment.Snapshot, values bool) error {
	for _, name := range snapshot.Names() {
		var err error

		if values {
			value, _ := snapshot.Lookup(name)
			_, err = fmt.Fprintf(w, "%s=%s\n", name, value)
		} else {
			_, err = fmt.Fprintln(w, name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
