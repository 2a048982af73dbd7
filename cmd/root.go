/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/masnyjimmy/envschema/validation"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd validates the environment when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "envschema",
	Short: "Validate the process environment against a JSON Schema",
	Long: `envschema reads a JSON Schema document, takes a snapshot of the current
environment variables and checks the snapshot against the schema.

Without a subcommand it behaves like "envschema validate".`,
	Example: `  Validate against ../environment.schema.json:
  $ envschema

  Use another schema and accept numeric strings for integer properties:
  $ envschema validate -s env.schema.yaml --coerce`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return processGlobalFlags(cmd.Root())
	},
	RunE: runValidate,
}

func Execute() {
	err := rootCmd.Execute()

	if err == nil {
		return
	}

	var verr *validation.ValidationError

	if errors.As(err, &verr) {
		logrus.Errorf("Environment does not conform to %s: %d violation(s)", verr.Schema, len(verr.Violations))
	} else {
		logrus.Error(err)
	}

	os.Exit(ExitCode(err))
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Set the logging level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().String("log-format", "text", "Set the logging format [text, json]")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug mode")

	addValidateFlags(rootCmd.Flags())
}

func processGlobalFlags(rootCmd *cobra.Command) error {
	if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// an explicit level wins over --debug
	l, _ := rootCmd.PersistentFlags().GetString("log-level")
	if l != "" {
		lvl, err := logrus.ParseLevel(l)
		if err != nil {
			return err
		}
		logrus.SetLevel(lvl)
	}

	logFormat, _ := rootCmd.PersistentFlags().GetString("log-format")
	switch logFormat {
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	case "text":
		if runtime.GOOS == "windows" && isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			formatter := new(logrus.TextFormatter)
			// the default setting does not recognize cygwin on windows
			formatter.ForceColors = true
			logrus.SetFormatter(formatter)
		}
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}
