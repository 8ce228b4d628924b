// langtab generates Go selector-dispatch tables from .langtab files.
//
//	//go:generate go run github.com/syssam/langtab/cmd/langtab generate lang.langtab
package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const appName = "langtab"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if isUsageError(err) {
			cmd.PrintErrln("Error:", err.Error())
			cmd.PrintErrln("Run '" + appName + " --help' for usage.")
		} else {
			printDiagnostics(cmd.ErrOrStderr(), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate Go selector-dispatch tables from " + appName + " files",
		PersistentPreRun: func(*cobra.Command, []string) {
			if noColor {
				disableColor()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored diagnostics")
	cmd.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newDumpCmd(),
	)
	return cmd
}

// isUsageError reports whether the error comes from cobra rejecting the
// command line rather than from running a command.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "flag needs an argument", "accepts ", "requires at least"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
