package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/langtab/compiler"
)

func newGenerateCmd() *cobra.Command {
	var (
		flags generateFlags
		watch bool
	)
	cmd := &cobra.Command{
		Use:     "generate [flags] FILE...",
		Aliases: []string{"gen"},
		Short:   "Generate Go code for the table files",
		Example: "  " + appName + " generate lang.langtab\n  " + appName + " gen --package greeting --feature text ./tables/*.langtab",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.newConfig(cmd)
			if err != nil {
				return err
			}
			if !watch {
				return compiler.GenerateContext(cmd.Context(), args, cfg)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := compiler.GenerateContext(ctx, args, cfg); err != nil {
				printDiagnostics(cmd.ErrOrStderr(), err)
			}
			// A changed file is checked against the others, so every file
			// is regenerated.
			return watchFiles(ctx, args, func(path string) {
				if err := compiler.GenerateContext(ctx, args, cfg); err != nil {
					printDiagnostics(cmd.ErrOrStderr(), err)
					return
				}
				printSuccess(cmd.ErrOrStderr(), "regenerated "+path)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate a file whenever it changes, until interrupted")
	return cmd
}
