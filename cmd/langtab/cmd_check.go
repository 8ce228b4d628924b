package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/syssam/langtab/compiler"
)

func newCheckCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "check [flags] FILE...",
		Short: "Parse and validate the table files without generating code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.newConfig(cmd)
			if err != nil {
				return err
			}
			units, err := compiler.Load(args, cfg)
			if err != nil {
				return err
			}
			var tables int
			for _, u := range units {
				tables += len(u.Tables)
			}
			printSuccess(cmd.OutOrStdout(), "ok: "+strconv.Itoa(tables)+" tables in "+strconv.Itoa(len(units))+" files")
			return nil
		},
	}
	flags.registerCommon(cmd)
	return cmd
}
