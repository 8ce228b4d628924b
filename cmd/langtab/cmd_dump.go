package main

import (
	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/syssam/langtab/compiler/load"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the parsed table description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := load.ParseFile(args[0])
			if err != nil {
				return err
			}
			repr.New(cmd.OutOrStdout(), repr.Indent("  "), repr.OmitEmpty(true)).Println(f)
			return nil
		},
	}
}
