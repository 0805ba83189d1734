package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/speechkit/version"
)

func newVersionCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd, flags.output, version.Get())
		},
	}
}
