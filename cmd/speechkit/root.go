package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/speechkit/version"
)

type rootFlags struct {
	configFile string
	envFile    string
	output     string
	debug      bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "speechkit",
		Short: "speechkit - batch transcription orchestrator",
		Long: `speechkit submits audio to the speech platform for batch transcription,
tracks jobs and merges their results into speaker-labelled transcripts.

Run "speechkit serve" for the HTTP API, or use the job commands to inspect
the platform directly.`,
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.output {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (use json or yaml)", flags.output)
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to the YAML config file")
	pf.StringVar(&flags.envFile, "env-file", "", "Path to a .env file")
	pf.StringVarP(&flags.output, "output", "o", outputJSON, "Output format: json or yaml")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCommand(flags))
	cmd.AddCommand(newJobsCommand(flags))
	cmd.AddCommand(newLocalesCommand(flags))
	cmd.AddCommand(newVersionCommand(flags))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
