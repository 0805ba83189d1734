package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/speechkit/locale"
)

func newLocalesCommand(flags *rootFlags) *cobra.Command {
	var (
		codesOnly bool
		offline   bool
	)
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the locales supported for transcription",
		Long: `List the locales supported for transcription.

The list is fetched from the platform's base models. The built-in list is
printed when the platform cannot be reached or --offline is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if offline {
				return writeLocales(cmd, flags.output, locale.Fallback(), codesOnly)
			}
			env, err := newCLIEnv(cmd, flags)
			if err != nil {
				return err
			}
			cat := locale.NewCatalogue(env.platform, env.log, locale.WithTTL(env.cfg.Speech.LocaleTTL))
			return writeLocales(cmd, flags.output, cat.List(cmd.Context()), codesOnly)
		},
	}
	cmd.Flags().BoolVar(&codesOnly, "codes", false, "Print only the locale codes")
	cmd.Flags().BoolVar(&offline, "offline", false, "Print the built-in list without calling the platform")
	return cmd
}

func writeLocales(cmd *cobra.Command, format string, locales []locale.Info, codesOnly bool) error {
	if !codesOnly {
		return writeOutput(cmd, format, locales)
	}
	codes := make([]string, len(locales))
	for i, l := range locales {
		codes[i] = l.Code
	}
	return writeOutput(cmd, format, codes)
}
