package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print the display protocol a session would use",
		Long: `Sends the kitty graphics query to the terminal, checks TERM_PROGRAM for
iTerm2 and prints the protocol a session would draw with: kitty, iterm2 or
file. A protocol forced with --protocol is printed as is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), application.Probe(commandContext(cmd)))
			return nil
		},
	}
}
