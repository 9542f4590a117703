package cmd

import (
	"github.com/spf13/cobra"

	"uboterm/internal/storepb"
)

func newChimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "chime <NAME>",
		Short:     "Play a chime on the device",
		Long:      `Plays one of the device's chimes: add, done, failure or volume_change.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"add", "done", "failure", "volume_change"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := storepb.ParseChime(args[0])
			if err != nil {
				return err
			}
			application, err := newApplication()
			if err != nil {
				return err
			}
			return application.PlayChime(commandContext(cmd), c)
		},
	}
}
