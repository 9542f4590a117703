package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uboterm/internal/app"
	"uboterm/internal/color"
	"uboterm/internal/storepb"
)

func newNotifyCmd() *cobra.Command {
	var (
		opts  app.NotifyOptions
		chime string
	)
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show a notification on the device",
		Long: `Adds one notification to the device and prints its ID. At least one of
--title and --content is required.`,
		Example: `  uboterm notify --title "Build" --content "Pipeline passed" --chime done`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := storepb.ParseChime(chime)
			if err != nil {
				return err
			}
			opts.Chime = c

			application, err := newApplication()
			if err != nil {
				return err
			}
			id, err := application.Notify(commandContext(cmd), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.Ok("Notification "+id+" added."))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "Notification title")
	cmd.Flags().StringVar(&opts.Content, "content", "", "Notification body")
	cmd.Flags().StringVar(&opts.Color, "color", "", "Accent color, e.g. #00ff00")
	cmd.Flags().StringVar(&opts.Icon, "icon", "", "Icon glyph")
	cmd.Flags().StringVar(&chime, "chime", "", "Chime to play: add, done, failure or volume_change")
	return cmd
}
