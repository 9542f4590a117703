package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Mirror the device display and forward keys (default command)",
		Long: `Announces the client on the device with a notification, then mirrors the
display and forwards keys until one of them ends:

  q              quit
  1 2 3          side keys L1 L2 L3
  arrows, h j k  back, down, up
  backspace      home

Extra bindings can be added under keyboard.bindings in the config file.
Ctrl+C ends the session cleanly.`,
		Args: cobra.NoArgs,
		RunE: runConnect,
	}
	cmd.Flags().AddFlagSet(sessionFlags())
	return cmd
}

// sessionFlags are the options only a mirroring session uses. Root and
// connect share the same variables.
func sessionFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("session", pflag.ContinueOnError)
	fs.BoolVar(&flags.NoAnnounce, "no-announce", false, "Do not show a notification on the device when connecting")
	fs.BoolVar(&flags.Compressed, "compressed", false, "Subscribe to compressed render events")
	return fs
}

func runConnect(cmd *cobra.Command, args []string) error {
	application, err := newApplication()
	if err != nil {
		return err
	}
	return application.Run(commandContext(cmd))
}
