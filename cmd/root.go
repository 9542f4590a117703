package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"uboterm/internal/app"
)

// flags collects the options shared by every command.
var flags = app.NewConfig("", false)

// rootCmd represents the base command. Without a subcommand it connects.
var rootCmd = &cobra.Command{
	Use:   "uboterm",
	Short: "Mirror a device display in your terminal and drive it from the keyboard",
	Long: `uboterm connects to a device's store service over gRPC, shows its display
in the local terminal and forwards keypresses as keypad presses.

Frames are drawn with the kitty graphics protocol when the terminal answers
the kitty query, with iTerm2 inline images when TERM_PROGRAM is iTerm.app,
and are otherwise written to a file.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed connections)
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runConnect,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command with a context cancelled by SIGINT or
// SIGTERM. This is called by main.main(). It only needs to happen once to
// the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "uboterm version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newApplication loads the configuration with the parsed flags applied.
func newApplication() (*app.Application, error) {
	application, err := app.NewApplication(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "Config file layered over ~/.config/uboterm and ./.uboterm")
	pf.StringVar(&flags.Host, "host", "", "Store service host (default 127.0.0.1, env GRPC_HOST)")
	pf.IntVar(&flags.Port, "port", 0, "Store service port (default 50051, env GRPC_PORT)")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.StringVar(&flags.LogFile, "log-file", "", "Write session logs to this file")
	pf.StringVar(&flags.Protocol, "protocol", "", "Display protocol: auto, kitty, iterm2 or file (env UBOTERM_PROTOCOL)")

	rootCmd.Flags().AddFlagSet(sessionFlags())

	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newPressCmd())
	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newChimeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
