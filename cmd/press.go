package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uboterm/internal/storepb"
)

func newPressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "press <KEY>...",
		Short: "Press keypad keys on the device and exit",
		Long: `Dispatches one keypad press per argument, in order. Keys are L1, L2, L3,
UP, DOWN, BACK and HOME, case-insensitive, with an optional KEY_ prefix.`,
		Example: "  uboterm press home down down l1",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(args)
			if err != nil {
				return err
			}
			application, err := newApplication()
			if err != nil {
				return err
			}
			return application.Press(commandContext(cmd), keys)
		},
	}
}

// parseKeys resolves every argument before anything is sent.
func parseKeys(args []string) ([]storepb.KeyCode, error) {
	keys := make([]storepb.KeyCode, 0, len(args))
	var errs []error
	for _, a := range args {
		k, err := storepb.ParseKeyCode(a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keys = append(keys, k)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid keys: %w", errors.Join(errs...))
	}
	return keys, nil
}
