package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"hydrohero/backend/services/device-simulator/internal/simulator"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	WeightG int
	TotalML int
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "send",
		Short:   "Write one reading and read it back",
		Example: `  hydrosim send --weight 420 --total 900`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.WeightG, "weight", simulator.DefaultStartWeightG, "bottle weight in grams")
	cmd.Flags().IntVar(&opts.TotalML, "total", 0, "cumulative intake in ml")

	return cmd
}

func runSend(cmd *cobra.Command, opts *SendOptions) error {
	if opts.WeightG < 0 || opts.TotalML < 0 {
		return fmt.Errorf("--weight and --total must not be negative")
	}

	httpClient := opts.httpClient()
	defer httpClient.CloseIdleConnections()
	remote, err := opts.remote(httpClient)
	if err != nil {
		return err
	}

	doc := map[string]any{
		simulator.FieldCurrentWeight:   opts.WeightG,
		simulator.FieldTotalWaterDrank: opts.TotalML,
		simulator.FieldTimestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := remote.Put(cmd.Context(), opts.DeviceID, doc); err != nil {
		return fmt.Errorf("write %s: %w", remote.DocumentURL(opts.DeviceID), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent to %s\n", remote.DocumentURL(opts.DeviceID))

	stored, err := remote.Get(cmd.Context(), opts.DeviceID)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	return printDocument(cmd.OutOrStdout(), stored)
}

func printDocument(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
