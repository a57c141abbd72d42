package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hydrohero/backend/libs/rtdb"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the stored device document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := rootOpts.httpClient()
			defer httpClient.CloseIdleConnections()
			remote, err := rootOpts.remote(httpClient)
			if err != nil {
				return err
			}

			raw, err := remote.Get(cmd.Context(), rootOpts.DeviceID)
			if errors.Is(err, rtdb.ErrNoDocument) {
				return fmt.Errorf("no document for device %q", rootOpts.DeviceID)
			}
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), raw)
		},
	}
}
