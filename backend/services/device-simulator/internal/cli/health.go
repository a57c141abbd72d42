package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hydrohero/backend/libs/rtdb"
	"hydrohero/backend/services/device-simulator/internal/clients"
	"hydrohero/backend/services/device-simulator/internal/simulator"
)

// NewHealthCommand creates the health command.
func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend, frontend and device data flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := rootOpts.httpClient()
			defer httpClient.CloseIdleConnections()

			results := simulator.RunChecks(cmd.Context(), healthChecks(rootOpts, httpClient))
			failed := simulator.Report(cmd.OutOrStdout(), results)
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all systems operational")
			return nil
		},
	}
}

func healthChecks(opts *RootOptions, httpClient clients.HTTPDoer) []simulator.Check {
	backend := opts.backend(httpClient)

	return []simulator.Check{
		{
			Name: "backend api",
			Run: func(ctx context.Context) (string, error) {
				profile, err := backend.Profile(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("profile weight %dkg", profile.WeightKg), nil
			},
		},
		{
			Name: "frontend",
			Run: func(ctx context.Context) (string, error) {
				if err := clients.Probe(ctx, httpClient, opts.FrontendURL); err != nil {
					return "", err
				}
				return opts.FrontendURL, nil
			},
		},
		{
			Name: "device document",
			Run: func(ctx context.Context) (string, error) {
				remote, err := opts.remote(httpClient)
				if err != nil {
					return "", err
				}
				raw, err := remote.Get(ctx, opts.DeviceID)
				if errors.Is(err, rtdb.ErrNoDocument) {
					return "", errors.New("reachable but no data")
				}
				if err != nil {
					return "", err
				}
				var doc struct {
					TotalWaterDrank *json.Number `json:"totalWaterDrank"`
				}
				if err := json.Unmarshal(raw, &doc); err != nil || doc.TotalWaterDrank == nil {
					return "", errors.New("document has no totalWaterDrank")
				}
				return fmt.Sprintf("%sml", doc.TotalWaterDrank.String()), nil
			},
		},
		{
			Name: "backend device link",
			Run: func(ctx context.Context) (string, error) {
				if opts.DeviceID == "" {
					return "", errors.New("--device-id (or HYDROSIM_DEVICE_ID) is required")
				}
				snapshot, err := backend.DeviceSnapshot(ctx, opts.DeviceID)
				if err != nil {
					return "", err
				}
				if !snapshot.Connected {
					return "", fmt.Errorf("backend reports no data: %s", snapshot.Error)
				}
				total := 0
				if snapshot.TotalWaterDrank != nil {
					total = *snapshot.TotalWaterDrank
				}
				return fmt.Sprintf("%dml", total), nil
			},
		},
	}
}
