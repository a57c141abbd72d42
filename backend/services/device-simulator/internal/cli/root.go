package cli

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hydrohero/backend/libs/rtdb"
	"hydrohero/backend/services/device-simulator/internal/clients"
	"hydrohero/backend/services/device-simulator/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	FirebaseURL string
	DeviceID    string
	BackendURL  string
	FrontendURL string
	Timeout     time.Duration

	logger *zap.Logger
}

// NewRootCommand creates the hydrosim root command with defaults from cfg.
func NewRootCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	opts := &RootOptions{logger: logger}

	cmd := &cobra.Command{
		Use:   "hydrosim",
		Short: "Smart bottle simulator for the hydration backend",
		Long: `hydrosim plays the part of a smart water bottle. It writes scale readings
to the realtime database document the hydration API reads, and checks that
the whole system is reachable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.FirebaseURL, "firebase-url", cfg.Firebase.URL, "realtime database base URL")
	cmd.PersistentFlags().StringVar(&opts.DeviceID, "device-id", cfg.Firebase.DeviceID, "device document id")
	cmd.PersistentFlags().StringVar(&opts.BackendURL, "backend-url", cfg.BackendURL, "hydration API base URL including /api")
	cmd.PersistentFlags().StringVar(&opts.FrontendURL, "frontend-url", cfg.FrontendURL, "frontend URL probed by health")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", cfg.Timeout(), "per-request timeout")

	cmd.AddCommand(NewSendCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))

	return cmd
}

func (o *RootOptions) httpClient() *http.Client {
	return rtdb.NewDefaultHTTPClient(o.Timeout)
}

// remote returns a document client, requiring both the base URL and device id.
func (o *RootOptions) remote(httpClient rtdb.HTTPDoer) (*rtdb.Client, error) {
	if strings.TrimSpace(o.FirebaseURL) == "" {
		return nil, errors.New("--firebase-url (or HYDROSIM_FIREBASE_URL) is required")
	}
	if strings.TrimSpace(o.DeviceID) == "" {
		return nil, errors.New("--device-id (or HYDROSIM_DEVICE_ID) is required")
	}
	return rtdb.NewClient(o.FirebaseURL, httpClient), nil
}

func (o *RootOptions) backend(httpClient clients.HTTPDoer) *clients.BackendClient {
	return clients.NewBackendClient(o.BackendURL, httpClient)
}
