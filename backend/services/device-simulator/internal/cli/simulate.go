package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"hydrohero/backend/services/device-simulator/internal/simulator"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Interval     time.Duration
	RetryDelay   time.Duration
	MinSip       int
	MaxSip       int
	StartWeightG int
	StartTotalML int
	Extras       bool
	Seed         uint64
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drink from the bottle until the daily goal is reached",
		Long: `Reads the profile from the backend to derive the daily goal (70 kg when the
backend is unreachable), then writes the bottle state every --interval and
takes a random sip in between. Stops at the goal or on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", 10*time.Second, "time between readings")
	cmd.Flags().DurationVar(&opts.RetryDelay, "retry-delay", 5*time.Second, "wait after a failed write")
	cmd.Flags().IntVar(&opts.MinSip, "min-sip", 20, "smallest sip in ml")
	cmd.Flags().IntVar(&opts.MaxSip, "max-sip", 60, "largest sip in ml")
	cmd.Flags().IntVar(&opts.StartWeightG, "start-weight", simulator.DefaultStartWeightG, "initial bottle weight in grams")
	cmd.Flags().IntVar(&opts.StartTotalML, "start-total", 0, "initial cumulative intake in ml")
	cmd.Flags().BoolVar(&opts.Extras, "extras", false, "include device status, battery and temperature fields")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one")

	return cmd
}

func runSimulate(cmd *cobra.Command, opts *SimulateOptions) error {
	httpClient := opts.httpClient()
	defer httpClient.CloseIdleConnections()
	remote, err := opts.remote(httpClient)
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	runner, err := simulator.NewRunner(remote, opts.backend(httpClient), simulator.Options{
		DeviceID:     opts.DeviceID,
		Interval:     opts.Interval,
		RetryDelay:   opts.RetryDelay,
		MinSip:       opts.MinSip,
		MaxSip:       opts.MaxSip,
		StartWeightG: opts.StartWeightG,
		StartTotalML: opts.StartTotalML,
		Extras:       opts.Extras,
		Rand:         rand.New(rand.NewPCG(seed, seed)),
		Out:          cmd.OutOrStdout(),
	}, opts.logger)
	if err != nil {
		return err
	}

	bottle, err := runner.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(cmd.OutOrStdout(), "stopped at %dml/%dml\n", bottle.TotalML, bottle.GoalML)
		return nil
	}
	return err
}
