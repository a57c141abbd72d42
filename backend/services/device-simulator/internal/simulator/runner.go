package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"hydrohero/backend/libs/hydration"
	"hydrohero/backend/services/device-simulator/internal/clients"
)

// DocumentWriter stores the device document.
type DocumentWriter interface {
	Put(ctx context.Context, key string, v any) (json.RawMessage, error)
}

// ProfileReader supplies the body weight used to derive the goal.
type ProfileReader interface {
	Profile(ctx context.Context) (*clients.Profile, error)
}

// Options configures a simulation run.
type Options struct {
	DeviceID     string
	Interval     time.Duration
	RetryDelay   time.Duration
	MinSip       int
	MaxSip       int
	StartWeightG int
	StartTotalML int
	Extras       bool
	Rand         *rand.Rand
	Clock        func() time.Time
	Out          io.Writer
}

// Validate checks option consistency.
func (o Options) Validate() error {
	switch {
	case o.DeviceID == "":
		return errors.New("device id is required")
	case o.MinSip <= 0 || o.MaxSip < o.MinSip:
		return fmt.Errorf("invalid sip range [%d, %d]", o.MinSip, o.MaxSip)
	case o.Interval < 0 || o.RetryDelay < 0:
		return errors.New("interval and retry delay must not be negative")
	case o.StartWeightG < 0 || o.StartTotalML < 0:
		return errors.New("start weight and total must not be negative")
	}
	return nil
}

// Runner drives a bottle until the goal is reached.
type Runner struct {
	writer   DocumentWriter
	profiles ProfileReader
	opts     Options
	logger   *zap.Logger
}

// NewRunner validates opts and builds a runner.
func NewRunner(writer DocumentWriter, profiles ProfileReader, opts Options, logger *zap.Logger) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Runner{writer: writer, profiles: profiles, opts: opts, logger: logger}, nil
}

// Goal derives the daily goal from the backend profile, falling back to the
// default weight when the backend cannot be reached.
func (r *Runner) Goal(ctx context.Context) int {
	if r.profiles != nil {
		profile, err := r.profiles.Profile(ctx)
		if err == nil && profile.WeightKg > 0 {
			return hydration.DailyGoalML(profile.WeightKg)
		}
		r.logger.Warn("could not read profile, using default goal", zap.Error(err))
	}
	return hydration.DailyGoalML(hydration.DefaultWeightKg)
}

// Run sends the bottle state every interval, sipping in between, until the goal
// is reached or ctx is cancelled. The returned bottle is the last state.
func (r *Runner) Run(ctx context.Context) (*Bottle, error) {
	bottle := &Bottle{
		WeightG: r.opts.StartWeightG,
		TotalML: r.opts.StartTotalML,
		GoalML:  r.Goal(ctx),
	}
	fmt.Fprintf(r.opts.Out, "starting at %dml, target %dml, bottle %dg\n", bottle.TotalML, bottle.GoalML, bottle.WeightG)

	for !bottle.GoalReached() {
		if err := r.Send(ctx, bottle); err != nil {
			if ctx.Err() != nil {
				return bottle, ctx.Err()
			}
			r.logger.Warn("send failed, retrying", zap.Duration("retry_delay", r.opts.RetryDelay), zap.Error(err))
			if err := sleep(ctx, r.opts.RetryDelay); err != nil {
				return bottle, err
			}
			continue
		}
		if err := sleep(ctx, r.opts.Interval); err != nil {
			return bottle, err
		}
		bottle.Sip(r.sipSize())
	}

	if err := r.Send(ctx, bottle); err != nil {
		return bottle, fmt.Errorf("send final reading: %w", err)
	}
	fmt.Fprintf(r.opts.Out, "goal reached: %dml/%dml\n", bottle.TotalML, bottle.GoalML)
	return bottle, nil
}

// Send PUTs the current bottle state.
func (r *Runner) Send(ctx context.Context, bottle *Bottle) error {
	doc := bottle.Document(r.opts.Clock(), r.opts.Extras, r.opts.Rand)
	if _, err := r.writer.Put(ctx, r.opts.DeviceID, doc); err != nil {
		return err
	}
	fmt.Fprintf(r.opts.Out, "sent %dml/%dml (%.1f%%) | weight %dg\n",
		bottle.TotalML, bottle.GoalML, bottle.Progress(), bottle.WeightG)
	return nil
}

func (r *Runner) sipSize() int {
	return r.opts.MinSip + r.opts.Rand.IntN(r.opts.MaxSip-r.opts.MinSip+1)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
