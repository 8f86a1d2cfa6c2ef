package host

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/z-libs/zwasm-go/domain/entities"
)

// Driver runs a guest the way a browser would: the initializer once, then
// the frame hook at a fixed cadence, with key transitions delivered between
// frames.
type Driver struct {
	inst      *Instance
	onFrame   func(entities.FrameSample)
	events    []entities.KeyEvent
	frameRate int
	realtime  bool
	sample    bool
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithFrameRate sets ticks per second for realtime runs.
func WithFrameRate(fps int) DriverOption {
	return func(d *Driver) {
		if fps > 0 {
			d.frameRate = fps
		}
	}
}

// WithRealtime paces ticks at the frame rate instead of running them back
// to back.
func WithRealtime(enabled bool) DriverOption {
	return func(d *Driver) {
		d.realtime = enabled
	}
}

// WithKeyEvents schedules key transitions. An event for frame n is
// delivered just before the n-th tick; frames below 1 go before the first.
func WithKeyEvents(events ...entities.KeyEvent) DriverOption {
	return func(d *Driver) {
		d.events = append(d.events, events...)
	}
}

// WithSampling records getter values after every tick.
func WithSampling(enabled bool) DriverOption {
	return func(d *Driver) {
		d.sample = enabled
	}
}

// WithFrameCallback is called after every tick with that frame's sample.
// Values is empty unless sampling is enabled.
func WithFrameCallback(fn func(entities.FrameSample)) DriverOption {
	return func(d *Driver) {
		d.onFrame = fn
	}
}

// NewDriver creates a Driver for inst.
func NewDriver(inst *Instance, opts ...DriverOption) *Driver {
	d := &Driver{inst: inst, frameRate: entities.DefaultFrameRate}
	for _, opt := range opts {
		opt(d)
	}
	sort.SliceStable(d.events, func(a, b int) bool {
		return d.events[a].Frame < d.events[b].Frame
	})
	return d
}

// RunResult summarizes a run.
type RunResult struct {
	Samples []entities.FrameSample `json:"samples,omitempty"`
	Status  int32                  `json:"status"`
	Frames  int                    `json:"frames"`
}

// Run initializes the guest and ticks it frames times. A non-zero init
// status stops the run before the first tick and is reported in the
// result, not as an error.
func (d *Driver) Run(ctx context.Context, frames int) (RunResult, error) {
	var res RunResult

	status, err := d.inst.Init(ctx)
	res.Status = status
	if err != nil {
		return res, fmt.Errorf("init: %w", err)
	}
	if status != 0 {
		return res, nil
	}

	var ticker *time.Ticker
	if d.realtime {
		ticker = time.NewTicker(time.Second / time.Duration(d.frameRate))
		defer ticker.Stop()
	}

	start := time.Now()
	next := 0
	for frame := 1; frame <= frames; frame++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		for next < len(d.events) && d.events[next].Frame <= frame {
			ev := d.events[next]
			next++
			if err := d.inst.OnKey(ctx, ev.Code, ev.Down); err != nil {
				return res, fmt.Errorf("frame %d: key %d: %w", frame, ev.Code, err)
			}
		}

		if err := d.inst.Tick(ctx); err != nil {
			return res, fmt.Errorf("frame %d: %w", frame, err)
		}
		res.Frames = frame

		s := entities.FrameSample{Frame: frame, Time: time.Since(start).Seconds()}
		if d.sample {
			s.Values = d.inst.Sample(ctx)
			res.Samples = append(res.Samples, s)
		}
		if d.onFrame != nil {
			d.onFrame(s)
		}
	}
	return res, nil
}
