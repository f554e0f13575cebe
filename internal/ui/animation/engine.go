package animation

import (
	"context"
	"image/color"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	RoundPulseDuration time.Duration
	RoundPulseScale    float32

	CelebrationDuration time.Duration
	CelebrationInterval Range
	Palette             []color.Color
}

// Engine runs short flourishes on top of the timer window.
// Starting a flourish cancels the one in progress.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(Frame)
	cancel      context.CancelFunc
	done        chan struct{}
	rngMu       sync.Mutex
	rng         *rand.Rand
}

// New creates a new animation engine.
func New(config Config, updateFrame func(Frame)) *Engine {
	return &Engine{
		config:      config,
		updateFrame: updateFrame,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PulseRound enlarges the round counter briefly.
func (engine *Engine) PulseRound(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		engine.updateFrame(Frame{RoundScale: engine.config.RoundPulseScale})
		sleepWithContext(runCtx, engine.config.RoundPulseDuration)
		engine.updateFrame(Frame{})
	})
}

// Celebrate flashes palette colours for the celebration duration.
func (engine *Engine) Celebrate(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.updateFrame(Frame{})
		if len(engine.config.Palette) == 0 {
			sleepWithContext(runCtx, engine.config.CelebrationDuration)
			return
		}

		deadline := time.Now().Add(engine.config.CelebrationDuration)
		for time.Now().Before(deadline) {
			engine.updateFrame(Frame{
				RoundScale: engine.config.RoundPulseScale,
				Accent:     engine.pickColor(),
			})
			if !sleepWithContext(runCtx, engine.randomInterval()) {
				return
			}
		}
	})
}

// Stop terminates any active flourish and waits for it to restore the frame.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func (engine *Engine) pickColor() color.Color {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return engine.config.Palette[engine.rng.Intn(len(engine.config.Palette))]
}

func (engine *Engine) randomInterval() time.Duration {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return engine.config.CelebrationInterval.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
