package timekeeper

import (
	"sync"
	"time"

	"tabata/internal/core/model"
	"tabata/internal/core/session"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval       time.Duration
	CompleteResetDelay time.Duration
}

// TimeKeeper drives a session from a ticker and fans its events out to
// subscribers. All calls into the session happen under one lock.
type TimeKeeper struct {
	mu         sync.Mutex
	session    *session.Session
	options    Config
	events     []chan session.Event
	tickStop   chan struct{}
	resetTimer *time.Timer
	generation uint64
	closed     bool
}

// New creates a TimeKeeper for the given workout.
func New(config model.WorkoutConfig, options Config) (*TimeKeeper, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.CompleteResetDelay <= 0 {
		options.CompleteResetDelay = 3 * time.Second
	}

	sess, err := session.New(config)
	if err != nil {
		return nil, err
	}

	keeper := &TimeKeeper{
		session: sess,
		options: options,
	}
	sess.Listen(keeper.handleLocked)
	return keeper, nil
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan session.Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan session.Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Start begins or resumes the workout.
func (keeper *TimeKeeper) Start() {
	keeper.do(keeper.session.Start)
}

// Pause freezes the workout.
func (keeper *TimeKeeper) Pause() {
	keeper.do(keeper.session.Pause)
}

// Toggle pauses a running workout or starts/resumes it otherwise.
func (keeper *TimeKeeper) Toggle() {
	keeper.do(keeper.session.Toggle)
}

// Reset stops ticking and returns to idle.
func (keeper *TimeKeeper) Reset() {
	keeper.do(keeper.session.Reset)
}

// Configure replaces the workout config. See session.Session.Configure.
func (keeper *TimeKeeper) Configure(config model.WorkoutConfig) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.session.Configure(config)
}

// Config returns the active workout config.
func (keeper *TimeKeeper) Config() model.WorkoutConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.session.Config()
}

// Snapshot returns the current session state.
func (keeper *TimeKeeper) Snapshot() session.Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.session.Snapshot()
}

// Close stops the ticker and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.disarmLocked()
	keeper.cancelResetLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) do(operation func()) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	operation()
}

func (keeper *TimeKeeper) run(stop <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			keeper.tick(stop)
		}
	}
}

func (keeper *TimeKeeper) tick(stop <-chan struct{}) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	// A pause may have raced the ticker; only the armed loop may tick.
	select {
	case <-stop:
		return
	default:
	}
	keeper.session.Tick()
}

// handleLocked runs inside session operations, with mu held.
func (keeper *TimeKeeper) handleLocked(event session.Event) {
	switch event.Type {
	case session.EventStarted, session.EventResumed:
		keeper.cancelResetLocked()
		keeper.armLocked()
	case session.EventPaused, session.EventReset:
		keeper.cancelResetLocked()
		keeper.disarmLocked()
	case session.EventCompleted:
		keeper.disarmLocked()
		keeper.scheduleResetLocked()
	}
	keeper.emitLocked(event)
}

func (keeper *TimeKeeper) armLocked() {
	if keeper.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	keeper.tickStop = stop
	go keeper.run(stop)
}

func (keeper *TimeKeeper) disarmLocked() {
	if keeper.tickStop == nil {
		return
	}
	close(keeper.tickStop)
	keeper.tickStop = nil
}

func (keeper *TimeKeeper) scheduleResetLocked() {
	keeper.cancelResetLocked()
	generation := keeper.generation
	keeper.resetTimer = time.AfterFunc(keeper.options.CompleteResetDelay, func() {
		keeper.mu.Lock()
		defer keeper.mu.Unlock()
		if keeper.closed || keeper.generation != generation {
			return
		}
		if keeper.session.Snapshot().Phase == session.PhaseComplete {
			keeper.session.Reset()
		}
	})
}

func (keeper *TimeKeeper) cancelResetLocked() {
	keeper.generation++
	if keeper.resetTimer != nil {
		keeper.resetTimer.Stop()
		keeper.resetTimer = nil
	}
}

func (keeper *TimeKeeper) emitLocked(event session.Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
