// Package session implements the interval workout state machine.
//
// A Session is not safe for concurrent use. Callers confine it to one
// goroutine or guard it with a lock, and invoke Tick once per second while
// it runs. The timekeeper package does both.
package session

import (
	"errors"
	"time"

	"tabata/internal/core/model"
)

// ErrSessionRunning is returned when the config is changed mid-workout.
var ErrSessionRunning = errors.New("session is running")

// Listener receives session events synchronously.
type Listener func(Event)

// Session owns the workout configuration and countdown state.
type Session struct {
	config      model.WorkoutConfig
	phase       Phase
	round       int
	remaining   int
	running     bool
	everStarted bool
	listeners   []Listener
	now         func() time.Time
}

// New creates an idle session. The config must be valid.
func New(config model.WorkoutConfig) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		config: config,
		phase:  PhaseIdle,
		now:    time.Now,
	}, nil
}

// Listen registers a listener. Listeners run in registration order.
func (session *Session) Listen(listener Listener) {
	session.listeners = append(session.listeners, listener)
}

// Config returns the active workout config.
func (session *Session) Config() model.WorkoutConfig {
	return session.config
}

// Configure replaces the workout config. It is rejected while running.
// A paused session is returned to idle.
func (session *Session) Configure(config model.WorkoutConfig) error {
	if session.running {
		return ErrSessionRunning
	}
	if err := config.Validate(); err != nil {
		return err
	}
	session.config = config
	if session.phase.Active() {
		session.Reset()
	}
	return nil
}

// Start begins a fresh workout or resumes a paused one.
func (session *Session) Start() {
	if session.running {
		return
	}

	if session.phase.Active() {
		session.running = true
		session.everStarted = true
		session.emit(EventResumed, CueSingle)
		return
	}

	session.running = true
	session.everStarted = true
	if session.config.GetReadySeconds > 0 {
		session.phase = PhaseGetReady
		session.round = 0
		session.remaining = session.config.GetReadySeconds
	} else {
		session.phase = PhaseWork
		session.round = 1
		session.remaining = session.config.WorkSeconds
	}
	session.emit(EventStarted, CueSingle)
	session.emit(EventPhaseEntered, CueNone)
}

// Pause freezes the countdown.
func (session *Session) Pause() {
	if !session.running {
		return
	}
	session.running = false
	session.emit(EventPaused, CueNone)
}

// Toggle pauses a running session and starts or resumes any other.
func (session *Session) Toggle() {
	if session.running {
		session.Pause()
		return
	}
	session.Start()
}

// Reset returns to idle from any state.
func (session *Session) Reset() {
	session.running = false
	session.everStarted = false
	session.phase = PhaseIdle
	session.round = 0
	session.remaining = 0
	session.emit(EventReset, CueNone)
}

// Tick advances the countdown by one second.
func (session *Session) Tick() {
	if !session.running {
		return
	}

	session.remaining--
	if session.remaining <= 0 {
		session.advancePhase()
	}
	if session.running {
		session.emit(EventProgress, CueNone)
	}
}

func (session *Session) advancePhase() {
	switch session.phase {
	case PhaseGetReady:
		session.enter(PhaseWork, 1, session.config.WorkSeconds, CueSingle)
	case PhaseWork:
		if session.round >= session.config.Rounds && !session.config.RestAfterFinalRound {
			session.complete()
			return
		}
		session.enter(PhaseRest, session.round, session.config.RestSeconds, CueDouble)
	case PhaseRest:
		if session.round >= session.config.Rounds {
			session.complete()
			return
		}
		session.round++
		session.emit(EventRoundAdvanced, CueNone)
		session.enter(PhaseWork, session.round, session.config.WorkSeconds, CueSingle)
	default:
		// A running session is always in an active phase.
		session.complete()
	}
}

func (session *Session) enter(phase Phase, round, seconds int, cue Cue) {
	session.phase = phase
	session.round = round
	session.remaining = seconds
	session.emit(EventPhaseEntered, cue)
}

func (session *Session) complete() {
	session.phase = PhaseComplete
	session.round = session.config.Rounds
	session.remaining = 0
	session.running = false
	session.emit(EventCompleted, CueTriple)
}

// Snapshot returns the current state.
func (session *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:       session.phase,
		Round:       session.round,
		TotalRounds: session.config.Rounds,
		Remaining:   session.remaining,
		Running:     session.running,
		EverStarted: session.everStarted,
		Progress:    session.progress(),
	}
}

// Progress returns the completed fraction of the workout in [0,1].
func (session *Session) Progress() float64 {
	return session.progress()
}

func (session *Session) progress() float64 {
	switch session.phase {
	case PhaseComplete:
		return 1
	case PhaseWork, PhaseRest:
	default:
		return 0
	}

	total := session.config.WorkoutSeconds()
	if total <= 0 {
		return 0
	}

	completed := (session.round - 1) * session.config.RoundSeconds()
	if session.phase == PhaseWork {
		completed += session.config.WorkSeconds - session.remaining
	} else {
		completed += session.config.WorkSeconds + (session.config.RestSeconds - session.remaining)
	}

	progress := float64(completed) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (session *Session) emit(eventType EventType, cue Cue) {
	if len(session.listeners) == 0 {
		return
	}
	event := Event{
		Type:     eventType,
		Cue:      cue,
		Snapshot: session.Snapshot(),
		At:       session.now(),
	}
	for _, listener := range session.listeners {
		listener(event)
	}
}
