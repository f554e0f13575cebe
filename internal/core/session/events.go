package session

import "time"

// Phase represents the current segment of the workout.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseGetReady Phase = "get_ready"
	PhaseWork     Phase = "work"
	PhaseRest     Phase = "rest"
	PhaseComplete Phase = "complete"
)

// Active reports whether the phase counts down.
func (phase Phase) Active() bool {
	return phase == PhaseGetReady || phase == PhaseWork || phase == PhaseRest
}

// Cue is an abstract audio signal attached to an event.
type Cue int

const (
	CueNone Cue = iota
	CueSingle
	CueDouble
	CueTriple
)

// EventType defines the type of session event.
type EventType string

const (
	EventStarted       EventType = "started"
	EventResumed       EventType = "resumed"
	EventPaused        EventType = "paused"
	EventReset         EventType = "reset"
	EventPhaseEntered  EventType = "phase_entered"
	EventRoundAdvanced EventType = "round_advanced"
	EventCompleted     EventType = "completed"
	EventProgress      EventType = "progress"
)

// Event is emitted to listeners on every observable change.
type Event struct {
	Type     EventType
	Cue      Cue
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	Phase       Phase
	Round       int
	TotalRounds int
	Remaining   int
	Running     bool
	EverStarted bool
	Progress    float64
}

// Paused reports whether the session is frozen mid-workout.
func (snapshot Snapshot) Paused() bool {
	return !snapshot.Running && snapshot.Phase.Active()
}
