package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabata/internal/core/model"
	"tabata/internal/core/session"
)

type recorder struct {
	events []session.Event
}

func (rec *recorder) listen(event session.Event) {
	rec.events = append(rec.events, event)
}

func (rec *recorder) types() []session.EventType {
	types := make([]session.EventType, 0, len(rec.events))
	for _, event := range rec.events {
		if event.Type == session.EventProgress {
			continue
		}
		types = append(types, event.Type)
	}
	return types
}

func (rec *recorder) count(eventType session.EventType) int {
	count := 0
	for _, event := range rec.events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

func newSession(t *testing.T, config model.WorkoutConfig) (*session.Session, *recorder) {
	t.Helper()
	s, err := session.New(config)
	require.NoError(t, err)
	rec := &recorder{}
	s.Listen(rec.listen)
	return s, rec
}

func exampleConfig() model.WorkoutConfig {
	return model.WorkoutConfig{WorkSeconds: 20, RestSeconds: 10, Rounds: 3}
}

func TestNewIsIdle(t *testing.T) {
	s, _ := newSession(t, exampleConfig())

	snap := s.Snapshot()
	assert.Equal(t, session.PhaseIdle, snap.Phase)
	assert.Equal(t, 0, snap.Round)
	assert.Equal(t, 0, snap.Remaining)
	assert.False(t, snap.Running)
	assert.False(t, snap.EverStarted)
	assert.Equal(t, 3, snap.TotalRounds)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := session.New(model.WorkoutConfig{WorkSeconds: 0, RestSeconds: 10, Rounds: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidConfig))
}

func TestStartWithoutGetReadyEntersWork(t *testing.T) {
	s, rec := newSession(t, exampleConfig())

	s.Start()

	snap := s.Snapshot()
	assert.Equal(t, session.PhaseWork, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 20, snap.Remaining)
	assert.True(t, snap.Running)
	assert.True(t, snap.EverStarted)
	assert.Equal(t, []session.EventType{session.EventStarted, session.EventPhaseEntered}, rec.types())
	assert.Equal(t, session.CueSingle, rec.events[0].Cue)
	assert.Equal(t, session.CueNone, rec.events[1].Cue)
}

func TestStartWithGetReady(t *testing.T) {
	config := exampleConfig()
	config.GetReadySeconds = 5
	s, _ := newSession(t, config)

	s.Start()
	snap := s.Snapshot()
	assert.Equal(t, session.PhaseGetReady, snap.Phase)
	assert.Equal(t, 0, snap.Round)
	assert.Equal(t, 5, snap.Remaining)

	for i := 0; i < 4; i++ {
		s.Tick()
	}
	assert.Equal(t, session.PhaseGetReady, s.Snapshot().Phase)

	s.Tick()
	snap = s.Snapshot()
	assert.Equal(t, session.PhaseWork, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 20, snap.Remaining)
}

func TestStartIsNoOpWhileRunning(t *testing.T) {
	s, rec := newSession(t, exampleConfig())
	s.Start()
	s.Tick()
	before := s.Snapshot()
	eventsBefore := len(rec.events)

	s.Start()

	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, rec.events, eventsBefore)
}

func TestExampleTimeline(t *testing.T) {
	s, rec := newSession(t, exampleConfig())
	s.Start()

	for i := 1; i <= 19; i++ {
		s.Tick()
		snap := s.Snapshot()
		require.Equal(t, session.PhaseWork, snap.Phase, "tick %d", i)
		require.Equal(t, 1, snap.Round, "tick %d", i)
		require.Equal(t, 20-i, snap.Remaining, "tick %d", i)
	}

	s.Tick() // 20
	snap := s.Snapshot()
	assert.Equal(t, session.PhaseRest, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 10, snap.Remaining)

	for i := 21; i <= 30; i++ {
		s.Tick()
	}
	snap = s.Snapshot()
	assert.Equal(t, session.PhaseWork, snap.Phase)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 20, snap.Remaining)

	for i := 31; i <= 79; i++ {
		s.Tick()
		require.NotEqual(t, session.PhaseComplete, s.Snapshot().Phase, "tick %d", i)
	}
	assert.Equal(t, session.PhaseWork, s.Snapshot().Phase)
	assert.Equal(t, 3, s.Snapshot().Round)

	s.Tick() // 80
	snap = s.Snapshot()
	assert.Equal(t, session.PhaseComplete, snap.Phase)
	assert.Equal(t, 3, snap.Round)
	assert.Equal(t, 0, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Equal(t, 1.0, snap.Progress)
	assert.Equal(t, 1, rec.count(session.EventCompleted))
	assert.Equal(t, 2, rec.count(session.EventRoundAdvanced))
}

func TestCompletesAfterExactTickCount(t *testing.T) {
	configs := []model.WorkoutConfig{
		{WorkSeconds: 20, RestSeconds: 10, Rounds: 3},
		{WorkSeconds: 20, RestSeconds: 10, Rounds: 8, GetReadySeconds: 10},
		{WorkSeconds: 1, RestSeconds: 1, Rounds: 1},
		{WorkSeconds: 3, RestSeconds: 2, Rounds: 4, GetReadySeconds: 1},
		{WorkSeconds: 5, RestSeconds: 7, Rounds: 2, RestAfterFinalRound: true},
		{WorkSeconds: 2, RestSeconds: 3, Rounds: 3, GetReadySeconds: 4, RestAfterFinalRound: true},
	}
	for _, config := range configs {
		s, rec := newSession(t, config)
		s.Start()

		total := config.TotalSeconds()
		for i := 1; i < total; i++ {
			s.Tick()
			require.NotEqual(t, session.PhaseComplete, s.Snapshot().Phase, "config %+v completed early at tick %d", config, i)
		}
		s.Tick()
		require.Equal(t, session.PhaseComplete, s.Snapshot().Phase, "config %+v", config)

		for i := 0; i < 10; i++ {
			s.Tick()
		}
		assert.Equal(t, 1, rec.count(session.EventCompleted), "config %+v", config)
	}
}

func TestRestAfterFinalRound(t *testing.T) {
	config := model.WorkoutConfig{WorkSeconds: 2, RestSeconds: 3, Rounds: 1, RestAfterFinalRound: true}
	s, _ := newSession(t, config)
	s.Start()

	s.Tick()
	s.Tick()
	snap := s.Snapshot()
	assert.Equal(t, session.PhaseRest, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 3, snap.Remaining)

	s.Tick()
	s.Tick()
	s.Tick()
	assert.Equal(t, session.PhaseComplete, s.Snapshot().Phase)
}

func TestCues(t *testing.T) {
	config := model.WorkoutConfig{WorkSeconds: 1, RestSeconds: 1, Rounds: 2, GetReadySeconds: 1}
	s, rec := newSession(t, config)
	s.Start()
	for i := 0; i < config.TotalSeconds(); i++ {
		s.Tick()
	}

	var cues []session.Cue
	for _, event := range rec.events {
		if event.Cue != session.CueNone {
			cues = append(cues, event.Cue)
		}
	}
	assert.Equal(t, []session.Cue{
		session.CueSingle, // start
		session.CueSingle, // work round 1
		session.CueDouble, // rest round 1
		session.CueSingle, // work round 2
		session.CueTriple, // complete
	}, cues)
}

func TestPauseFreezesState(t *testing.T) {
	s, rec := newSession(t, exampleConfig())
	s.Start()
	for i := 0; i < 25; i++ {
		s.Tick()
	}
	before := s.Snapshot()

	s.Pause()
	paused := s.Snapshot()
	assert.False(t, paused.Running)
	assert.True(t, paused.Paused())

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	assert.Equal(t, paused, s.Snapshot())

	s.Start()
	resumed := s.Snapshot()
	assert.Equal(t, before.Phase, resumed.Phase)
	assert.Equal(t, before.Round, resumed.Round)
	assert.Equal(t, before.Remaining, resumed.Remaining)
	assert.True(t, resumed.Running)
	assert.Equal(t, 1, rec.count(session.EventResumed))
	assert.Equal(t, 1, rec.count(session.EventStarted))
}

func TestPauseIsNoOpWhenNotRunning(t *testing.T) {
	s, rec := newSession(t, exampleConfig())
	s.Pause()
	assert.Empty(t, rec.events)
	assert.Equal(t, session.PhaseIdle, s.Snapshot().Phase)
}

func TestToggle(t *testing.T) {
	s, _ := newSession(t, exampleConfig())

	s.Toggle()
	assert.True(t, s.Snapshot().Running)
	s.Toggle()
	assert.True(t, s.Snapshot().Paused())
	s.Toggle()
	assert.True(t, s.Snapshot().Running)
}

func TestResetFromAnyState(t *testing.T) {
	config := exampleConfig()
	config.GetReadySeconds = 3
	ticks := []int{0, 1, 3, 10, 23, 40, config.TotalSeconds()}

	for _, n := range ticks {
		for _, pause := range []bool{false, true} {
			s, _ := newSession(t, config)
			if n > 0 {
				s.Start()
			}
			for i := 0; i < n; i++ {
				s.Tick()
			}
			if pause {
				s.Pause()
			}

			s.Reset()

			snap := s.Snapshot()
			assert.Equal(t, session.PhaseIdle, snap.Phase, "after %d ticks", n)
			assert.Equal(t, 0, snap.Round)
			assert.Equal(t, 0, snap.Remaining)
			assert.False(t, snap.Running)
			assert.False(t, snap.EverStarted)
		}
	}
}

func TestRestartAfterComplete(t *testing.T) {
	config := model.WorkoutConfig{WorkSeconds: 1, RestSeconds: 1, Rounds: 1}
	s, _ := newSession(t, config)
	s.Start()
	s.Tick()
	require.Equal(t, session.PhaseComplete, s.Snapshot().Phase)

	s.Start()
	snap := s.Snapshot()
	assert.Equal(t, session.PhaseWork, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 1, snap.Remaining)
}

func TestRoundNeverDecreasesOrExceedsTotal(t *testing.T) {
	config := model.WorkoutConfig{WorkSeconds: 2, RestSeconds: 1, Rounds: 5, GetReadySeconds: 2, RestAfterFinalRound: true}
	s, _ := newSession(t, config)
	s.Start()

	last := s.Snapshot().Round
	for s.Snapshot().Running {
		s.Tick()
		round := s.Snapshot().Round
		require.GreaterOrEqual(t, round, last)
		require.LessOrEqual(t, round, config.Rounds)
		last = round
	}
}

func TestEnteredPhasesArePositive(t *testing.T) {
	config := model.WorkoutConfig{WorkSeconds: 2, RestSeconds: 1, Rounds: 3, GetReadySeconds: 1}
	s, rec := newSession(t, config)
	s.Start()
	for i := 0; i < config.TotalSeconds(); i++ {
		s.Tick()
	}

	for _, event := range rec.events {
		if event.Type == session.EventPhaseEntered {
			assert.Positive(t, event.Snapshot.Remaining, "phase %s", event.Snapshot.Phase)
		}
	}
}

func TestProgress(t *testing.T) {
	s, _ := newSession(t, exampleConfig())
	assert.Equal(t, 0.0, s.Progress())

	s.Start()
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	assert.InDelta(t, 10.0/90.0, s.Progress(), 1e-9)

	for i := 0; i < 15; i++ {
		s.Tick()
	}
	// Rest round 1, 5 seconds in.
	assert.InDelta(t, 25.0/90.0, s.Progress(), 1e-9)

	previous := s.Progress()
	for s.Snapshot().Running {
		s.Tick()
		current := s.Progress()
		require.GreaterOrEqual(t, current, previous)
		require.LessOrEqual(t, current, 1.0)
		previous = current
	}
	assert.Equal(t, 1.0, s.Progress())
}

func TestProgressDuringGetReadyIsZero(t *testing.T) {
	config := exampleConfig()
	config.GetReadySeconds = 5
	s, _ := newSession(t, config)
	s.Start()
	s.Tick()
	assert.Equal(t, 0.0, s.Progress())
}

func TestConfigure(t *testing.T) {
	s, _ := newSession(t, exampleConfig())

	err := s.Configure(model.WorkoutConfig{WorkSeconds: 30, RestSeconds: 15, Rounds: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Snapshot().TotalRounds)

	err = s.Configure(model.WorkoutConfig{WorkSeconds: 30, RestSeconds: 15, Rounds: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidConfig))
	assert.Equal(t, 4, s.Config().Rounds)
}

func TestConfigureRejectedWhileRunning(t *testing.T) {
	s, _ := newSession(t, exampleConfig())
	s.Start()
	s.Tick()
	before := s.Snapshot()

	err := s.Configure(model.WorkoutConfig{WorkSeconds: 30, RestSeconds: 15, Rounds: 4})
	require.ErrorIs(t, err, session.ErrSessionRunning)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, exampleConfig(), s.Config())
}

func TestConfigureWhilePausedResets(t *testing.T) {
	s, rec := newSession(t, exampleConfig())
	s.Start()
	s.Tick()
	s.Pause()

	err := s.Configure(model.WorkoutConfig{WorkSeconds: 30, RestSeconds: 15, Rounds: 4})
	require.NoError(t, err)
	assert.Equal(t, session.PhaseIdle, s.Snapshot().Phase)
	assert.Equal(t, 1, rec.count(session.EventReset))
}
