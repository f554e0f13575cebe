package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabata/internal/core/model"
	"tabata/internal/core/session"
	"tabata/internal/core/timekeeper"
	"tabata/internal/i18n"
)

func TestMain(m *testing.M) {
	i18n.SetLang("en")
	os.Exit(m.Run())
}

type fakeController struct {
	toggles int
	resets  int
}

func (controller *fakeController) Toggle() { controller.toggles++ }
func (controller *fakeController) Reset()  { controller.resets++ }

func TestHandleKey(t *testing.T) {
	controller := &fakeController{}

	assert.False(t, handleKey(controller, ' '))
	assert.False(t, handleKey(controller, 'r'))
	assert.False(t, handleKey(controller, 'R'))
	assert.False(t, handleKey(controller, 'x'))
	assert.Equal(t, 1, controller.toggles)
	assert.Equal(t, 2, controller.resets)

	for _, key := range []byte{'q', 'Q', keyCtrlC, keyCtrlD} {
		assert.True(t, handleKey(controller, key), "key %d", key)
	}
}

func TestStatusLine(t *testing.T) {
	line := statusLine(session.Snapshot{
		Phase:       session.PhaseWork,
		Round:       3,
		TotalRounds: 8,
		Remaining:   75,
		Running:     true,
		Progress:    0.5,
	})

	assert.Contains(t, line, "WORK")
	assert.Contains(t, line, "01:15")
	assert.Contains(t, line, "Round 3/8")
	assert.Contains(t, line, "[##########----------]")

	paused := statusLine(session.Snapshot{Phase: session.PhaseRest, Round: 1, TotalRounds: 8, Remaining: 4})
	assert.Contains(t, paused, "REST (PAUSED)")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[----]", progressBar(0, 4))
	assert.Equal(t, "[####]", progressBar(1, 4))
	assert.Equal(t, "[####]", progressBar(3, 4))
	assert.Equal(t, "[##--]", progressBar(0.5, 4))
	assert.Equal(t, "[----]", progressBar(-1, 4))
}

func TestDriveRunsWorkoutToCompletion(t *testing.T) {
	keeper, err := timekeeper.New(model.WorkoutConfig{WorkSeconds: 2, RestSeconds: 1, Rounds: 2}, timekeeper.Config{
		TickInterval:       time.Millisecond,
		CompleteResetDelay: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(keeper.Close)

	var buf bytes.Buffer
	var seen []session.EventType
	events := keeper.Subscribe(64)
	keeper.Start()

	completed := drive(context.Background(), keeper, events, nil, newScreen(&buf), func(event session.Event) {
		seen = append(seen, event.Type)
	})

	assert.True(t, completed)
	assert.Contains(t, seen, session.EventRoundAdvanced)
	assert.Equal(t, session.EventCompleted, seen[len(seen)-1])
	assert.True(t, strings.HasSuffix(buf.String(), "Workout Complete!\r\n"))
}

func TestDriveQuitsOnKey(t *testing.T) {
	keys := make(chan byte, 1)
	keys <- 'q'
	controller := &fakeController{}
	var buf bytes.Buffer

	completed := drive(context.Background(), controller, make(chan session.Event), keys, newScreen(&buf))
	assert.False(t, completed)
	assert.Empty(t, buf.String())
}

func TestDriveStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completed := drive(ctx, &fakeController{}, make(chan session.Event), nil, newScreen(&bytes.Buffer{}))
	assert.False(t, completed)
}

func TestReadKeysForwardsUntilEOF(t *testing.T) {
	keys := make(chan byte, 8)
	readKeys(context.Background(), strings.NewReader(" rq"), keys)

	var got []byte
	for key := range keys {
		got = append(got, key)
	}
	assert.Equal(t, []byte(" rq"), got)
}

func TestReadKeysStopsWhenNobodyListens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan byte)
	done := make(chan struct{})
	go func() {
		defer close(done)
		readKeys(ctx, strings.NewReader("qqqq"), keys)
	}()

	assert.Equal(t, byte('q'), <-keys)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("readKeys kept blocking after cancel")
	}
	_, open := <-keys
	assert.False(t, open)
}
