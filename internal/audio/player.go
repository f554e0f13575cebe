package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"tabata/internal/core/session"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cue beeps on the default output device.
type Player struct {
	mu      sync.Mutex
	ready   bool
	enabled bool
}

// NewPlayer initializes the speaker. If that fails the player stays
// silent and the application keeps running.
func NewPlayer(enabled bool) *Player {
	player := &Player{enabled: enabled}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: disabled, failed to initialize speaker: %v", err)
		return player
	}
	player.ready = true
	return player
}

// SetEnabled mutes or unmutes cue playback.
func (player *Player) SetEnabled(enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.enabled = enabled
}

// Handle plays the cue carried by a session event.
func (player *Player) Handle(event session.Event) {
	player.Play(event.Cue)
}

// Play plays a cue if sound is enabled.
func (player *Player) Play(cue session.Cue) {
	plan, ok := PlanFor(cue)
	if !ok {
		return
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready || !player.enabled {
		return
	}

	streamer, err := plan.Streamer(sampleRate)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	speaker.Play(streamer)
}

// Close releases the output device.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.ready {
		speaker.Close()
		player.ready = false
	}
}
