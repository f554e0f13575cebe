// Package audio turns session cues into short sine beeps.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"tabata/internal/core/session"
)

const (
	highPitch = 1000.0
	lowPitch  = 800.0

	toneLength  = 300 * time.Millisecond
	toneSpacing = 200 * time.Millisecond
	toneVolume  = 0.3
)

// Plan describes the beeps played for a cue.
type Plan struct {
	Frequency float64
	Count     int
}

// PlanFor returns the beep plan for a cue. CueNone has no plan.
func PlanFor(cue session.Cue) (Plan, bool) {
	switch cue {
	case session.CueSingle:
		return Plan{Frequency: highPitch, Count: 1}, true
	case session.CueDouble:
		return Plan{Frequency: lowPitch, Count: 2}, true
	case session.CueTriple:
		return Plan{Frequency: highPitch, Count: 3}, true
	default:
		return Plan{}, false
	}
}

// Duration is the wall-clock length of the plan. Tones start toneSpacing
// apart and may overlap.
func (plan Plan) Duration() time.Duration {
	if plan.Count <= 0 {
		return 0
	}
	return time.Duration(plan.Count-1)*toneSpacing + toneLength
}

// Streamer renders the plan at the given sample rate.
func (plan Plan) Streamer(sampleRate beep.SampleRate) (beep.Streamer, error) {
	if plan.Count <= 0 {
		return nil, fmt.Errorf("render cue: empty plan")
	}

	tones := make([]beep.Streamer, 0, plan.Count)
	for i := 0; i < plan.Count; i++ {
		sine, err := generators.SineTone(sampleRate, plan.Frequency)
		if err != nil {
			return nil, fmt.Errorf("render cue: %w", err)
		}
		tone := &effects.Gain{
			Streamer: beep.Take(sampleRate.N(toneLength), sine),
			Gain:     toneVolume - 1,
		}
		offset := sampleRate.N(time.Duration(i) * toneSpacing)
		tones = append(tones, beep.Seq(beep.Silence(offset), tone))
	}
	return beep.Mix(tones...), nil
}
