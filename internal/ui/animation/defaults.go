package animation

import (
	"image/color"
	"time"
)

// DefaultConfig returns the timings used by the timer window.
func DefaultConfig() Config {
	return Config{
		RoundPulseDuration:  600 * time.Millisecond,
		RoundPulseScale:     1.4,
		CelebrationDuration: 3 * time.Second,
		CelebrationInterval: Range{
			Min: 120 * time.Millisecond,
			Max: 220 * time.Millisecond,
		},
		Palette: []color.Color{
			color.NRGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
			color.NRGBA{R: 0xe6, G: 0x7e, B: 0x22, A: 0xff},
			color.NRGBA{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff},
			color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
			color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
		},
	}
}
