package animation

import "image/color"

// Frame is one visual state pushed to the timer window.
// The zero Frame restores the normal look.
type Frame struct {
	// RoundScale multiplies the round counter text size. 0 means 1.
	RoundScale float32
	// Accent replaces the phase background colour when set.
	Accent color.Color
}

// Scale returns the effective round text multiplier.
func (frame Frame) Scale() float32 {
	if frame.RoundScale <= 0 {
		return 1
	}
	return frame.RoundScale
}
