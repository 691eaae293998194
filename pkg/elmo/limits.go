package elmo

// Mechanical limits of the Elmo head, in degrees. Out-of-range setpoints
// are clamped, never rejected: the game should keep moving even when the
// centering math wanders.
const (
	PanMin  = -40
	PanMax  = 40
	TiltMin = -15
	TiltMax = 15
)

// Camera frame dimensions. Every implementation resizes (or synthesizes)
// frames to this size, so downstream pixel math can rely on it.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// ClampPan limits a pan angle to the mechanical range.
func ClampPan(angle int) int {
	return clamp(angle, PanMin, PanMax)
}

// ClampTilt limits a tilt angle to the mechanical range.
func ClampTilt(angle int) int {
	return clamp(angle, TiltMin, TiltMax)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
