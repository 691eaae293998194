// Package vision defines the contracts for the two external collaborators
// the game depends on: a face locator and an emotion recognizer. Both are
// black boxes; the game only relies on the input/output behavior here.
package vision

// Box is a detected face bounding box, normalized to the 0-1 range of the
// frame. The first box reported by a locator is the one the game uses.
type Box struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1), 0 when unknown
}

// Center returns the center point of the box.
func (b Box) Center() (x, y float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// FaceLocator finds faces in a JPEG frame. Zero boxes with a nil error
// means no face was visible; that is an expected condition, not a failure.
type FaceLocator interface {
	Locate(jpeg []byte) ([]Box, error)
}

// Distribution maps emotion labels to confidence in the 0-1 range.
type Distribution map[string]float64

// Confidence returns the confidence for a label and whether it was present.
func (d Distribution) Confidence(emotion string) (float64, bool) {
	v, ok := d[emotion]
	return v, ok
}

// Best returns the highest-confidence label, or "" for an empty distribution.
func (d Distribution) Best() (label string, confidence float64) {
	for k, v := range d {
		if label == "" || v > confidence || (v == confidence && k < label) {
			label, confidence = k, v
		}
	}
	return label, confidence
}

// Recognizer estimates the emotion shown in a JPEG frame.
//
// There is no timeout contract here: a hanging recognizer hangs its caller.
// Implementations that talk to a network service should accept a
// configurable timeout instead of imposing one silently.
type Recognizer interface {
	Analyze(jpeg []byte) (Distribution, error)
}
