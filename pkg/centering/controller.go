// Package centering nudges a player's stored default head angles so their
// face converges toward frame center over repeated turns.
//
// The update is a damped proportional step, not a one-shot correction: each
// turn moves the stored bias a fraction of the remaining offset, and the
// bias accumulates across turns within a session.
package centering

import (
	"math"
	"time"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/elmo"
	"github.com/gaips/go-elmo/pkg/vision"
)

// Damping gains. The horizontal axis converges faster than the vertical
// because pan has twice the mechanical range of tilt.
const (
	panDivisor  = 4.0 * 3.0
	tiltDivisor = 8.0 * 3.0
)

// Config holds centering settings.
type Config struct {
	// SettleDelay is the wait between the pan move and the tilt move, so
	// the first axis stops shaking before the second starts.
	SettleDelay time.Duration

	// FrameWidth and FrameHeight are the pixel dimensions frames arrive in.
	FrameWidth  int
	FrameHeight int
}

// DefaultConfig returns production centering settings.
func DefaultConfig() Config {
	return Config{
		SettleDelay: 2 * time.Second,
		FrameWidth:  elmo.FrameWidth,
		FrameHeight: elmo.FrameHeight,
	}
}

// Controller refines per-side default angles from face positions.
type Controller struct {
	locator vision.FaceLocator
	head    elmo.HeadController
	cfg     Config

	sleep func(time.Duration)
}

// New creates a centering controller.
func New(locator vision.FaceLocator, head elmo.HeadController, cfg Config) *Controller {
	return &Controller{
		locator: locator,
		head:    head,
		cfg:     cfg,
		sleep:   time.Sleep,
	}
}

// Delta computes the damped pan/tilt adjustment for a face box.
// Exposed separately so the math is testable without a channel.
func Delta(box vision.Box, frameW, frameH int) (dPan, dTilt int) {
	cx, cy := box.Center()
	dx := float64(frameW)/2 - cx*float64(frameW)
	dy := float64(frameH)/2 - cy*float64(frameH)
	return int(math.Round(dx / panDivisor)), int(math.Round(dy / tiltDivisor))
}

// Center locates the player's face in the frame and refines that side's
// stored default angles, then physically moves pan and tilt. If no face is
// found the condition is logged and nothing changes; errors never reach the
// caller.
func (c *Controller) Center(frame []byte, side elmo.Side) {
	boxes, err := c.locator.Locate(frame)
	if err != nil {
		log.Error("cannot center player: face location failed", "side", side, "error", err)
		return
	}
	if len(boxes) == 0 {
		log.Error("cannot center player: no faces detected", "side", side)
		return
	}

	dPan, dTilt := Delta(boxes[0], c.cfg.FrameWidth, c.cfg.FrameHeight)

	pan, tilt := c.head.DefaultAngles(side)
	newPan := elmo.ClampPan(pan + dPan)
	newTilt := elmo.ClampTilt(tilt - dTilt)

	c.head.SetDefaultAngles(side, newPan, newTilt)

	c.head.MovePan(newPan)
	c.sleep(c.cfg.SettleDelay)
	c.head.MoveTilt(newTilt)

	log.Info("player centered",
		"side", side,
		"pan_adjustment", dPan,
		"tilt_adjustment", -dTilt,
		"pan", newPan,
		"tilt", newTilt,
	)
}
