package elmo

import (
	"sync"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/protocol"
)

// DebugChannel implements Channel with no network I/O. Commands are logged
// and recorded; frames are synthetic. Used for development without a robot
// and as the stub in tests.
type DebugChannel struct {
	defaults defaultStore

	mu        sync.Mutex
	motors    bool
	behaviour bool
	sent      []string
}

// NewDebugChannel creates a log-only channel.
func NewDebugChannel() *DebugChannel {
	return &DebugChannel{defaults: newDefaultStore()}
}

func (c *DebugChannel) send(msg string) {
	log.Debug("elmo send (debug mode)", "message", msg)
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
}

// Sent returns a copy of every message recorded so far.
func (c *DebugChannel) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

// ResetSent clears the recorded messages.
func (c *DebugChannel) ResetSent() {
	c.mu.Lock()
	c.sent = nil
	c.mu.Unlock()
}

func (c *DebugChannel) MovePan(angle int) {
	c.send(protocol.FormatInt(protocol.CmdPan, ClampPan(angle)))
}

func (c *DebugChannel) MoveTilt(angle int) {
	c.send(protocol.FormatInt(protocol.CmdTilt, ClampTilt(angle)))
}

func (c *DebugChannel) MoveLeft() {
	pan, tilt := c.defaults.get(SideLeft)
	c.MovePan(pan)
	c.MoveTilt(tilt)
}

func (c *DebugChannel) MoveRight() {
	pan, tilt := c.defaults.get(SideRight)
	c.MovePan(pan)
	c.MoveTilt(tilt)
}

func (c *DebugChannel) DefaultAngles(s Side) (pan, tilt int) {
	return c.defaults.get(s)
}

func (c *DebugChannel) SetDefaultAngles(s Side, pan, tilt int) {
	c.defaults.set(s, pan, tilt)
}

func (c *DebugChannel) ResetDefaults() {
	c.defaults.reset()
}

func (c *DebugChannel) SetImage(name string) {
	c.send(protocol.Format(protocol.CmdImage, name))
}

func (c *DebugChannel) SetIcon(name string) {
	c.send(protocol.Format(protocol.CmdIcon, name))
}

func (c *DebugChannel) PlaySound(name string) {
	c.send(protocol.Format(protocol.CmdSound, name))
}

func (c *DebugChannel) IncreaseVolume() {
	c.send(protocol.Format(protocol.CmdSpeakers, protocol.IncreaseVolume))
}

func (c *DebugChannel) DecreaseVolume() {
	c.send(protocol.Format(protocol.CmdSpeakers, protocol.DecreaseVolume))
}

func (c *DebugChannel) GrabImage() ([]byte, error) {
	return SyntheticFrame(), nil
}

func (c *DebugChannel) ToggleMotors() {
	c.mu.Lock()
	c.motors = !c.motors
	enabled := c.motors
	c.mu.Unlock()
	c.send(protocol.FormatBool(protocol.CmdMotors, enabled))
}

func (c *DebugChannel) ToggleBehaviour() {
	c.mu.Lock()
	c.behaviour = !c.behaviour
	enabled := c.behaviour
	c.mu.Unlock()
	c.send(protocol.FormatBool(protocol.CmdBehaviour, enabled))
}

func (c *DebugChannel) MotorsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.motors
}

func (c *DebugChannel) BehaviourEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.behaviour
}

func (c *DebugChannel) NotifyGame(value string) {
	c.send(protocol.Format(protocol.CmdGame, value))
}

func (c *DebugChannel) NotifyPlayer(player int) {
	c.send(protocol.FormatInt(protocol.CmdPlayer, player))
}

func (c *DebugChannel) NotifyMove(move int) {
	c.send(protocol.FormatInt(protocol.CmdMove, move))
}

func (c *DebugChannel) NotifyAccuracy(accuracy int) {
	c.send(protocol.FormatInt(protocol.CmdAccuracy, accuracy))
}

func (c *DebugChannel) NotifyFeedbackMode(equal bool) {
	c.send(protocol.FormatBool(protocol.CmdFeedback, equal))
}

func (c *DebugChannel) Close() error {
	c.send(protocol.Format(protocol.CmdGame, protocol.GameOff))
	return nil
}
