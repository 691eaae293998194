// Package elmo provides the command channel to the Elmo robot.
//
// This package follows the Interface Segregation Principle (ISP) by defining
// small, focused interfaces that can be composed as needed. Consumers should
// depend only on the interfaces they actually use.
//
// All robot-facing operations are best-effort: a send either reaches the
// robot or it does not, and the caller is never told which. Failures are
// logged and swallowed so a flaky link can never abort a game turn.
package elmo

// Side identifies which player the robot head orients toward.
// Player 1 sits to the robot's left, player 2 to its right.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns a human-readable side name.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// HeadController provides head movement control.
// MoveLeft and MoveRight orient toward a side using that side's own stored
// default angles, which the centering controller refines turn over turn.
type HeadController interface {
	MovePan(angle int)
	MoveTilt(angle int)
	MoveLeft()
	MoveRight()
	DefaultAngles(s Side) (pan, tilt int)
	SetDefaultAngles(s Side, pan, tilt int)
	ResetDefaults()
}

// DisplayController drives the robot's screen and LED matrix.
type DisplayController interface {
	SetImage(name string)
	SetIcon(name string)
}

// AudioController plays named sound assets on the robot's speakers.
type AudioController interface {
	PlaySound(name string)
	IncreaseVolume()
	DecreaseVolume()
}

// CameraProvider captures frames from the robot's camera.
// Frames are JPEG, resized to FrameWidth x FrameHeight.
type CameraProvider interface {
	GrabImage() ([]byte, error)
}

// PrivilegedController toggles motor torque and autonomous behaviours
// through the robot's HTTP side channel.
type PrivilegedController interface {
	ToggleMotors()
	ToggleBehaviour()
	MotorsEnabled() bool
	BehaviourEnabled() bool
}

// GameNotifier mirrors game progress to the robot for display purposes.
// These are pure notifications with no feedback into game logic.
type GameNotifier interface {
	NotifyGame(value string)
	NotifyPlayer(player int)
	NotifyMove(move int)
	NotifyAccuracy(accuracy int)
	NotifyFeedbackMode(equal bool)
}

// Channel is the composite interface for full robot control.
// The game session depends on this; callers that only move the head or
// only poll the camera should depend on the narrower interfaces.
type Channel interface {
	HeadController
	DisplayController
	AudioController
	CameraProvider
	PrivilegedController
	GameNotifier
	Close() error
}

// Ensure both variants implement Channel.
var (
	_ Channel = (*UDPChannel)(nil)
	_ Channel = (*DebugChannel)(nil)
)
