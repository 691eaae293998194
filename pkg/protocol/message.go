// Package protocol defines the text command protocol spoken over the UDP
// link between the controller and the robot's onboard dispatcher.
//
// Every message is a single best-effort datagram of the form
// "command::value". There is no delivery guarantee, no ordering and, except
// for the getImage query, no reply.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command identifies a robot command.
type Command string

const (
	// Actuation
	CmdPan  Command = "pan"  // head pan angle, degrees
	CmdTilt Command = "tilt" // head tilt angle, degrees

	// Display and audio
	CmdImage    Command = "image"    // full-screen image by name
	CmdIcon     Command = "icon"     // LED matrix icon by name
	CmdSound    Command = "sound"    // play sound file by name
	CmdSpeakers Command = "speakers" // increaseVolume | decreaseVolume

	// Mode toggles (state mirrored to the robot for display only)
	CmdMotors    Command = "motors"
	CmdBehaviour Command = "behaviour"
	CmdAttention Command = "attention"
	CmdFeedback  Command = "feedback"

	// Game lifecycle notifications
	CmdGame     Command = "game" // on | off | loop | end
	CmdPlayer   Command = "player"
	CmdMove     Command = "move"
	CmdAccuracy Command = "accuracy"

	// Query: replies with the list of image identifiers
	CmdGetImage Command = "getImage"
)

// Speaker values.
const (
	IncreaseVolume = "increaseVolume"
	DecreaseVolume = "decreaseVolume"
)

// Game values.
const (
	GameOn   = "on"
	GameOff  = "off"
	GameLoop = "loop"
	GameEnd  = "end"
)

// separator joins command and value on the wire.
const separator = "::"

// known is the set of commands the dispatcher accepts.
var known = map[Command]bool{
	CmdPan: true, CmdTilt: true,
	CmdImage: true, CmdIcon: true, CmdSound: true, CmdSpeakers: true,
	CmdMotors: true, CmdBehaviour: true, CmdAttention: true, CmdFeedback: true,
	CmdGame: true, CmdPlayer: true, CmdMove: true, CmdAccuracy: true,
	CmdGetImage: true,
}

// Known reports whether c is a recognized command.
func Known(c Command) bool {
	return known[c]
}

// Message is one decoded datagram.
type Message struct {
	Command Command
	Value   string
}

// Format encodes the message for the wire.
func Format(cmd Command, value string) string {
	return string(cmd) + separator + value
}

// FormatInt encodes a command carrying an integer value.
func FormatInt(cmd Command, value int) string {
	return Format(cmd, strconv.Itoa(value))
}

// FormatBool encodes a command carrying a boolean value.
func FormatBool(cmd Command, value bool) string {
	return Format(cmd, strconv.FormatBool(value))
}

// Parse decodes a datagram. Unknown commands parse successfully so the
// dispatcher can log them; callers check Known to decide whether to act.
func Parse(data string) (Message, error) {
	parts := strings.SplitN(data, separator, 2)
	if len(parts) != 2 {
		return Message{}, fmt.Errorf("malformed message %q: want command::value", data)
	}
	return Message{Command: Command(parts[0]), Value: parts[1]}, nil
}

// IntValue parses the message value as an integer.
func (m Message) IntValue() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(m.Value))
	if err != nil {
		return 0, fmt.Errorf("command %s: non-integer value %q", m.Command, m.Value)
	}
	return v, nil
}

// BoolValue parses the message value as a boolean. The dispatcher accepts
// both "true"/"false" and "True"/"False".
func (m Message) BoolValue() (bool, error) {
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(m.Value)))
	if err != nil {
		return false, fmt.Errorf("command %s: non-boolean value %q", m.Command, m.Value)
	}
	return v, nil
}

// String returns the wire form of the message.
func (m Message) String() string {
	return Format(m.Command, m.Value)
}
