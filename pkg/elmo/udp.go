package elmo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gaips/go-elmo/internal/config"
	"github.com/gaips/go-elmo/internal/httpc"
	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/protocol"
	"gocv.io/x/gocv"
)

// Config holds the settings for a real robot link.
type Config struct {
	// ElmoIP is the robot's address on the LAN.
	ElmoIP string

	// Port is the UDP port the robot's dispatcher listens on.
	Port int

	// ConnectMode disables the privileged HTTP side channel and the remote
	// camera stream; frames are synthetic. Used when driving a robot that
	// exposes only the command socket.
	ConnectMode bool
}

// DefaultConfig returns the standard robot link settings.
func DefaultConfig(elmoIP string) Config {
	return Config{
		ElmoIP: elmoIP,
		Port:   config.DefaultCommandPort,
	}
}

// UDPChannel is the real command channel: one text datagram per command,
// best-effort, no acknowledgement. Privileged operations go over a separate
// HTTP side channel with a 1-second timeout; camera frames come from the
// robot's MJPEG stream.
type UDPChannel struct {
	cfg        Config
	conn       *net.UDPConn
	commandURL string
	streamURL  string

	defaults defaultStore

	mu        sync.Mutex
	motors    bool
	behaviour bool
}

// NewUDPChannel opens the command socket and puts the robot in its idle
// state: behaviours off, torque off, neutral face.
func NewUDPChannel(cfg Config) (*UDPChannel, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.ElmoIP, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("resolve robot address: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("open command socket: %w", err)
	}

	c := &UDPChannel{
		cfg:        cfg,
		conn:       conn,
		commandURL: config.CommandURL(cfg.ElmoIP),
		streamURL:  config.StreamURL(cfg.ElmoIP),
		defaults:   newDefaultStore(),
	}

	// Motors and autonomous behaviours start disabled so the robot holds
	// still until the operator enables them.
	c.requestCommand("enable_behaviour", map[string]any{"name": "look_around", "control": false})
	c.requestCommand("set_tilt_torque", map[string]any{"control": false})
	c.requestCommand("set_pan_torque", map[string]any{"control": false})

	c.SetImage("normal.png")
	c.SetIcon("black.png")
	return c, nil
}

// send writes one datagram. Failures are logged and swallowed: the link is
// best-effort and the game must not stall on a lost packet.
func (c *UDPChannel) send(msg string) {
	log.Debug("elmo send", "message", msg)
	if _, err := c.conn.Write([]byte(msg)); err != nil {
		log.Error("command send failed", "message", msg, "error", err)
	}
}

// requestCommand posts a privileged operation to the HTTP side channel.
// Disabled in connect mode. Failures are logged, never raised.
func (c *UDPChannel) requestCommand(op string, params map[string]any) {
	if c.cfg.ConnectMode {
		return
	}

	body := map[string]any{"op": op}
	for k, v := range params {
		body[k] = v
	}
	data, err := json.Marshal(body)
	if err != nil {
		log.Error("side channel marshal failed", "op", op, "error", err)
		return
	}

	resp, err := httpc.Command.Post(c.commandURL, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Error("side channel request failed", "op", op, "error", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error("side channel decode failed", "op", op, "error", err)
		return
	}
	if !result.Success {
		log.Error("side channel command rejected", "op", op, "message", result.Message)
	}
}

// MovePan moves the head to the given pan angle, clamped to limits.
func (c *UDPChannel) MovePan(angle int) {
	c.send(protocol.FormatInt(protocol.CmdPan, ClampPan(angle)))
}

// MoveTilt moves the head to the given tilt angle, clamped to limits.
func (c *UDPChannel) MoveTilt(angle int) {
	c.send(protocol.FormatInt(protocol.CmdTilt, ClampTilt(angle)))
}

// MoveLeft orients toward player 1 using the left side's stored defaults.
func (c *UDPChannel) MoveLeft() {
	pan, tilt := c.defaults.get(SideLeft)
	c.MovePan(pan)
	c.MoveTilt(tilt)
}

// MoveRight orients toward player 2 using the right side's stored defaults.
func (c *UDPChannel) MoveRight() {
	pan, tilt := c.defaults.get(SideRight)
	c.MovePan(pan)
	c.MoveTilt(tilt)
}

// DefaultAngles returns the stored default pan/tilt for a side.
func (c *UDPChannel) DefaultAngles(s Side) (pan, tilt int) {
	return c.defaults.get(s)
}

// SetDefaultAngles stores new default angles for a side, clamped to limits.
func (c *UDPChannel) SetDefaultAngles(s Side, pan, tilt int) {
	c.defaults.set(s, pan, tilt)
}

// ResetDefaults restores the seed orientations for both sides.
func (c *UDPChannel) ResetDefaults() {
	c.defaults.reset()
}

// SetImage shows a full-screen image by asset name.
func (c *UDPChannel) SetImage(name string) {
	c.send(protocol.Format(protocol.CmdImage, name))
}

// SetIcon shows an icon on the LED matrix by asset name.
func (c *UDPChannel) SetIcon(name string) {
	c.send(protocol.Format(protocol.CmdIcon, name))
}

// PlaySound plays a named sound asset on the robot.
func (c *UDPChannel) PlaySound(name string) {
	c.send(protocol.Format(protocol.CmdSound, name))
}

// IncreaseVolume raises speaker volume one step.
func (c *UDPChannel) IncreaseVolume() {
	c.send(protocol.Format(protocol.CmdSpeakers, protocol.IncreaseVolume))
}

// DecreaseVolume lowers speaker volume one step.
func (c *UDPChannel) DecreaseVolume() {
	c.send(protocol.Format(protocol.CmdSpeakers, protocol.DecreaseVolume))
}

// GrabImage captures one frame from the robot camera, resized to
// FrameWidth x FrameHeight JPEG. In connect mode a synthetic frame is
// returned instead.
func (c *UDPChannel) GrabImage() ([]byte, error) {
	if c.cfg.ConnectMode {
		return SyntheticFrame(), nil
	}

	jpg, err := c.readStreamFrame()
	if err != nil {
		return nil, fmt.Errorf("grab image: %w", err)
	}
	return resizeJPEG(jpg, FrameWidth, FrameHeight)
}

// readStreamFrame pulls bytes from the MJPEG stream until one complete
// JPEG (SOI..EOI) has been seen.
func (c *UDPChannel) readStreamFrame() ([]byte, error) {
	resp, err := httpc.Client.Get(c.streamURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	var buf []byte
	chunk := make([]byte, 1024)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			start := bytes.Index(buf, []byte{0xff, 0xd8})
			end := bytes.Index(buf, []byte{0xff, 0xd9})
			if start != -1 && end != -1 && end > start {
				return buf[start : end+2], nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("stream ended before a full frame")
			}
			return nil, err
		}
	}
}

// resizeJPEG decodes, resizes and re-encodes a JPEG frame.
func resizeJPEG(jpg []byte, width, height int) ([]byte, error) {
	img, err := gocv.IMDecode(jpg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)

	out, err := gocv.IMEncode(".jpg", resized)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer out.Close()
	data := make([]byte, len(out.GetBytes()))
	copy(data, out.GetBytes())
	return data, nil
}

// ToggleMotors flips motor torque through the side channel and mirrors the
// state to the robot display.
func (c *UDPChannel) ToggleMotors() {
	c.mu.Lock()
	c.motors = !c.motors
	enabled := c.motors
	c.mu.Unlock()

	c.send(protocol.FormatBool(protocol.CmdMotors, enabled))
	c.requestCommand("set_tilt_torque", map[string]any{"control": enabled})
	c.requestCommand("set_pan_torque", map[string]any{"control": enabled})
}

// ToggleBehaviour flips the look-around autonomous behaviour.
func (c *UDPChannel) ToggleBehaviour() {
	c.mu.Lock()
	c.behaviour = !c.behaviour
	enabled := c.behaviour
	c.mu.Unlock()

	c.send(protocol.FormatBool(protocol.CmdBehaviour, enabled))
	c.requestCommand("enable_behaviour", map[string]any{"name": "look_around", "control": enabled})
}

// MotorsEnabled reports whether motor torque is on.
func (c *UDPChannel) MotorsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.motors
}

// BehaviourEnabled reports whether the autonomous behaviour is on.
func (c *UDPChannel) BehaviourEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.behaviour
}

// NotifyGame mirrors a game lifecycle event to the robot.
func (c *UDPChannel) NotifyGame(value string) {
	c.send(protocol.Format(protocol.CmdGame, value))
}

// NotifyPlayer mirrors the active player.
func (c *UDPChannel) NotifyPlayer(player int) {
	c.send(protocol.FormatInt(protocol.CmdPlayer, player))
}

// NotifyMove mirrors the move counter.
func (c *UDPChannel) NotifyMove(move int) {
	c.send(protocol.FormatInt(protocol.CmdMove, move))
}

// NotifyAccuracy mirrors the last turn's accuracy.
func (c *UDPChannel) NotifyAccuracy(accuracy int) {
	c.send(protocol.FormatInt(protocol.CmdAccuracy, accuracy))
}

// NotifyFeedbackMode mirrors the feedback mode.
func (c *UDPChannel) NotifyFeedbackMode(equal bool) {
	c.send(protocol.FormatBool(protocol.CmdFeedback, equal))
}

// ImageList queries the dispatcher for its image identifiers. This is the
// only command with a reply; one second without one counts as lost.
func (c *UDPChannel) ImageList() ([]string, error) {
	c.send(protocol.Format(protocol.CmdGetImage, "list"))

	if err := c.conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		return nil, err
	}
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("image list reply: %w", err)
	}

	var images []string
	if err := json.Unmarshal(buf[:n], &images); err != nil {
		return nil, fmt.Errorf("image list decode: %w", err)
	}
	return images, nil
}

// Close tells the robot the game is over and releases the socket.
func (c *UDPChannel) Close() error {
	c.NotifyGame(protocol.GameOff)
	return c.conn.Close()
}
