// Robot-side command dispatcher. Binds the UDP command port, parses
// command::value datagrams and applies them to the actuator backend.
// Run with --debug to parse and log without touching actuators.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/protocol"
)

func main() {
	var (
		bind     = flag.String("bind", ":4000", "UDP address to listen on")
		debug    = flag.Bool("debug", false, "log commands without acting on them")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()
	log.Init(*logLevel)

	addr, err := net.ResolveUDPAddr("udp", *bind)
	if err != nil {
		log.Error("resolve bind address", "error", err)
		os.Exit(1)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Error("bind command port", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("dispatcher listening", "addr", *bind, "debug", *debug)

	d := &dispatcher{
		conn:      conn,
		actuators: actuators{debug: *debug},
	}
	d.serve()
}

type dispatcher struct {
	conn      *net.UDPConn
	actuators actuators
}

// serve reads one datagram at a time until the game::off command or a
// socket error.
func (d *dispatcher) serve() {
	buf := make([]byte, 1024)
	for {
		n, remote, err := d.conn.ReadFromUDP(buf)
		if err != nil {
			log.Error("read failed", "error", err)
			return
		}

		data := string(buf[:n])
		msg, err := protocol.Parse(data)
		if err != nil {
			// Malformed input never changes state.
			log.Warn("ignoring malformed message", "data", data)
			continue
		}
		if !protocol.Known(msg.Command) {
			log.Warn("ignoring unknown command", "command", string(msg.Command))
			continue
		}

		if done := d.dispatch(msg, remote); done {
			return
		}
	}
}

// dispatch applies one message. Returns true when the game is over and the
// dispatcher should exit.
func (d *dispatcher) dispatch(msg protocol.Message, remote *net.UDPAddr) bool {
	log.Debug("command received", "command", string(msg.Command), "value", msg.Value)

	switch msg.Command {
	case protocol.CmdPan:
		angle, err := msg.IntValue()
		if err != nil {
			log.Warn("bad pan value", "error", err)
			return false
		}
		d.actuators.setPan(angle)

	case protocol.CmdTilt:
		angle, err := msg.IntValue()
		if err != nil {
			log.Warn("bad tilt value", "error", err)
			return false
		}
		d.actuators.setTilt(angle)

	case protocol.CmdImage:
		d.actuators.showImage(msg.Value)

	case protocol.CmdIcon:
		d.actuators.showIcon(msg.Value)

	case protocol.CmdSound:
		d.actuators.playSound(msg.Value)

	case protocol.CmdSpeakers:
		switch msg.Value {
		case protocol.IncreaseVolume:
			d.actuators.adjustVolume(+10)
		case protocol.DecreaseVolume:
			d.actuators.adjustVolume(-10)
		default:
			log.Warn("bad speakers value", "value", msg.Value)
		}

	case protocol.CmdGetImage:
		reply, err := json.Marshal(d.actuators.imageList())
		if err == nil {
			if _, err := d.conn.WriteToUDP(reply, remote); err != nil {
				log.Error("image list reply failed", "error", err)
			}
		}

	case protocol.CmdGame:
		if msg.Value == protocol.GameOff {
			log.Info("game over, shutting down")
			return true
		}

	default:
		// Progress mirrors (player, move, accuracy, motors, behaviour,
		// attention, feedback) are display-only; nothing to actuate here.
	}
	return false
}

// actuators is the hardware-facing half of the dispatcher. The real robot
// build wires these to the middleware; the debug build just logs.
type actuators struct {
	debug  bool
	volume int
}

func (a *actuators) setPan(angle int) {
	a.act("pan", fmt.Sprintf("%d", angle))
}

func (a *actuators) setTilt(angle int) {
	a.act("tilt", fmt.Sprintf("%d", angle))
}

func (a *actuators) showImage(name string) {
	a.act("image", name)
}

func (a *actuators) showIcon(name string) {
	a.act("icon", name)
}

func (a *actuators) playSound(name string) {
	a.act("sound", name)
}

func (a *actuators) adjustVolume(delta int) {
	a.volume += delta
	if a.volume < 0 {
		a.volume = 0
	}
	if a.volume > 100 {
		a.volume = 100
	}
	a.act("volume", fmt.Sprintf("%d", a.volume))
}

func (a *actuators) imageList() []string {
	return []string{
		"normal.png", "blush.png", "star.png",
		"emotions/angry.png", "emotions/disgust.png", "emotions/fear.png",
		"emotions/happy.png", "emotions/sad.png", "emotions/surprise.png",
		"emotions/neutral.png",
	}
}

func (a *actuators) act(what, value string) {
	if a.debug {
		log.Info("debug actuator", "actuator", what, "value", value)
		return
	}
	log.Info("actuate", "actuator", what, "value", value)
}
