package elmo

import (
	"net"
	"testing"
	"time"
)

// newLoopbackChannel binds a local UDP listener and opens a channel against
// it in connect mode, so no HTTP side channel or camera stream is touched.
func newLoopbackChannel(t *testing.T) (*UDPChannel, *net.UDPConn) {
	t.Helper()

	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	port := listener.LocalAddr().(*net.UDPAddr).Port
	ch, err := NewUDPChannel(Config{ElmoIP: "127.0.0.1", Port: port, ConnectMode: true})
	if err != nil {
		t.Fatalf("NewUDPChannel: %v", err)
	}
	t.Cleanup(func() { _ = ch.Close() })

	return ch, listener
}

func readDatagram(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(buf[:n])
}

func TestUDPChannelStartupSequence(t *testing.T) {
	_, listener := newLoopbackChannel(t)

	// The constructor puts the robot in its idle state.
	if got := readDatagram(t, listener); got != "image::normal.png" {
		t.Errorf("first datagram = %q, want image::normal.png", got)
	}
	if got := readDatagram(t, listener); got != "icon::black.png" {
		t.Errorf("second datagram = %q, want icon::black.png", got)
	}
}

func TestUDPChannelSendsClampedAngles(t *testing.T) {
	ch, listener := newLoopbackChannel(t)
	readDatagram(t, listener)
	readDatagram(t, listener)

	ch.MovePan(99)
	if got := readDatagram(t, listener); got != "pan::40" {
		t.Errorf("datagram = %q, want pan::40", got)
	}

	ch.MoveTilt(-99)
	if got := readDatagram(t, listener); got != "tilt::-15" {
		t.Errorf("datagram = %q, want tilt::-15", got)
	}
}

func TestUDPChannelConnectModeFrames(t *testing.T) {
	ch, _ := newLoopbackChannel(t)

	frame, err := ch.GrabImage()
	if err != nil {
		t.Fatalf("GrabImage: %v", err)
	}
	if len(frame) == 0 {
		t.Fatal("empty frame in connect mode")
	}
}

func TestUDPChannelImageList(t *testing.T) {
	ch, listener := newLoopbackChannel(t)
	readDatagram(t, listener)
	readDatagram(t, listener)

	go func() {
		buf := make([]byte, 1024)
		n, remote, err := listener.ReadFromUDP(buf)
		if err != nil || string(buf[:n]) != "getImage::list" {
			return
		}
		_, _ = listener.WriteToUDP([]byte(`["normal.png","blush.png"]`), remote)
	}()

	images, err := ch.ImageList()
	if err != nil {
		t.Fatalf("ImageList: %v", err)
	}
	if len(images) != 2 || images[0] != "normal.png" || images[1] != "blush.png" {
		t.Errorf("images = %v, want [normal.png blush.png]", images)
	}
}
