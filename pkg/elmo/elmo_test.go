package elmo

import (
	"bytes"
	"image/jpeg"
	"reflect"
	"testing"
)

func TestClampPan(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-100, PanMin},
		{PanMin, PanMin},
		{0, 0},
		{PanMax, PanMax},
		{57, PanMax},
	}
	for _, tt := range tests {
		if got := ClampPan(tt.in); got != tt.want {
			t.Errorf("ClampPan(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampTilt(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-30, TiltMin},
		{-15, -15},
		{5, 5},
		{15, 15},
		{22, TiltMax},
	}
	for _, tt := range tests {
		if got := ClampTilt(tt.in); got != tt.want {
			t.Errorf("ClampTilt(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDebugChannelMovesClampAngles(t *testing.T) {
	ch := NewDebugChannel()
	ch.MovePan(90)
	ch.MoveTilt(-90)

	want := []string{"pan::40", "tilt::-15"}
	if got := ch.Sent(); !reflect.DeepEqual(got, want) {
		t.Errorf("sent = %v, want %v", got, want)
	}
}

func TestDebugChannelSideMoves(t *testing.T) {
	ch := NewDebugChannel()
	ch.MoveLeft()
	ch.MoveRight()

	want := []string{"pan::-30", "tilt::0", "pan::30", "tilt::0"}
	if got := ch.Sent(); !reflect.DeepEqual(got, want) {
		t.Errorf("sent = %v, want %v", got, want)
	}
}

func TestDefaultAngles(t *testing.T) {
	ch := NewDebugChannel()

	pan, tilt := ch.DefaultAngles(SideLeft)
	if pan != SeedPanLeft || tilt != SeedTiltLeft {
		t.Fatalf("left seed = (%d, %d), want (%d, %d)", pan, tilt, SeedPanLeft, SeedTiltLeft)
	}

	ch.SetDefaultAngles(SideLeft, -20, 5)
	pan, tilt = ch.DefaultAngles(SideLeft)
	if pan != -20 || tilt != 5 {
		t.Fatalf("after set = (%d, %d), want (-20, 5)", pan, tilt)
	}

	// Stored defaults stay inside the mechanical range.
	ch.SetDefaultAngles(SideRight, 70, -44)
	pan, tilt = ch.DefaultAngles(SideRight)
	if pan != PanMax || tilt != TiltMin {
		t.Fatalf("clamped set = (%d, %d), want (%d, %d)", pan, tilt, PanMax, TiltMin)
	}

	ch.ResetDefaults()
	pan, tilt = ch.DefaultAngles(SideRight)
	if pan != SeedPanRight || tilt != SeedTiltRight {
		t.Fatalf("after reset = (%d, %d), want (%d, %d)", pan, tilt, SeedPanRight, SeedTiltRight)
	}
}

func TestDebugChannelToggles(t *testing.T) {
	ch := NewDebugChannel()

	if ch.MotorsEnabled() {
		t.Fatal("motors should start disabled")
	}
	ch.ToggleMotors()
	if !ch.MotorsEnabled() {
		t.Fatal("motors should be enabled after toggle")
	}
	ch.ToggleMotors()
	if ch.MotorsEnabled() {
		t.Fatal("motors should be disabled after second toggle")
	}

	ch.ToggleBehaviour()
	if !ch.BehaviourEnabled() {
		t.Fatal("behaviour should be enabled after toggle")
	}

	want := []string{"motors::true", "motors::false", "behaviour::true"}
	if got := ch.Sent(); !reflect.DeepEqual(got, want) {
		t.Errorf("sent = %v, want %v", got, want)
	}
}

func TestDebugChannelCloseSignalsGameOff(t *testing.T) {
	ch := NewDebugChannel()
	if err := ch.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	sent := ch.Sent()
	if len(sent) != 1 || sent[0] != "game::off" {
		t.Errorf("sent = %v, want [game::off]", sent)
	}
}

func TestResetSent(t *testing.T) {
	ch := NewDebugChannel()
	ch.MovePan(0)
	ch.ResetSent()
	if got := ch.Sent(); len(got) != 0 {
		t.Errorf("sent after reset = %v, want empty", got)
	}
}

func TestSyntheticFrame(t *testing.T) {
	frame := SyntheticFrame()
	if len(frame) == 0 {
		t.Fatal("empty frame")
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("not a JPEG: %v", err)
	}
	if cfg.Width != FrameWidth || cfg.Height != FrameHeight {
		t.Errorf("frame is %dx%d, want %dx%d", cfg.Width, cfg.Height, FrameWidth, FrameHeight)
	}
}

func TestPlayerSideStrings(t *testing.T) {
	if SideLeft.String() != "left" || SideRight.String() != "right" {
		t.Errorf("side names = %q/%q, want left/right", SideLeft, SideRight)
	}
}
