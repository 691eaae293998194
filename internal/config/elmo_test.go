package config

import "testing"

func TestElmoIP(t *testing.T) {
	t.Setenv("ELMO_IP", "")
	if got := ElmoIP("10.0.0.5"); got != "10.0.0.5" {
		t.Errorf("got %q, want fallback", got)
	}

	t.Setenv("ELMO_IP", "192.168.0.102")
	if got := ElmoIP("10.0.0.5"); got != "192.168.0.102" {
		t.Errorf("got %q, want env value", got)
	}
}

func TestCommandURL(t *testing.T) {
	want := "http://192.168.0.102:8001/command"
	if got := CommandURL("192.168.0.102"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStreamURL(t *testing.T) {
	want := "http://192.168.0.102:8080/stream.mjpg"
	if got := StreamURL("192.168.0.102"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
