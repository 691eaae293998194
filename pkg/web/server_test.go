package web

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaips/go-elmo/pkg/elmo"
	"github.com/gaips/go-elmo/pkg/game"
	"github.com/gaips/go-elmo/pkg/vision"
)

func newTestServer(t *testing.T) (*Server, *elmo.DebugChannel) {
	t.Helper()
	ch := elmo.NewDebugChannel()
	session := game.New(ch, &vision.StubRecognizer{}, nil, nil, game.Config{
		Rand: rand.New(rand.NewSource(1)),
	})
	return NewServer(":0", session, ch, nil), ch
}

func doJSON(t *testing.T, s *Server, method, path string, body []byte) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &out)
	}
	return resp.StatusCode, out
}

func TestHandleState(t *testing.T) {
	s, _ := newTestServer(t)

	code, body := doJSON(t, s, http.MethodGet, "/api/game/state", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["status"] != "idle" {
		t.Errorf("status field = %v, want idle", body["status"])
	}
	if body["running"] != false {
		t.Errorf("running field = %v, want false", body["running"])
	}
}

func TestHandleToggleFeedback(t *testing.T) {
	s, _ := newTestServer(t)

	code, body := doJSON(t, s, http.MethodPost, "/api/feedback/toggle", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["equal_feedback"] != false {
		t.Errorf("equal_feedback = %v, want false after first toggle", body["equal_feedback"])
	}
}

func TestHandlePanStoresSideDefault(t *testing.T) {
	s, ch := newTestServer(t)

	code, body := doJSON(t, s, http.MethodPost, "/api/head/pan",
		[]byte(`{"angle": -25, "side": "left"}`))
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["pan"] != float64(-25) {
		t.Errorf("pan = %v, want -25", body["pan"])
	}

	pan, tilt := ch.DefaultAngles(elmo.SideLeft)
	if pan != -25 || tilt != elmo.SeedTiltLeft {
		t.Errorf("left defaults = (%d, %d), want (-25, %d)", pan, tilt, elmo.SeedTiltLeft)
	}
}

func TestHandlePanWithoutSide(t *testing.T) {
	s, ch := newTestServer(t)

	code, _ := doJSON(t, s, http.MethodPost, "/api/head/pan", []byte(`{"angle": 10}`))
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	pan, _ := ch.DefaultAngles(elmo.SideLeft)
	if pan != elmo.SeedPanLeft {
		t.Errorf("left default pan = %d, want untouched seed %d", pan, elmo.SeedPanLeft)
	}
}

func TestHandlePanBadBody(t *testing.T) {
	s, _ := newTestServer(t)

	code, _ := doJSON(t, s, http.MethodPost, "/api/head/pan", []byte(`{angle`))
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestHandleRestartWhileIdle(t *testing.T) {
	s, _ := newTestServer(t)

	code, _ := doJSON(t, s, http.MethodPost, "/api/game/restart", nil)
	if code != http.StatusOK {
		t.Errorf("status = %d, want 200 when idle", code)
	}
}

func TestHandleFrame(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/frame", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("GET /api/frame: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Error("body is not a JPEG")
	}
}

func TestHandleResultsWithoutStore(t *testing.T) {
	s, _ := newTestServer(t)

	code, _ := doJSON(t, s, http.MethodGet, "/api/results", nil)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a store", code)
	}
}

func TestHandleVolume(t *testing.T) {
	s, ch := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/api/volume/up", nil)
	doJSON(t, s, http.MethodPost, "/api/volume/down", nil)

	sent := ch.Sent()
	if len(sent) != 2 || sent[0] != "speakers::increaseVolume" || sent[1] != "speakers::decreaseVolume" {
		t.Errorf("sent = %v, want volume commands", sent)
	}
}
