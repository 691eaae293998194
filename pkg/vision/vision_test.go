package vision

import (
	"errors"
	"testing"
)

func TestBoxCenter(t *testing.T) {
	b := Box{X: 0.25, Y: 0.5, W: 0.5, H: 0.25}
	x, y := b.Center()
	if x != 0.5 || y != 0.625 {
		t.Errorf("Center = (%v, %v), want (0.5, 0.625)", x, y)
	}
}

func TestDistributionConfidence(t *testing.T) {
	d := Distribution{"happy": 0.9, "sad": 0.1}

	v, ok := d.Confidence("happy")
	if !ok || v != 0.9 {
		t.Errorf("Confidence(happy) = (%v, %v), want (0.9, true)", v, ok)
	}

	if _, ok := d.Confidence("fear"); ok {
		t.Error("Confidence(fear) reported present for a missing label")
	}
}

func TestDistributionBest(t *testing.T) {
	d := Distribution{"angry": 0.2, "happy": 0.7, "sad": 0.1}
	label, conf := d.Best()
	if label != "happy" || conf != 0.7 {
		t.Errorf("Best = (%q, %v), want (happy, 0.7)", label, conf)
	}
}

func TestDistributionBestTie(t *testing.T) {
	d := Distribution{"surprise": 0.5, "fear": 0.5}
	label, _ := d.Best()
	if label != "fear" {
		t.Errorf("Best tie = %q, want fear", label)
	}
}

func TestDistributionBestEmpty(t *testing.T) {
	label, conf := Distribution{}.Best()
	if label != "" || conf != 0 {
		t.Errorf("Best of empty = (%q, %v), want (\"\", 0)", label, conf)
	}
}

func TestStubRecognizerQueue(t *testing.T) {
	s := &StubRecognizer{Queue: []Distribution{
		{"happy": 0.1},
		{"happy": 0.9},
	}}

	for i, want := range []float64{0.1, 0.9, 0.9} {
		d, err := s.Analyze(nil)
		if err != nil {
			t.Fatalf("Analyze #%d: %v", i, err)
		}
		if v, _ := d.Confidence("happy"); v != want {
			t.Errorf("Analyze #%d = %v, want %v", i, v, want)
		}
	}
	if s.Calls() != 3 {
		t.Errorf("Calls = %d, want 3", s.Calls())
	}
}

func TestStubRecognizerError(t *testing.T) {
	s := &StubRecognizer{Err: errors.New("service down")}
	if _, err := s.Analyze(nil); err == nil {
		t.Error("want error")
	}
}

func TestStubLocator(t *testing.T) {
	boxes := []Box{{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}}
	s := &StubLocator{Boxes: boxes}
	got, err := s.Locate(nil)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if len(got) != 1 || got[0] != boxes[0] {
		t.Errorf("Locate = %v, want %v", got, boxes)
	}
}
