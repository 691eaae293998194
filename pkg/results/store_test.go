package results

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gaips/go-elmo/pkg/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("want error for blank path")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	ended := started.Add(8 * time.Minute)

	if err := store.StartSession("s-1", started, true); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	turns := []struct {
		move     int
		player   game.Player
		emotion  string
		accuracy int
	}{
		{0, game.Player1, "happy", 80},
		{1, game.Player2, "sad", 65},
	}
	for _, turn := range turns {
		if err := store.RecordTurn("s-1", turn.move, turn.player, turn.emotion, turn.accuracy); err != nil {
			t.Fatalf("RecordTurn(%d): %v", turn.move, err)
		}
	}
	points := map[game.Player]int{game.Player1: 80, game.Player2: 65}
	if err := store.FinishSession("s-1", ended, points, game.Player1); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	sessions, err := store.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.ID != "s-1" {
		t.Errorf("ID = %q, want s-1", got.ID)
	}
	if !got.StartedAt.Equal(started) || !got.EndedAt.Equal(ended) {
		t.Errorf("times = %v/%v, want %v/%v", got.StartedAt, got.EndedAt, started, ended)
	}
	if !got.EqualFeedback {
		t.Error("EqualFeedback = false, want true")
	}
	if got.PointsP1 != 80 || got.PointsP2 != 65 || got.Winner != 1 {
		t.Errorf("result = %d/%d winner %d, want 80/65 winner 1", got.PointsP1, got.PointsP2, got.Winner)
	}
}

func TestSessionsSkipsUnfinished(t *testing.T) {
	store := openTestStore(t)

	if err := store.StartSession("incomplete", time.Now(), false); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessions, err := store.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("len(sessions) = %d, want 0 before FinishSession", len(sessions))
	}
}

func TestDuplicateSessionRejected(t *testing.T) {
	store := openTestStore(t)

	if err := store.StartSession("dup", time.Now(), true); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.StartSession("dup", time.Now(), true); err == nil {
		t.Fatal("want error for duplicate session id")
	}
}

func TestSessionsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		start := base.Add(time.Duration(i) * time.Hour)
		if err := store.StartSession(id, start, true); err != nil {
			t.Fatalf("StartSession(%s): %v", id, err)
		}
		if err := store.FinishSession(id, start.Add(5*time.Minute), nil, game.Player1); err != nil {
			t.Fatalf("FinishSession(%s): %v", id, err)
		}
	}

	sessions, err := store.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].ID != "new" || sessions[1].ID != "old" {
		t.Errorf("order = [%s %s], want newest first", sessions[0].ID, sessions[1].ID)
	}
}
