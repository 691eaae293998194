package game

import (
	"time"

	"github.com/gaips/go-elmo/internal/log"
)

// Recorder receives session results for audit. Recording is a pure side
// effect: every error is logged by the session and the game continues.
type Recorder interface {
	StartSession(id string, startedAt time.Time, equalFeedback bool) error
	RecordTurn(id string, move int, player Player, emotion string, accuracy int) error
	FinishSession(id string, endedAt time.Time, points map[Player]int, winner Player) error
}

func logRecorderError(stage string, err error) {
	log.Error("result recording failed", "stage", stage, "error", err)
}
