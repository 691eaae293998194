package game

import "time"

// Reaction is the fixed (image, sound, hold) triple emitted as feedback.
type Reaction struct {
	Image string
	Sound string
	Hold  time.Duration
}

// Accuracy tier boundaries.
const (
	strongNegativeMax = 5  // accuracy <= this: strong-negative reaction
	strongPositiveMin = 85 // accuracy >= this: strong-positive reaction
)

// ShouldGiveFeedback decides whether a player receives feedback this turn.
//
// In equal mode everyone always does. In unequal mode the excluded player
// is given feedback exactly once, on their first turn (move 2 when they
// open the game, move 3 when they go second), and is silently skipped on
// every later turn.
func ShouldGiveFeedback(player Player, move int, equalMode bool, excluded, first Player) bool {
	if equalMode || player != excluded {
		return true
	}
	if excluded == first {
		return move == 2
	}
	return move == 3
}

// ReactionFor selects the reaction tier for an accuracy score.
func ReactionFor(accuracy int, emotion string, t Timings) Reaction {
	switch {
	case accuracy <= strongNegativeMax:
		return Reaction{Image: imageNeutral, Sound: badEmotionSound(emotion), Hold: t.FeedbackBadHold}
	case accuracy < strongPositiveMin:
		return Reaction{Image: imageBlush, Sound: soundGoodEffort, Hold: t.FeedbackMildHold}
	default:
		return Reaction{Image: imageStar, Sound: soundGoodFeedback, Hold: t.FeedbackGoodHold}
	}
}
