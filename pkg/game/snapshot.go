package game

import "time"

// Snapshot is a consistent read of the session state for UI polling.
type Snapshot struct {
	ID             string           `json:"id"`
	Status         string           `json:"status"`
	Move           int              `json:"move"`
	Player         int              `json:"player"`
	FirstPlayer    int              `json:"first_player"`
	ExcludedPlayer int              `json:"excluded_player"`
	CurrentEmotion string           `json:"current_emotion"`
	Points         map[int]int      `json:"points"`
	Emotions       map[int][]string `json:"emotions"`
	EqualFeedback  bool             `json:"equal_feedback"`
	Running        bool             `json:"running"`
}

// Snapshot returns the full session state in one consistent read.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := map[int]int{
		int(Player1): s.points[Player1],
		int(Player2): s.points[Player2],
	}
	emotions := make(map[int][]string, len(s.shuffled))
	for p, list := range s.shuffled {
		emotions[int(p)] = append([]string(nil), list...)
	}

	return Snapshot{
		ID:             s.id,
		Status:         s.status.String(),
		Move:           s.move,
		Player:         int(s.player),
		FirstPlayer:    int(s.firstPlayer),
		ExcludedPlayer: int(s.excludedPlayer),
		CurrentEmotion: s.currentEmotion,
		Points:         points,
		Emotions:       emotions,
		EqualFeedback:  s.equalFeedback.Load(),
		Running:        s.running.Load(),
	}
}

// ID returns the current session identifier, empty when idle.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Move returns the zero-based turn counter.
func (s *Session) Move() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.move
}

// CurrentPlayer returns the player whose turn is active.
func (s *Session) CurrentPlayer() Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player
}

// FirstPlayer returns the randomly chosen opening player.
func (s *Session) FirstPlayer() Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.firstPlayer
}

// ExcludedPlayer returns the feedback-withheld player, NoPlayer in equal
// mode.
func (s *Session) ExcludedPlayer() Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.excludedPlayer
}

// CurrentEmotion returns the emotion being evaluated in the active turn.
func (s *Session) CurrentEmotion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentEmotion
}

// Points returns a copy of the score map.
func (s *Session) Points() map[Player]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[Player]int{
		Player1: s.points[Player1],
		Player2: s.points[Player2],
	}
}

// ShuffledEmotions returns a copy of each player's emotion order.
func (s *Session) ShuffledEmotions() map[Player][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Player][]string, len(s.shuffled))
	for p, list := range s.shuffled {
		out[p] = append([]string(nil), list...)
	}
	return out
}

// FeedbackEqual reports whether feedback mode is Equal.
func (s *Session) FeedbackEqual() bool {
	return s.equalFeedback.Load()
}

// Running reports whether the game loop is active.
func (s *Session) Running() bool {
	return s.running.Load()
}

// Winner returns the player with the most points. Player 1 wins ties.
func (s *Session) Winner() Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.points[Player2] > s.points[Player1] {
		return Player2
	}
	return Player1
}

// startRecording opens the audit record for this session, if a recorder is
// configured.
func (s *Session) startRecording() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.StartSession(s.ID(), time.Now(), s.equalFeedback.Load()); err != nil {
		logRecorderError("start", err)
	}
}

func (s *Session) recordTurn(move int, player Player, emotion string, accuracy int) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordTurn(s.ID(), move, player, emotion, accuracy); err != nil {
		logRecorderError("turn", err)
	}
}

func (s *Session) finishRecording() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.FinishSession(s.ID(), time.Now(), s.Points(), s.Winner()); err != nil {
		logRecorderError("finish", err)
	}
}
