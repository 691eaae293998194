// Package game implements the Emo-Show session: a two-player, turn-based
// "mimic the emotion" game choreographed on the Elmo robot.
//
// One long-running loop owns all session state. The only mutations allowed
// from other goroutines are Stop and ToggleFeedback, both backed by
// atomics; everything else is read through snapshot getters. Cancellation
// is cooperative: Stop raises a flag that the loop observes at turn
// boundaries, so callers must tolerate multi-second latency while the
// current choreography step finishes. Preemption would leave the robot
// mid-gesture.
package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/centering"
	"github.com/gaips/go-elmo/pkg/elmo"
	"github.com/gaips/go-elmo/pkg/protocol"
	"github.com/gaips/go-elmo/pkg/vision"
)

// Player identifies one of the two players.
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

// Side maps a player to the robot head orientation; player 1 sits left.
func (p Player) Side() elmo.Side {
	if p == Player1 {
		return elmo.SideLeft
	}
	return elmo.SideRight
}

// Status is the session lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusEnded
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session is the aggregate root of one game. Create it once at process
// start; Restart resets it between games, it is never recreated.
type Session struct {
	ch         elmo.Channel
	recognizer vision.Recognizer
	centerer   *centering.Controller
	recorder   Recorder
	cfg        Config

	// Cross-goroutine flags. Stop and ToggleFeedback may be called from
	// any goroutine while the loop runs.
	running       atomic.Bool
	restartFlag   atomic.Bool
	equalFeedback atomic.Bool

	// All remaining state is written only by the game loop. The mutex
	// exists so UI polling can take consistent snapshots, not to
	// coordinate writers.
	mu             sync.RWMutex
	id             string
	status         Status
	move           int
	player         Player
	firstPlayer    Player
	excludedPlayer Player
	points         map[Player]int
	shuffled       map[Player][]string
	currentEmotion string
	remaining      []string
}

// New creates a session. recorder may be nil.
func New(ch elmo.Channel, recognizer vision.Recognizer, centerer *centering.Controller, recorder Recorder, cfg Config) *Session {
	cfg.fillDefaults()
	s := &Session{
		ch:         ch,
		recognizer: recognizer,
		centerer:   centerer,
		recorder:   recorder,
		cfg:        cfg,
		points:     map[Player]int{Player1: 0, Player2: 0},
		shuffled:   map[Player][]string{},
		remaining:  append([]string(nil), cfg.Transitions...),
	}
	s.equalFeedback.Store(true)
	return s
}

// Play starts the game loop on its own goroutine. It is a no-op while a
// run is already active.
func (s *Session) Play() {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("play ignored: session already running")
		return
	}

	s.mu.Lock()
	s.status = StatusPlaying
	s.id = uuid.NewString()
	s.mu.Unlock()

	go s.run()
}

// Stop requests cooperative cancellation. The current turn or choreography
// step completes before the loop observes the flag; expect several seconds
// of latency.
func (s *Session) Stop() {
	s.restartFlag.Store(true)
}

// Restart resets the session to its initial values, preserving the
// feedback mode. It is idempotent and only meaningful once the loop has
// returned; calling it while a run is active is ignored with a warning.
func (s *Session) Restart() {
	if s.running.Load() {
		log.Warn("restart ignored: session still running, stop it first")
		return
	}

	s.restartFlag.Store(false)

	s.mu.Lock()
	s.id = ""
	s.status = StatusIdle
	s.move = 0
	s.player = NoPlayer
	s.firstPlayer = NoPlayer
	s.excludedPlayer = NoPlayer
	s.points = map[Player]int{Player1: 0, Player2: 0}
	s.shuffled = map[Player][]string{}
	s.currentEmotion = ""
	s.remaining = append([]string(nil), s.cfg.Transitions...)
	s.mu.Unlock()

	s.ch.MovePan(0)
	s.ch.SetImage(imageNeutral)
	s.ch.SetIcon(iconBlank)
}

// ToggleFeedback flips between equal and unequal feedback mode. Safe to
// call at any time, including mid-session.
func (s *Session) ToggleFeedback() {
	equal := !s.equalFeedback.Load()
	s.equalFeedback.Store(equal)
	s.ch.NotifyFeedbackMode(equal)
	log.Info("feedback mode changed", "equal", equal)
}

// run is the session loop: intro, turns, endgame. Sole writer of all
// loop-owned state.
func (s *Session) run() {
	defer s.running.Store(false)

	s.ch.NotifyGame(protocol.GameOn)
	s.ch.SetImage(imageNeutral)
	s.ch.SetIcon(iconBlank)
	s.ch.MovePan(0)
	s.sleep(s.cfg.Timings.PrePlay)

	s.dynamicIntro()

	first := Player(s.cfg.Rand.Intn(2) + 1)
	excluded := NoPlayer
	if !s.equalFeedback.Load() {
		excluded = Player(s.cfg.Rand.Intn(2) + 1)
	}

	s.mu.Lock()
	s.firstPlayer = first
	s.excludedPlayer = excluded
	s.mu.Unlock()

	log.Info("session started", "id", s.ID(), "first_player", int(first), "excluded_player", int(excluded))

	s.shuffleEmotions()
	s.startRecording()

	s.sleep(s.cfg.Timings.PostShuffle)

	for s.Status() == StatusPlaying && !s.restartFlag.Load() {
		s.playerMove()
	}

	if s.Status() == StatusEnded {
		s.endgame()
		s.finishRecording()
	}

	if s.restartFlag.Load() {
		// Cancelled run: leave the state for Restart to clear, but drop
		// the flag so the next Play is not stillborn.
		s.restartFlag.Store(false)
		log.Info("session cancelled", "id", s.ID(), "move", s.Move())
	}
}

// playerMove executes one turn of the playing loop.
func (s *Session) playerMove() {
	if s.Status() != StatusPlaying {
		panic(fmt.Sprintf("playerMove called with status %s", s.Status()))
	}

	s.ch.SetImage(imageNeutral)

	move := s.Move()
	if move == 2*len(s.cfg.Emotions) {
		s.mu.Lock()
		s.status = StatusEnded
		s.mu.Unlock()
		s.ch.NotifyGame(protocol.GameEnd)
		return
	}

	s.changePlayer()

	if move == 0 {
		s.ch.PlaySound(soundFirstEmotion)
	} else {
		s.playTransition()
	}
	s.sleep(s.cfg.Timings.TransitionClip)

	player := s.CurrentPlayer()
	turnIndex := move / 2
	emotion := s.playerEmotion(player, turnIndex)

	s.mu.Lock()
	s.currentEmotion = emotion
	s.mu.Unlock()

	log.Info("emotion assigned", "move", move, "player", int(player), "emotion", emotion)
	s.ch.PlaySound(emotionSound(emotion))
	s.ch.SetImage(emotionImage(emotion))
	s.sleep(s.cfg.Timings.AnnounceEmotion)

	accuracy := s.analyseEmotion(emotion)

	s.mu.Lock()
	s.points[player] += accuracy
	total := s.points[player]
	s.mu.Unlock()

	s.ch.NotifyAccuracy(accuracy)
	log.Info("turn scored", "player", int(player), "accuracy", accuracy, "points", total)
	s.recordTurn(move, player, emotion, accuracy)

	if ShouldGiveFeedback(player, move, s.equalFeedback.Load(), s.ExcludedPlayer(), s.FirstPlayer()) {
		s.giveFeedback(accuracy, emotion)
	} else {
		// Withheld feedback still takes time, so both players' turns pace
		// the same.
		s.sleep(s.cfg.Timings.SkippedFeedback)
	}

	s.mu.Lock()
	s.move++
	move = s.move
	s.mu.Unlock()
	s.ch.NotifyMove(move)
}

// changePlayer selects the player for this move and orients the robot
// toward them, then refines their stored default angles.
func (s *Session) changePlayer() {
	s.mu.Lock()
	player := Player(s.move%2 + 1)
	if s.firstPlayer == Player2 {
		player = 3 - player
	}
	s.player = player
	move := s.move
	s.mu.Unlock()

	log.Info("changing player", "player", int(player), "move", move)
	s.ch.NotifyPlayer(int(player))

	if player == Player1 {
		s.ch.MoveLeft()
	} else {
		s.ch.MoveRight()
	}
	s.sleep(s.cfg.Timings.OrientPlayer)

	s.centerPlayer(player)
}

// centerPlayer grabs a frame and lets the centering controller refine the
// active player's default angles. Failures are logged and the turn
// continues.
func (s *Session) centerPlayer(player Player) {
	if s.centerer == nil {
		return
	}
	frame, err := s.ch.GrabImage()
	if err != nil {
		log.Error("cannot center player: frame grab failed", "player", int(player), "error", err)
		return
	}
	s.centerer.Center(frame, player.Side())
}

// playTransition draws a transition cue without replacement. When the pool
// runs dry before the game ends (possible with a long emotion set) it is
// re-seeded from the full clip list, so a draw always succeeds.
func (s *Session) playTransition() {
	s.mu.Lock()
	if len(s.remaining) == 0 {
		s.remaining = append([]string(nil), s.cfg.Transitions...)
	}
	i := s.cfg.Rand.Intn(len(s.remaining))
	clip := s.remaining[i]
	s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
	s.mu.Unlock()

	s.ch.PlaySound(transitionSound(clip))
}

// takePicture plays the shutter cue, counts down on the LED matrix and
// captures one frame.
func (s *Session) takePicture() ([]byte, error) {
	t := s.cfg.Timings
	s.ch.PlaySound(soundPicture)
	s.sleep(t.PictureCueLead)

	s.ch.SetIcon(iconCount3)
	s.sleep(t.CountdownStep3)
	s.ch.SetIcon(iconCount2)
	s.sleep(t.CountdownStep2)
	s.ch.SetIcon(iconCount1)
	s.sleep(t.CountdownStep1)
	s.ch.SetIcon(iconCamera)

	return s.ch.GrabImage()
}

// analyseEmotion runs the capture+score sequence for the target emotion.
// Each turn gets exactly one capture attempt; any failure degrades to
// accuracy 0 and the turn proceeds.
func (s *Session) analyseEmotion(emotion string) int {
	t := s.cfg.Timings

	frame, err := s.takePicture()
	if err != nil {
		log.Error("capture failed", "error", err)
	} else {
		s.saveFrame(frame)
	}

	s.sleep(t.PostCapture)
	s.ch.SetIcon(iconLoading)
	s.sleep(t.Processing)
	s.ch.SetIcon(iconBlank)

	if err != nil {
		log.Error("accuracy: 0%")
		return 0
	}

	dist, err := s.recognizer.Analyze(frame)
	if err != nil {
		log.Error("emotion analysis failed", "error", err)
		log.Error("accuracy: 0%")
		return 0
	}

	conf, ok := dist.Confidence(emotion)
	if !ok {
		log.Error("emotion missing from analysis", "emotion", emotion)
		return 0
	}
	accuracy := clampAccuracy(int(conf*100 + 0.5))

	if detected, detectedConf := dist.Best(); detected != emotion {
		log.Error("emotion mismatch",
			"expected", emotion, "expected_accuracy", accuracy,
			"detected", detected, "detected_accuracy", clampAccuracy(int(detectedConf*100+0.5)))
	} else {
		log.Info("emotion matched", "emotion", emotion, "accuracy", accuracy)
	}

	return accuracy
}

// saveFrame persists a captured frame for later audit, when configured.
func (s *Session) saveFrame(frame []byte) {
	if s.cfg.FrameDir == "" {
		return
	}
	path := filepath.Join(s.cfg.FrameDir, fmt.Sprintf("frame_%d.jpg", s.Move()))
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		log.Error("frame save failed", "path", path, "error", err)
	}
}

// giveFeedback emits the reaction tier for the accuracy, then restores the
// neutral face.
func (s *Session) giveFeedback(accuracy int, emotion string) {
	reaction := ReactionFor(accuracy, emotion, s.cfg.Timings)
	s.ch.SetImage(reaction.Image)
	s.ch.PlaySound(reaction.Sound)
	s.sleep(reaction.Hold)
	s.ch.SetImage(imageNeutral)
}

// shuffleEmotions deals each player an independent permutation of the
// emotion set. Fresh permutations every session.
func (s *Session) shuffleEmotions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range []Player{Player1, Player2} {
		deck := append([]string(nil), s.cfg.Emotions...)
		s.cfg.Rand.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		s.shuffled[p] = deck
		log.Info("emotions shuffled", "player", int(p), "order", deck)
	}
}

func (s *Session) playerEmotion(p Player, turnIndex int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffled[p][turnIndex]
}

func (s *Session) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func clampAccuracy(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
