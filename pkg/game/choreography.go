package game

import (
	"github.com/gaips/go-elmo/internal/log"
)

// dynamicIntro plays the fixed opening show: greeting, rules while facing
// each player, and a demonstration of the countdown-and-capture sequence.
// The ordering of effects is the contract; the durations are configuration.
func (s *Session) dynamicIntro() {
	t := s.cfg.Timings

	s.ch.PlaySound(soundIntro1)
	s.sleep(t.IntroGreeting)
	s.ch.MoveLeft()
	s.sleep(t.IntroOrient)
	s.ch.PlaySound(soundIntro2)
	s.sleep(t.IntroRules)

	// Countdown demonstration, facing the middle
	s.ch.MovePan(0)
	s.sleep(t.IntroOrient)
	s.ch.PlaySound(soundIntro3)
	s.sleep(t.IntroDemoLead)
	s.ch.SetIcon(iconCount3)
	s.sleep(t.IntroCount3)
	s.ch.SetIcon(iconCount2)
	s.sleep(t.IntroCount2)
	s.ch.SetIcon(iconCount1)
	s.sleep(t.IntroCount1)
	s.ch.SetIcon(iconCamera)
	s.sleep(t.IntroCamera)
	s.ch.SetIcon(iconLoading)
	s.sleep(t.IntroProcessing)
	s.ch.SetIcon(iconBlank)

	s.ch.MoveRight()
	s.sleep(t.IntroOrient)
	s.ch.PlaySound(soundIntro4)
	s.sleep(t.IntroWrapup)

	s.ch.MovePan(0)
	s.sleep(t.IntroOrient)
	s.ch.PlaySound(soundIntro5)
	s.sleep(t.IntroClosing)
}

// endgame runs the terminal choreography: fireworks and song, winner
// congratulations, then the conclusion. Runs to completion even if a stop
// arrived mid-game; restarts are honored only afterwards.
func (s *Session) endgame() {
	t := s.cfg.Timings

	s.ch.SetImage(imageNeutral)
	s.ch.MovePan(0)
	s.ch.SetIcon(iconFireworks)
	s.ch.PlaySound(soundEndGameSong)
	s.sleep(t.EndSongLead)

	s.congratsWinner()
	s.dynamicConclusion()
}

// congratsWinner orients toward the winner and plays the congratulations
// clip. When a player was excluded from feedback the robot only faces a
// winning player 1 if they were not the excluded one, mirroring the
// feedback asymmetry through to the finale.
func (s *Session) congratsWinner() {
	t := s.cfg.Timings
	winner := s.Winner()
	log.Info("winner decided", "winner", int(winner), "points", s.Points())

	excluded := s.ExcludedPlayer()
	faceLeft := winner == Player1
	if excluded != NoPlayer {
		faceLeft = winner == Player1 && winner != excluded
	}

	if faceLeft {
		s.ch.MoveLeft()
	} else {
		s.ch.MoveRight()
	}
	s.sleep(t.WinnerOrient)

	s.ch.PlaySound(soundWinner)
	s.sleep(t.WinnerClip)
}

// dynamicConclusion thanks the players and tells the closing jokes.
func (s *Session) dynamicConclusion() {
	t := s.cfg.Timings

	s.ch.MovePan(0)
	s.sleep(t.JokeOrient)

	s.ch.SetIcon(iconHeart)
	s.ch.PlaySound(soundConclusion)
	s.sleep(t.ConclusionSong)

	// Joke time
	s.ch.MoveLeft()
	s.sleep(t.JokeOrient)
	s.ch.PlaySound(soundJoke1)
	s.sleep(t.JokeShort)

	s.ch.MoveRight()
	s.sleep(t.JokeOrient)
	s.ch.PlaySound(soundJoke2)
	s.sleep(t.JokeShort)

	s.ch.MovePan(0)
	s.sleep(t.JokeOrient)
	s.ch.PlaySound(soundJoke3)
	s.sleep(t.JokeLong)

	s.ch.SetIcon(iconBlank)
}
