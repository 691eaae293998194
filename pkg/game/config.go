package game

import (
	"math/rand"
	"time"
)

// Emotions is the full emotion set each player performs once per session.
var Emotions = []string{
	"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral",
}

// Transitions is the pool of "changing player" audio cues. Each is drawn
// without replacement during a session and the pool is replenished on
// restart.
var Transitions = []string{
	"alright",
	"checkpoint",
	"dont_blink",
	"feeling_inspired",
	"get_ready",
	"just_checking",
	"make_us_glad",
	"next_player_turn",
	"one_emotion_down",
	"say_cheese",
	"showtime",
	"next_challenge",
	"lets_go",
	"surprise_me",
}

// Timings names every choreography duration. The actuator link gives no
// completion acknowledgement, so pacing is assumed-duration: each value is
// how long the matching robot action is given to finish. Retiming the show
// never requires touching control flow.
type Timings struct {
	// Session start
	PrePlay     time.Duration // after neutral pose, before intro
	PostShuffle time.Duration // after emotion shuffle, before first turn

	// Intro choreography
	IntroGreeting   time.Duration // introduction_1 clip
	IntroOrient     time.Duration // head turn toward a player
	IntroRules      time.Duration // introduction_2 clip
	IntroDemoLead   time.Duration // introduction_3 clip lead-in
	IntroCount3     time.Duration
	IntroCount2     time.Duration
	IntroCount1     time.Duration
	IntroCamera     time.Duration
	IntroProcessing time.Duration // loading animation during the demo
	IntroWrapup     time.Duration // introduction_4 clip
	IntroClosing    time.Duration // introduction_5 clip

	// Turn loop
	OrientPlayer     time.Duration // head turn before centering
	TransitionClip   time.Duration // transition cue playback
	AnnounceEmotion  time.Duration // emotion name clip + image
	PictureCueLead   time.Duration // after picture.wav, before countdown
	CountdownStep3   time.Duration
	CountdownStep2   time.Duration
	CountdownStep1   time.Duration
	PostCapture      time.Duration // after the shutter, before processing icon
	Processing       time.Duration // loading animation while analyzing
	FeedbackBadHold  time.Duration // strong-negative reaction hold
	FeedbackMildHold time.Duration // mild-positive reaction hold
	FeedbackGoodHold time.Duration // strong-positive reaction hold
	SkippedFeedback  time.Duration // silence in place of withheld feedback

	// Endgame
	EndSongLead    time.Duration // fireworks + end song before congrats
	WinnerOrient   time.Duration // head turn toward the winner
	WinnerClip     time.Duration // winner.wav playback
	ConclusionSong time.Duration // conclusion.wav playback
	JokeOrient     time.Duration // head turns between joke clips
	JokeShort      time.Duration // joke_1 / joke_2 clips
	JokeLong       time.Duration // joke_3 clip
}

// DefaultTimings returns the production show timings.
func DefaultTimings() Timings {
	return Timings{
		PrePlay:     2 * time.Second,
		PostShuffle: 500 * time.Millisecond,

		IntroGreeting:   4120 * time.Millisecond,
		IntroOrient:     2 * time.Second,
		IntroRules:      7 * time.Second,
		IntroDemoLead:   2800 * time.Millisecond,
		IntroCount3:     time.Second,
		IntroCount2:     700 * time.Millisecond,
		IntroCount1:     700 * time.Millisecond,
		IntroCamera:     time.Second,
		IntroProcessing: 6 * time.Second,
		IntroWrapup:     5 * time.Second,
		IntroClosing:    6 * time.Second,

		OrientPlayer:     2500 * time.Millisecond,
		TransitionClip:   4750 * time.Millisecond,
		AnnounceEmotion:  3 * time.Second,
		PictureCueLead:   100 * time.Millisecond,
		CountdownStep3:   time.Second,
		CountdownStep2:   500 * time.Millisecond,
		CountdownStep1:   700 * time.Millisecond,
		PostCapture:      1500 * time.Millisecond,
		Processing:       2500 * time.Millisecond,
		FeedbackBadHold:  6 * time.Second,
		FeedbackMildHold: 4 * time.Second,
		FeedbackGoodHold: 5 * time.Second,
		SkippedFeedback:  3 * time.Second,

		EndSongLead:    2 * time.Second,
		WinnerOrient:   2 * time.Second,
		WinnerClip:     6300 * time.Millisecond,
		ConclusionSong: 22500 * time.Millisecond,
		JokeOrient:     2 * time.Second,
		JokeShort:      4 * time.Second,
		JokeLong:       14 * time.Second,
	}
}

// Config holds a session's fixed settings.
type Config struct {
	// Emotions each player performs once. Defaults to the full set.
	Emotions []string

	// Transitions pool. Defaults to the full clip list.
	Transitions []string

	Timings Timings

	// FrameDir, when set, receives every captured frame for later audit.
	FrameDir string

	// Rand drives player selection and emotion shuffling. Defaults to a
	// time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand
}

// DefaultGameConfig returns the production game settings.
func DefaultGameConfig() Config {
	return Config{
		Emotions:    Emotions,
		Transitions: Transitions,
		Timings:     DefaultTimings(),
	}
}

func (c *Config) fillDefaults() {
	if len(c.Emotions) == 0 {
		c.Emotions = Emotions
	}
	if len(c.Transitions) == 0 {
		c.Transitions = Transitions
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}
