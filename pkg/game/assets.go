package game

import "fmt"

// Robot-side asset names. The controller only ever refers to assets by
// name; playback happens on the robot.
const (
	imageNeutral = "normal.png"
	imageBlush   = "blush.png"
	imageStar    = "star.png"

	iconBlank     = "black.png"
	iconCount3    = "3.png"
	iconCount2    = "2.png"
	iconCount1    = "1.png"
	iconCamera    = "camera.png"
	iconLoading   = "loading_4.gif"
	iconHeart     = "heart.png"
	iconFireworks = "fireworks.gif"

	soundIntro1       = "introduction_1.wav"
	soundIntro2       = "introduction_2.wav"
	soundIntro3       = "introduction_3.wav"
	soundIntro4       = "introduction_4.wav"
	soundIntro5       = "introduction_5.wav"
	soundFirstEmotion = "first_emotion.wav"
	soundPicture      = "picture.wav"
	soundGoodEffort   = "good_effort.wav"
	soundGoodFeedback = "good_feedback.wav"
	soundEndGameSong  = "end_game_song.wav"
	soundWinner       = "winner.wav"
	soundConclusion   = "conclusion.wav"
	soundJoke1        = "joke_1.wav"
	soundJoke2        = "joke_2.wav"
	soundJoke3        = "joke_3.wav"
)

func emotionSound(emotion string) string {
	return fmt.Sprintf("emotions/%s.wav", emotion)
}

func emotionImage(emotion string) string {
	return fmt.Sprintf("emotions/%s.png", emotion)
}

func transitionSound(clip string) string {
	return fmt.Sprintf("transitions/%s.wav", clip)
}

func badEmotionSound(emotion string) string {
	return fmt.Sprintf("bad_%s.wav", emotion)
}
