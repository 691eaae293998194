package elmo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
)

// greyLevel matches the placeholder frame the robot GUI historically showed
// when no camera was reachable.
const greyLevel = 26

var (
	greyOnce  sync.Once
	greyFrame []byte
)

// SyntheticFrame returns a flat grey FrameWidth x FrameHeight JPEG.
// Debug and connect modes hand it out instead of real camera frames.
func SyntheticFrame() []byte {
	greyOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
		grey := color.RGBA{R: greyLevel, G: greyLevel, B: greyLevel, A: 255}
		for y := 0; y < FrameHeight; y++ {
			for x := 0; x < FrameWidth; x++ {
				img.SetRGBA(x, y, grey)
			}
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err == nil {
			greyFrame = buf.Bytes()
		}
	})
	return greyFrame
}
