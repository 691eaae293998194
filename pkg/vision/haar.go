package vision

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// HaarConfig holds Haar-cascade face locator settings.
type HaarConfig struct {
	ModelPath    string  // Path to the cascade XML
	ScaleFactor  float64 // Pyramid scale step
	MinNeighbors int     // Detections required to keep a candidate
	MinSize      int     // Minimum face size in pixels
}

// DefaultHaarConfig returns the production cascade settings.
func DefaultHaarConfig() HaarConfig {
	return HaarConfig{
		ModelPath:    "models/haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      100,
	}
}

// HaarLocator finds frontal faces with an OpenCV Haar cascade.
type HaarLocator struct {
	classifier gocv.CascadeClassifier
	config     HaarConfig
	mu         sync.Mutex // Protects inference
}

// NewHaarLocator loads the cascade model.
func NewHaarLocator(cfg HaarConfig) (*HaarLocator, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cfg.ModelPath) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load cascade: %s", cfg.ModelPath)
	}

	return &HaarLocator{
		classifier: classifier,
		config:     cfg,
	}, nil
}

// Locate finds faces in the JPEG frame and returns normalized boxes.
func (l *HaarLocator) Locate(jpeg []byte) ([]Box, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	minSize := image.Pt(l.config.MinSize, l.config.MinSize)
	rects := l.classifier.DetectMultiScaleWithParams(
		gray,
		l.config.ScaleFactor,
		l.config.MinNeighbors,
		0,
		minSize,
		image.Pt(0, 0),
	)

	boxes := make([]Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, Box{
			X: float64(r.Min.X) / imgW,
			Y: float64(r.Min.Y) / imgH,
			W: float64(r.Dx()) / imgW,
			H: float64(r.Dy()) / imgH,
		})
	}
	return boxes, nil
}

// Close releases the cascade.
func (l *HaarLocator) Close() error {
	return l.classifier.Close()
}
