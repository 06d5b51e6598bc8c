package objects

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// FaceDetector counts faces in an image. Implementations must be safe
// for reuse across calls but need not be safe for concurrent use.
type FaceDetector interface {
	DetectFaces(img image.Image) (int, error)
}

// NoopDetector always reports zero faces. Used when no cascade file is
// configured.
type NoopDetector struct{}

// DetectFaces implements FaceDetector.
func (NoopDetector) DetectFaces(image.Image) (int, error) { return 0, nil }

// PigoDetector detects faces with the pigo pixel-intensity cascade.
type PigoDetector struct {
	classifier *pigo.Pigo
	minQuality float32
}

// NewPigoDetector loads a binary cascade file and builds a detector.
// Clustered detections below minQuality are discarded; zero accepts
// everything the cascade reports.
func NewPigoDetector(cascadePath string, minQuality float64) (*PigoDetector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade: %w", err)
	}

	return &PigoDetector{classifier: classifier, minQuality: float32(minQuality)}, nil
}

// DetectFaces runs the cascade over a grayscale view of the image and
// returns the number of clustered detections above the quality cutoff.
func (d *PigoDetector) DetectFaces(img image.Image) (int, error) {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols == 0 || rows == 0 {
		return 0, nil
	}

	pixels := pigo.RgbToGrayscale(img)

	maxSize := cols
	if rows < cols {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	detections = d.classifier.ClusterDetections(detections, 0.2)

	return countQuality(detections, d.minQuality), nil
}

// countQuality counts detections at or above the quality cutoff.
func countQuality(detections []pigo.Detection, minQuality float32) int {
	count := 0
	for _, det := range detections {
		if det.Q >= minQuality {
			count++
		}
	}
	return count
}
