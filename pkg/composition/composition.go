// Package composition classifies where the dominant subject sits in the
// frame: centered, on a rule-of-thirds gridline, or elsewhere.
package composition

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/visprof/image-profiler/pkg/types"
	"github.com/visprof/image-profiler/pkg/vision"
)

const (
	cannyLow  = 50
	cannyHigh = 150

	// Subject-center classification bands, as fractions of the frame.
	centeredMin     = 0.3
	centeredMax     = 0.7
	thirdsTolerance = 0.1
)

// Analyze finds the largest edge contour, takes its bounding-box center
// as the subject position and classifies the placement. No contours is a
// normal outcome and yields type "unknown" with no position.
func Analyze(img image.Image) types.Composition {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return types.Composition{Type: "unknown"}
	}

	blurred := blur.Gaussian(img, 1.4)
	gray := vision.Grayscale(blurred)
	edges := vision.Canny(gray, cannyLow, cannyHigh)

	contours := vision.FindContours(edges)
	if len(contours) == 0 {
		return types.Composition{Type: "unknown"}
	}

	cx, cy := contours[0].Bounds.Center()
	fx := cx / float64(width)
	fy := cy / float64(height)

	return types.Composition{
		Type:            classify(fx, fy),
		SubjectPosition: &types.Position{X: fx, Y: fy},
	}
}

func classify(fx, fy float64) string {
	if fx >= centeredMin && fx <= centeredMax && fy >= centeredMin && fy <= centeredMax {
		return "centered"
	}
	if nearThird(fx) && nearThird(fy) {
		return "rule_of_thirds"
	}
	return "other"
}

func nearThird(f float64) bool {
	return math.Abs(f-1.0/3.0) <= thirdsTolerance || math.Abs(f-2.0/3.0) <= thirdsTolerance
}
