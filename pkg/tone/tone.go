// Package tone measures global brightness, contrast and tonal key from
// the grayscale histogram.
package tone

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/visprof/image-profiler/pkg/types"
	"github.com/visprof/image-profiler/pkg/vision"
)

// Analyze computes brightness (grayscale mean), contrast (grayscale
// standard deviation over half the range) and the low/mid/high key
// proportions of the 256-bin histogram.
func Analyze(img image.Image) (types.Brightness, types.Contrast, types.ToneKey, error) {
	gray := vision.Grayscale(img)
	samples := vision.Flatten(gray)
	if len(samples) == 0 {
		return types.Brightness{}, types.Contrast{}, types.ToneKey{}, fmt.Errorf("image has no pixels")
	}

	mean := stat.Mean(samples, nil)
	// Luminance is already in [0,1]; contrast normalizes stddev against
	// half the range, matching a 0-255 stddev divided by 127.5
	contrastVal := stat.PopStdDev(samples, nil) * 2.0

	brightness := types.Brightness{Value: mean, Category: brightnessCategory(mean)}
	contrast := types.Contrast{Value: contrastVal, Category: contrastCategory(contrastVal)}

	hist := vision.Histogram256(gray)
	total := float64(len(samples))
	var low, mid, high float64
	for bin, count := range hist {
		switch {
		case bin < 64:
			low += float64(count)
		case bin >= 192:
			high += float64(count)
		default:
			mid += float64(count)
		}
	}

	key := types.ToneKey{
		LowKey:  low / total,
		MidKey:  mid / total,
		HighKey: high / total,
	}
	return brightness, contrast, key, nil
}

func brightnessCategory(v float64) string {
	switch {
	case v < 0.3:
		return "dark"
	case v < 0.7:
		return "medium"
	default:
		return "bright"
	}
}

func contrastCategory(v float64) string {
	switch {
	case v < 0.3:
		return "low"
	case v < 0.6:
		return "medium"
	default:
		return "high"
	}
}
