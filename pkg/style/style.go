// Package style condenses tone, saturation and color-diversity signals
// into a single style label.
package style

import (
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/visprof/image-profiler/pkg/types"
)

// monoHueTolerance is the tight pairwise hue spread (in degrees, a tenth
// of a turn) below which the top colors count as one hue family.
const monoHueTolerance = 36.0

// styleKeywords is the fixed vocabulary scanned in an external style
// description. Order matters: the first match wins.
var styleKeywords = []string{
	"vibrant", "minimalist", "dramatic", "monochromatic", "balanced",
	"colorful", "rich", "bold", "noir", "elegant", "modern", "vintage",
	"clean", "dark", "bright",
}

// Synthesize assigns a style label from the measured signals. An
// external style description can replace the label only when the
// heuristic ladder fell through to "mixed".
func Synthesize(img image.Image, dominantColors []string, brightness types.Brightness, contrast types.Contrast, styleDescription string) types.Style {
	saturation := meanSaturation(img)
	mono := isMonochromatic(dominantColors)

	label := classify(saturation, mono, brightness, contrast)
	if label == "mixed" {
		if kw := matchKeyword(styleDescription); kw != "" {
			label = kw
		}
	}

	return types.Style{
		Style:         label,
		Saturation:    saturation,
		Vibrant:       saturation > 0.6,
		Monochromatic: mono,
	}
}

// classify walks the style ladder top to bottom; first match wins.
func classify(saturation float64, mono bool, brightness types.Brightness, contrast types.Contrast) string {
	switch {
	case saturation > 0.6:
		return "vibrant"
	case contrast.Category == "high" && brightness.Value < 0.4:
		return "dramatic"
	case mono:
		return "monochromatic"
	case saturation < 0.2 && brightness.Value > 0.7:
		return "minimalist"
	case brightness.Category == "medium" && contrast.Category == "medium":
		return "balanced"
	case saturation > 0.45:
		return "colorful"
	case contrast.Category == "high" && saturation > 0.3:
		return "rich"
	case contrast.Category == "high":
		return "bold"
	default:
		return "mixed"
	}
}

// meanSaturation is the mean of the HSV saturation channel.
func meanSaturation(img image.Image) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	sum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			_, s, _ := c.Hsv()
			sum += s
		}
	}
	return sum / float64(total)
}

// isMonochromatic reports whether the top three dominant colors stay
// within one tight hue family.
func isMonochromatic(hexColors []string) bool {
	if len(hexColors) > 3 {
		hexColors = hexColors[:3]
	}

	var hues []float64
	for _, hex := range hexColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		h, _, _ := c.Hsv()
		hues = append(hues, h)
	}
	if len(hues) < 2 {
		return len(hues) == 1
	}

	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			d := hues[i] - hues[j]
			if d < 0 {
				d = -d
			}
			if d > 180 {
				d = 360 - d
			}
			if d >= monoHueTolerance {
				return false
			}
		}
	}
	return true
}

// matchKeyword scans a free-text description for the fixed style
// vocabulary and returns the first hit, or "".
func matchKeyword(description string) string {
	if description == "" {
		return ""
	}
	lower := strings.ToLower(description)
	for _, kw := range styleKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}
