// Package scene assigns a coarse scene category from HSV color
// statistics. The rules are heuristic and intentionally conservative:
// confidence never reaches beyond 0.9.
package scene

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/visprof/image-profiler/pkg/types"
)

const maxConfidence = 0.9

// Hue bands in degrees. Red wraps around 0/360.
const (
	blueHueMin  = 180.0
	blueHueMax  = 260.0
	greenHueMin = 70.0
	greenHueMax = 170.0
	redHueMax   = 20.0
	redHueMin2  = 330.0
)

const (
	satLowMax  = 0.25
	satHighMin = 0.6
	valLowMax  = 0.25
	valHighMin = 0.7
)

// Distribution holds the normalized HSV proportions the classifier
// rules consume. Hue proportions cover only their bands; the
// low/high pairs partition saturation and value against their
// complements.
type Distribution struct {
	Blue, Green, Red float64
	SatLow, SatHigh  float64
	ValLow, ValHigh  float64
}

// Analyze computes the HSV distribution and classifies the scene.
func Analyze(img image.Image) (types.Scene, error) {
	dist := Distribute(img)
	return Classify(dist), nil
}

// Distribute converts every pixel to HSV and accumulates the band
// proportions, each normalized by the pixel count.
func Distribute(img image.Image) Distribution {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return Distribution{}
	}

	var d Distribution
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			h, s, v := c.Hsv()

			switch {
			case h >= blueHueMin && h <= blueHueMax:
				d.Blue++
			case h >= greenHueMin && h <= greenHueMax:
				d.Green++
			case h <= redHueMax || h >= redHueMin2:
				d.Red++
			}
			if s < satLowMax {
				d.SatLow++
			} else if s > satHighMin {
				d.SatHigh++
			}
			if v < valLowMax {
				d.ValLow++
			} else if v > valHighMin {
				d.ValHigh++
			}
		}
	}

	n := float64(total)
	d.Blue /= n
	d.Green /= n
	d.Red /= n
	d.SatLow /= n
	d.SatHigh /= n
	d.ValLow /= n
	d.ValHigh /= n
	return d
}

// Classify walks the ordered scene rules; the first match wins. Each
// branch derives its confidence as a linear function of the proportions
// that triggered it, capped at maxConfidence.
func Classify(d Distribution) types.Scene {
	switch {
	case d.Green >= 0.2 && d.Blue >= 0.15:
		attrs := []string{"natural"}
		if d.Green >= 0.3 {
			attrs = append(attrs, "vegetation_rich")
		}
		if d.Blue >= 0.2 {
			attrs = append(attrs, "sky_visible")
		}
		return scene("outdoor_nature", 0.5+0.5*(d.Green+d.Blue), attrs)

	case d.Green < 0.15 && d.Blue < 0.15 && d.SatLow >= 0.4:
		attrs := []string{"man_made"}
		if d.SatLow >= 0.5 {
			attrs = append(attrs, "muted_colors")
		}
		return scene("urban", 0.4+0.5*d.SatLow, attrs)

	case d.SatLow >= 0.5 && d.Green < 0.2 && d.Blue < 0.2:
		return scene("indoor", 0.4+0.5*d.SatLow, []string{"man_made", "artificial_light"})

	case d.Red >= 0.25 && d.Blue >= 0.1 && d.SatHigh >= 0.3:
		return scene("sunset_sunrise", 0.4+d.Red+0.5*d.SatHigh, []string{"warm_light", "sky_visible"})

	case d.ValLow >= 0.5 && d.SatLow >= 0.3:
		return scene("night", 0.4+0.6*d.ValLow, []string{"low_light"})

	case d.Blue >= 0.4 && d.ValHigh >= 0.3 && d.SatHigh < 0.5:
		return scene("water", 0.4+0.8*d.Blue, []string{"water_dominant"})

	case d.SatLow >= 0.6 && d.ValHigh >= 0.4:
		return scene("studio", 0.3+0.5*d.SatLow, []string{"controlled_light", "clean_background"})

	default:
		return types.Scene{Type: "unknown", Confidence: 0.2, Attributes: []string{}}
	}
}

func scene(kind string, confidence float64, attrs []string) types.Scene {
	return types.Scene{
		Type:       kind,
		Confidence: math.Min(confidence, maxConfidence),
		Attributes: attrs,
	}
}
