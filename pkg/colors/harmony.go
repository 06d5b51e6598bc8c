package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"github.com/visprof/image-profiler/pkg/types"
)

// Canonical color-wheel intervals and their tolerance bands, in degrees.
const (
	monoHueTolerance     = 15.0
	complementaryCenter  = 180.0
	complementaryBand    = 15.0
	triadicCenter        = 120.0
	triadicBand          = 15.0
	tetradicCenter       = 90.0
	tetradicBand         = 12.0
	analogousNearCenter  = 30.0
	analogousNearBand    = 10.0
	analogousFarCenter   = 60.0
	analogousFarBand     = 10.0
	neutralSaturationMax = 0.15
)

// harmonyBase maps each harmony type to its base score, blended 70/30
// with the saturation/value consistency factor.
var harmonyBase = map[string]float64{
	"monochromatic": 0.9,
	"analogous":     0.8,
	"complementary": 0.75,
	"triadic":       0.7,
	"tetradic":      0.6,
	"discordant":    0.3,
}

// AnalyzeHarmony classifies how up to five dominant colors relate on the
// color wheel. An empty palette yields type "unknown" with score 0.
func AnalyzeHarmony(hexColors []string) types.Harmony {
	if len(hexColors) > 5 {
		hexColors = hexColors[:5]
	}

	var hues, sats, vals []float64
	for _, hex := range hexColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		h, s, v := c.Hsv()
		hues = append(hues, h)
		sats = append(sats, s)
		vals = append(vals, v)
	}

	if len(hues) == 0 {
		return types.Harmony{Type: "unknown", Score: 0, Temperature: "neutral"}
	}

	harmonyType := classifyHues(hues)
	score := harmonyBase[harmonyType]*0.7 + consistency(sats, vals)*0.3

	return types.Harmony{
		Type:        harmonyType,
		Score:       score,
		Temperature: temperature(hues, sats),
	}
}

// classifyHues matches pairwise circular hue differences against the
// canonical intervals, most harmonious first.
func classifyHues(hues []float64) string {
	if distinctHueCount(hues, monoHueTolerance) <= 2 {
		return "monochromatic"
	}

	var diffs []float64
	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			diffs = append(diffs, hueDiff(hues[i], hues[j]))
		}
	}

	switch {
	case anyWithin(diffs, complementaryCenter, complementaryBand):
		return "complementary"
	case anyWithin(diffs, triadicCenter, triadicBand):
		return "triadic"
	case anyWithin(diffs, tetradicCenter, tetradicBand):
		return "tetradic"
	case anyWithin(diffs, analogousNearCenter, analogousNearBand),
		anyWithin(diffs, analogousFarCenter, analogousFarBand):
		return "analogous"
	default:
		return "discordant"
	}
}

// distinctHueCount greedily groups hues whose circular difference stays
// within tolerance and returns the number of groups.
func distinctHueCount(hues []float64, tolerance float64) int {
	var groups []float64
	for _, h := range hues {
		matched := false
		for _, g := range groups {
			if hueDiff(h, g) <= tolerance {
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, h)
		}
	}
	return len(groups)
}

// hueDiff is the circular hue distance in degrees, in [0,180].
func hueDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func anyWithin(diffs []float64, center, band float64) bool {
	for _, d := range diffs {
		if math.Abs(d-center) <= band {
			return true
		}
	}
	return false
}

// consistency is 1/(1+sigma_s+sigma_v): tight saturation/value spreads
// read as more deliberate palettes.
func consistency(sats, vals []float64) float64 {
	return 1.0 / (1.0 + stat.PopStdDev(sats, nil) + stat.PopStdDev(vals, nil))
}

// temperature buckets the circular mean hue into warm/cool/mixed, or
// neutral when the palette is nearly unsaturated.
func temperature(hues, sats []float64) string {
	if stat.Mean(sats, nil) < neutralSaturationMax {
		return "neutral"
	}

	var sx, sy float64
	for _, h := range hues {
		rad := h * math.Pi / 180.0
		sx += math.Cos(rad)
		sy += math.Sin(rad)
	}
	mean := math.Atan2(sy, sx) * 180.0 / math.Pi
	if mean < 0 {
		mean += 360
	}

	switch {
	case mean < 90 || mean >= 330:
		return "warm"
	case mean >= 150 && mean < 270:
		return "cool"
	default:
		return "mixed"
	}
}
