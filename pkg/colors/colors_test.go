package colors

import (
	"image"
	"image/color"
	"regexp"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// createGradientImage creates a simple test image with a color gradient
func createGradientImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}
	return img
}

// createTwoColorImage fills the left half red and the right half blue
func createTwoColorImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{200, 30, 30, 255})
			} else {
				img.Set(x, y, color.RGBA{30, 30, 200, 255})
			}
		}
	}
	return img
}

func TestExtractDominant(t *testing.T) {
	img := createGradientImage(100, 100)

	hexes, err := ExtractDominant(img, 5)
	if err != nil {
		t.Fatalf("ExtractDominant failed: %v", err)
	}

	if len(hexes) > 5 {
		t.Errorf("Expected at most 5 colors, got %d", len(hexes))
	}
	for _, hex := range hexes {
		if !hexPattern.MatchString(hex) {
			t.Errorf("Color %q does not match #rrggbb", hex)
		}
	}
}

func TestExtractDominantDeterministic(t *testing.T) {
	img := createGradientImage(80, 80)

	first, err := ExtractDominant(img, 5)
	if err != nil {
		t.Fatalf("ExtractDominant failed: %v", err)
	}
	second, err := ExtractDominant(img, 5)
	if err != nil {
		t.Fatalf("ExtractDominant failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Palette length changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Palette differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestExtractDominantFewUniqueColors(t *testing.T) {
	img := createTwoColorImage(60, 60)

	hexes, err := ExtractDominant(img, 5)
	if err != nil {
		t.Fatalf("ExtractDominant failed with fewer unique colors than k: %v", err)
	}
	if len(hexes) == 0 {
		t.Error("Expected at least one color")
	}
}

func TestExtractDominantDefaultK(t *testing.T) {
	img := createGradientImage(50, 50)

	hexes, err := ExtractDominant(img, 0)
	if err != nil {
		t.Fatalf("ExtractDominant failed: %v", err)
	}
	if len(hexes) != DefaultK {
		t.Errorf("Expected %d colors with k=0, got %d", DefaultK, len(hexes))
	}
}

func hsvPalette(hues []float64, s, v float64) []string {
	hexes := make([]string, len(hues))
	for i, h := range hues {
		hexes[i] = colorful.Hsv(h, s, v).Hex()
	}
	return hexes
}

func TestAnalyzeHarmonyMonochromatic(t *testing.T) {
	harmony := AnalyzeHarmony(hsvPalette([]float64{10, 15, 20}, 0.8, 0.8))
	if harmony.Type != "monochromatic" {
		t.Errorf("Expected monochromatic, got %s", harmony.Type)
	}
	if harmony.Score <= 0 || harmony.Score > 1 {
		t.Errorf("Score should be in (0,1], got %f", harmony.Score)
	}
}

func TestAnalyzeHarmonyComplementary(t *testing.T) {
	harmony := AnalyzeHarmony(hsvPalette([]float64{0, 60, 180}, 0.8, 0.8))
	if harmony.Type != "complementary" {
		t.Errorf("Expected complementary, got %s", harmony.Type)
	}
}

func TestAnalyzeHarmonyTriadic(t *testing.T) {
	harmony := AnalyzeHarmony(hsvPalette([]float64{0, 120, 240}, 0.8, 0.8))
	if harmony.Type != "triadic" {
		t.Errorf("Expected triadic, got %s", harmony.Type)
	}
}

func TestAnalyzeHarmonyDiscordant(t *testing.T) {
	harmony := AnalyzeHarmony(hsvPalette([]float64{0, 72, 144}, 0.8, 0.8))
	if harmony.Type != "discordant" {
		t.Errorf("Expected discordant, got %s", harmony.Type)
	}
}

// Score must not increase as hue dispersion grows with saturation and
// value held fixed.
func TestAnalyzeHarmonyScoreMonotonic(t *testing.T) {
	palettes := [][]float64{
		{0, 5, 10},    // monochromatic
		{0, 60, 180},  // complementary
		{0, 72, 144},  // discordant
	}

	prev := 2.0
	for _, hues := range palettes {
		score := AnalyzeHarmony(hsvPalette(hues, 1, 1)).Score
		if score > prev {
			t.Errorf("Score increased with hue dispersion: %f > %f for hues %v", score, prev, hues)
		}
		prev = score
	}
}

func TestAnalyzeHarmonyTemperature(t *testing.T) {
	warm := AnalyzeHarmony(hsvPalette([]float64{10, 30, 50}, 0.8, 0.8))
	if warm.Temperature != "warm" {
		t.Errorf("Expected warm, got %s", warm.Temperature)
	}

	cool := AnalyzeHarmony(hsvPalette([]float64{190, 210, 230}, 0.8, 0.8))
	if cool.Temperature != "cool" {
		t.Errorf("Expected cool, got %s", cool.Temperature)
	}

	neutral := AnalyzeHarmony(hsvPalette([]float64{10, 200}, 0.05, 0.8))
	if neutral.Temperature != "neutral" {
		t.Errorf("Expected neutral for desaturated palette, got %s", neutral.Temperature)
	}
}

func TestAnalyzeHarmonyEmpty(t *testing.T) {
	harmony := AnalyzeHarmony(nil)
	if harmony.Type != "unknown" {
		t.Errorf("Expected unknown for empty palette, got %s", harmony.Type)
	}
	if harmony.Score != 0 {
		t.Errorf("Expected score 0 for empty palette, got %f", harmony.Score)
	}
}
