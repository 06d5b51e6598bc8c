package vision

import (
	"image"
	"image/color"
	"testing"
)

// createSquareImage draws a white square on a black background
func createSquareImage(size, squareMin, squareMax int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= squareMin && x < squareMax && y >= squareMin && y < squareMax {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	gray := Grayscale(img)
	if len(gray) != 4 || len(gray[0]) != 4 {
		t.Fatalf("Expected 4x4 plane, got %dx%d", len(gray), len(gray[0]))
	}
	for y := range gray {
		for x := range gray[y] {
			if gray[y][x] < 0.99 {
				t.Errorf("White pixel at (%d,%d) should be ~1.0, got %f", x, y, gray[y][x])
			}
		}
	}
}

func TestGrayscaleBlack(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	gray := Grayscale(img)
	for y := range gray {
		for x := range gray[y] {
			if gray[y][x] != 0 {
				t.Errorf("Black pixel at (%d,%d) should be 0, got %f", x, y, gray[y][x])
			}
		}
	}
}

func TestHistogram256(t *testing.T) {
	img := createSquareImage(10, 2, 8)
	gray := Grayscale(img)
	hist := Histogram256(gray)

	total := 0
	for _, c := range hist {
		total += c
	}
	if total != 100 {
		t.Errorf("Histogram should count every pixel, got %d", total)
	}
	if hist[0] == 0 {
		t.Error("Expected black pixels in bin 0")
	}
	if hist[255] == 0 {
		t.Error("Expected white pixels in bin 255")
	}
}

func TestCannyFindsEdges(t *testing.T) {
	img := createSquareImage(40, 10, 30)
	gray := Grayscale(img)
	edges := Canny(gray, 50, 150)

	if EdgeDensity(edges) == 0 {
		t.Error("Canny should detect edges around a high-contrast square")
	}
}

func TestCannyFlatImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	gray := Grayscale(img)
	edges := Canny(gray, 50, 150)

	if EdgeDensity(edges) != 0 {
		t.Error("Flat image should have no edges")
	}
}

func TestEdgeDensityRange(t *testing.T) {
	img := createSquareImage(40, 10, 30)
	gray := Grayscale(img)
	density := EdgeDensity(Canny(gray, 50, 150))

	if density < 0 || density > 1 {
		t.Errorf("Edge density must be in [0,1], got %f", density)
	}
}

func TestFindContours(t *testing.T) {
	img := createSquareImage(40, 10, 30)
	gray := Grayscale(img)
	edges := Canny(gray, 50, 150)

	contours := FindContours(edges)
	if len(contours) == 0 {
		t.Fatal("Expected at least one contour")
	}

	// Largest contour should surround the square
	largest := contours[0]
	cx, cy := largest.Bounds.Center()
	if cx < 15 || cx > 25 || cy < 15 || cy > 25 {
		t.Errorf("Contour center should be near (20,20), got (%f,%f)", cx, cy)
	}

	// Sorted by descending area
	for i := 1; i < len(contours); i++ {
		if contours[i].Area() > contours[i-1].Area() {
			t.Error("Contours should be sorted by descending area")
			break
		}
	}
}

func TestFindContoursEmpty(t *testing.T) {
	edges := make([][]bool, 10)
	for i := range edges {
		edges[i] = make([]bool, 10)
	}
	if contours := FindContours(edges); len(contours) != 0 {
		t.Errorf("Empty mask should yield no contours, got %d", len(contours))
	}
}

func TestDetectLinesVertical(t *testing.T) {
	edges := make([][]bool, 50)
	for y := range edges {
		edges[y] = make([]bool, 50)
		edges[y][25] = true
	}

	lines := DetectLines(edges, 30)
	if len(lines) == 0 {
		t.Fatal("Expected a line from a full vertical column")
	}
	if !lines[0].IsVertical(10) {
		t.Errorf("Strongest line should be vertical, angle %f", lines[0].AngleDegrees)
	}
}

func TestDetectLinesHorizontal(t *testing.T) {
	edges := make([][]bool, 50)
	for y := range edges {
		edges[y] = make([]bool, 50)
	}
	for x := 0; x < 50; x++ {
		edges[20][x] = true
	}

	lines := DetectLines(edges, 30)
	if len(lines) == 0 {
		t.Fatal("Expected a line from a full horizontal row")
	}
	if !lines[0].IsHorizontal(10) {
		t.Errorf("Strongest line should be horizontal, angle %f", lines[0].AngleDegrees)
	}
}

func TestSobelVerticalEdge(t *testing.T) {
	gray := make([][]float64, 10)
	for y := range gray {
		gray[y] = make([]float64, 10)
		for x := 5; x < 10; x++ {
			gray[y][x] = 1.0
		}
	}

	magnitude, _ := Sobel(gray)
	if magnitude[5][5] == 0 {
		t.Error("Sobel magnitude should be nonzero at a step edge")
	}
	if magnitude[5][2] != 0 {
		t.Error("Sobel magnitude should be zero in a flat region")
	}
}
