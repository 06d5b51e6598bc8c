package objects

import (
	"image"
	"image/color"
	"testing"

	pigo "github.com/esimov/pigo/core"
)

// stubDetector reports a fixed face count
type stubDetector struct {
	count int
}

func (d stubDetector) DetectFaces(image.Image) (int, error) { return d.count, nil }

// createSplitImage fills the top half with one color and the bottom
// half with another
func createSplitImage(size int, top, bottom color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if y < size/2 {
				img.Set(x, y, top)
			} else {
				img.Set(x, y, bottom)
			}
		}
	}
	return img
}

func TestAnalyzeFaces(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))

	obj, count, err := Analyze(img, stubDetector{count: 2}, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 faces, got %d", count)
	}
	if !obj.FaceLikely || !obj.PersonLikely {
		t.Error("Detected faces should set FaceLikely and PersonLikely")
	}
	if !contains(obj.DetectedObjects, "face") {
		t.Errorf("Expected face tag, got %v", obj.DetectedObjects)
	}
}

func TestAnalyzeNilDetector(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))

	obj, count, err := Analyze(img, nil, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Nil detector should report 0 faces, got %d", count)
	}
	if obj.FaceLikely {
		t.Error("FaceLikely should not be set without detections")
	}
}

func TestAnalyzeColorMasks(t *testing.T) {
	// Sky blue over vegetation green
	img := createSplitImage(60, color.RGBA{70, 140, 230, 255}, color.RGBA{50, 170, 60, 255})

	obj, _, err := Analyze(img, nil, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !obj.VegetationLikely {
		t.Error("Green half should set VegetationLikely")
	}
	if !obj.SkyLikely {
		t.Error("Blue half should set SkyLikely")
	}
	if !contains(obj.DetectedObjects, "vegetation") || !contains(obj.DetectedObjects, "sky") {
		t.Errorf("Expected vegetation and sky tags, got %v", obj.DetectedObjects)
	}
}

func TestMergeExternalTags(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	obj, _, err := Analyze(img, nil, []string{"Dog", "Street Sign", "dog", " "})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Case-insensitive dedup
	dogCount := 0
	for _, tag := range obj.DetectedObjects {
		if tag == "dog" {
			dogCount++
		}
	}
	if dogCount != 1 {
		t.Errorf("Expected dog deduplicated to one entry, got %d", dogCount)
	}

	// "sign" maps to the text family
	if !obj.TextLikely {
		t.Error("Street Sign should set TextLikely through the text family")
	}
}

func TestExternalTagsOnlyAdd(t *testing.T) {
	// Vegetation set by the heuristic must survive unrelated tags
	img := createSplitImage(60, color.RGBA{50, 170, 60, 255}, color.RGBA{50, 170, 60, 255})

	obj, _, err := Analyze(img, nil, []string{"car"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !obj.VegetationLikely {
		t.Error("External tags must never retract a heuristic flag")
	}
	if !contains(obj.DetectedObjects, "car") {
		t.Errorf("Expected car tag, got %v", obj.DetectedObjects)
	}
}

func TestCountQuality(t *testing.T) {
	detections := []pigo.Detection{
		{Q: 2.0},
		{Q: 5.0},
		{Q: 9.5},
	}

	if got := countQuality(detections, 5.0); got != 2 {
		t.Errorf("Cutoff 5.0 should keep 2 detections, got %d", got)
	}
	if got := countQuality(detections, 0); got != 3 {
		t.Errorf("Cutoff 0 should keep everything, got %d", got)
	}
	if got := countQuality(detections, 10.0); got != 0 {
		t.Errorf("Cutoff 10.0 should keep nothing, got %d", got)
	}
}

func TestNoopDetector(t *testing.T) {
	count, err := NoopDetector{}.DetectFaces(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if err != nil {
		t.Fatalf("NoopDetector failed: %v", err)
	}
	if count != 0 {
		t.Errorf("NoopDetector should report 0 faces, got %d", count)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
