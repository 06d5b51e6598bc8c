// Package objects estimates object presence with cheap heuristics: a
// face detector, a small-contour text proxy, HSV color-range masks for
// vegetation and sky, and line geometry for buildings. An externally
// supplied tag list can add evidence but never retracts a flag.
package objects

import (
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/visprof/image-profiler/pkg/types"
	"github.com/visprof/image-profiler/pkg/vision"
)

const (
	cannyLow  = 50
	cannyHigh = 150

	// Text proxy: many small contours suggest glyphs.
	textContourAreaMin = 10
	textContourAreaMax = 300
	textContourCount   = 50

	// Color-range masks must cover this fraction of the frame.
	maskAreaThreshold = 0.15

	// Building proxy: enough long axis-aligned lines.
	lineAngleTolerance = 10.0
	lineCountThreshold = 3
)

// keywordFamilies maps substrings of external tags to likelihood flags.
var keywordFamilies = map[string][]string{
	"person":   {"person", "people", "man", "woman", "human", "portrait"},
	"face":     {"face"},
	"text":     {"text", "word", "letter", "sign", "logo", "title"},
	"nature":   {"tree", "plant", "flower", "grass", "forest", "nature", "leaf"},
	"building": {"building", "house", "tower", "architecture", "skyscraper", "bridge"},
	"vehicle":  {"car", "truck", "bus", "bike", "vehicle", "motorcycle"},
}

// Analyze runs the object heuristics and merges the optional external
// tag list. The face count is returned separately so the caller can
// surface it at the top of the profile.
func Analyze(img image.Image, detector FaceDetector, externalTags []string) (types.Objects, int, error) {
	var obj types.Objects
	obj.DetectedObjects = []string{}

	if detector == nil {
		detector = NoopDetector{}
	}
	faceCount, err := detector.DetectFaces(img)
	if err != nil {
		return obj, 0, err
	}
	if faceCount > 0 {
		obj.FaceLikely = true
		obj.PersonLikely = true
		obj.DetectedObjects = append(obj.DetectedObjects, "face")
	}

	gray := vision.Grayscale(img)
	edges := vision.Canny(gray, cannyLow, cannyHigh)

	if countTextContours(edges) > textContourCount {
		obj.TextLikely = true
		obj.DetectedObjects = append(obj.DetectedObjects, "text")
	}

	vegetation, sky := colorMasks(img)
	if vegetation >= maskAreaThreshold {
		obj.VegetationLikely = true
		obj.DetectedObjects = append(obj.DetectedObjects, "vegetation")
	}
	if sky >= maskAreaThreshold {
		obj.SkyLikely = true
		obj.DetectedObjects = append(obj.DetectedObjects, "sky")
	}

	if hasBuildingLines(edges) {
		obj.BuildingLikely = true
		obj.DetectedObjects = append(obj.DetectedObjects, "building")
	}

	mergeExternalTags(&obj, externalTags)
	return obj, faceCount, nil
}

// countTextContours counts contours whose bounding-box area falls in
// the glyph-sized window.
func countTextContours(edges [][]bool) int {
	count := 0
	for _, c := range vision.FindContours(edges) {
		area := c.Area()
		if area > textContourAreaMin && area < textContourAreaMax {
			count++
		}
	}
	return count
}

// colorMasks returns the fractions of pixels falling in the vegetation
// (green, saturated) and sky (blue, bright) HSV ranges.
func colorMasks(img image.Image) (vegetation, sky float64) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0, 0
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			h, s, v := c.Hsv()
			if h >= 70 && h <= 170 && s >= 0.2 && v >= 0.15 {
				vegetation++
			}
			if h >= 180 && h <= 260 && s >= 0.15 && v >= 0.5 {
				sky++
			}
		}
	}
	return vegetation / float64(total), sky / float64(total)
}

// hasBuildingLines reports whether the edge mask contains more than
// lineCountThreshold near-vertical and near-horizontal lines each.
func hasBuildingLines(edges [][]bool) bool {
	height := len(edges)
	if height == 0 {
		return false
	}
	width := len(edges[0])

	minVotes := width
	if height < width {
		minVotes = height
	}
	minVotes /= 3
	if minVotes < 20 {
		minVotes = 20
	}

	vertical, horizontal := 0, 0
	for _, line := range vision.DetectLines(edges, minVotes) {
		if line.IsVertical(lineAngleTolerance) {
			vertical++
		} else if line.IsHorizontal(lineAngleTolerance) {
			horizontal++
		}
	}
	return vertical > lineCountThreshold && horizontal > lineCountThreshold
}

// mergeExternalTags deduplicates external tags into DetectedObjects and
// maps them through the keyword families. External evidence only adds.
func mergeExternalTags(obj *types.Objects, tags []string) {
	seen := make(map[string]bool, len(obj.DetectedObjects))
	for _, existing := range obj.DetectedObjects {
		seen[strings.ToLower(existing)] = true
	}

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if !seen[lower] {
			seen[lower] = true
			obj.DetectedObjects = append(obj.DetectedObjects, lower)
		}

		for family, words := range keywordFamilies {
			for _, word := range words {
				if !strings.Contains(lower, word) {
					continue
				}
				switch family {
				case "person":
					obj.PersonLikely = true
				case "face":
					obj.FaceLikely = true
					obj.PersonLikely = true
				case "text":
					obj.TextLikely = true
				case "nature":
					obj.VegetationLikely = true
				case "building":
					obj.BuildingLikely = true
				case "vehicle":
					// No dedicated flag; the tag itself is the signal
				}
				break
			}
		}
	}
}
