// Package colors extracts the dominant color palette of an image and
// classifies how its hues relate on the color wheel.
package colors

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultK is the default number of dominant colors to extract.
	DefaultK = 5

	// maxSamples bounds the number of pixels fed into clustering.
	maxSamples = 10000

	// maxIterations and convergenceEps stop the refinement loop: either
	// the cap is reached or no center moved more than eps (on the 0-255
	// RGB scale) in one iteration.
	maxIterations  = 100
	convergenceEps = 0.2

	// Fixed seed keeps palettes reproducible across runs.
	kmeansSeed = 1
)

type rgb [3]float64

// ExtractDominant returns up to k dominant colors of the image as hex
// strings, ordered by descending pixel frequency. k <= 0 selects DefaultK.
// Images with fewer unique colors than k still terminate; duplicate
// centers are permitted and collapse into the output as repeated entries.
func ExtractDominant(img image.Image, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultK
	}

	samples := samplePixels(img)
	if len(samples) == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if k > len(samples) {
		k = len(samples)
	}

	centers, counts := cluster(samples, k)

	type weighted struct {
		center rgb
		count  int
	}
	ordered := make([]weighted, len(centers))
	for i := range centers {
		ordered[i] = weighted{centers[i], counts[i]}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].count > ordered[j].count
	})

	hexes := make([]string, len(ordered))
	for i, w := range ordered {
		c := colorful.Color{
			R: clamp01(w.center[0] / 255.0),
			G: clamp01(w.center[1] / 255.0),
			B: clamp01(w.center[2] / 255.0),
		}
		hexes[i] = c.Hex()
	}
	return hexes, nil
}

// samplePixels flattens the image into RGB triples on the 0-255 scale,
// using a deterministic stride so large images stay under maxSamples.
func samplePixels(img image.Image) []rgb {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}

	stride := 1
	if total > maxSamples {
		stride = (total + maxSamples - 1) / maxSamples
	}

	samples := make([]rgb, 0, total/stride+1)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if idx%stride == 0 {
				r, g, b, _ := img.At(x, y).RGBA()
				samples = append(samples, rgb{
					float64(r >> 8),
					float64(g >> 8),
					float64(b >> 8),
				})
			}
			idx++
		}
	}
	return samples
}

// cluster runs seeded k-means over the samples and returns the final
// centers with their membership counts.
func cluster(samples []rgb, k int) ([]rgb, []int) {
	rng := rand.New(rand.NewSource(kmeansSeed))

	centers := make([]rgb, k)
	for i := range centers {
		centers[i] = samples[rng.Intn(len(samples))]
	}

	assignments := make([]int, len(samples))
	counts := make([]int, k)

	for iter := 0; iter < maxIterations; iter++ {
		// Assignment step
		for i, s := range samples {
			best, bestDist := 0, math.MaxFloat64
			for c, center := range centers {
				d := sqDist(s, center)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			assignments[i] = best
		}

		// Update step
		sums := make([]rgb, k)
		for i := range counts {
			counts[i] = 0
		}
		for i, s := range samples {
			c := assignments[i]
			sums[c][0] += s[0]
			sums[c][1] += s[1]
			sums[c][2] += s[2]
			counts[c]++
		}

		maxShift := 0.0
		for c := range centers {
			if counts[c] == 0 {
				// Empty cluster keeps its center; happens when unique
				// colors < k
				continue
			}
			next := rgb{
				sums[c][0] / float64(counts[c]),
				sums[c][1] / float64(counts[c]),
				sums[c][2] / float64(counts[c]),
			}
			shift := math.Sqrt(sqDist(centers[c], next))
			if shift > maxShift {
				maxShift = shift
			}
			centers[c] = next
		}

		if maxShift < convergenceEps {
			break
		}
	}

	return centers, counts
}

func sqDist(a, b rgb) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
