package vision

import "math"

// Canny performs Canny edge detection on a luminance plane and returns a
// boolean edge mask.
//
// Thresholds are on the 0-255 scale (OpenCV convention): gradients below
// thresholdLow are discarded, gradients above thresholdHigh are strong
// edges, and weak edges in between survive only when 8-connected to a
// strong edge.
func Canny(gray [][]float64, thresholdLow, thresholdHigh int) [][]bool {
	height := len(gray)
	if height == 0 {
		return nil
	}
	width := len(gray[0])

	blurred := GaussianBlur(gray)
	magnitude, direction := Sobel(blurred)

	// Non-maximum suppression thins edges to one pixel along the gradient
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				edges[y][x] = true
			} else if val >= lowThresh {
				// Weak edge: keep only if connected to a strong edge
				for ky := -1; ky <= 1 && !edges[y][x]; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							edges[y][x] = true
							break
						}
					}
				}
			}
		}
	}
	return edges
}

// EdgeDensity returns the fraction of set pixels in an edge mask, in [0,1].
func EdgeDensity(edges [][]bool) float64 {
	if len(edges) == 0 || len(edges[0]) == 0 {
		return 0
	}
	count := 0
	for _, row := range edges {
		for _, e := range row {
			if e {
				count++
			}
		}
	}
	return float64(count) / float64(len(edges)*len(edges[0]))
}
