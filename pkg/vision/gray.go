// Package vision provides the low-level computer vision primitives shared by
// the analyzers: grayscale planes, gaussian smoothing, Sobel gradients, Canny
// edge detection, contour extraction and Hough line detection.
//
// All operations work on [][]float64 luminance planes with values in [0,1],
// indexed as plane[y][x]. Planes are treated as immutable inputs; every
// function allocates its output.
package vision

import (
	"image"
	"math"
)

// Grayscale converts an image to a luminance plane using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B), values in [0,1].
func Grayscale(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return gray
}

// Histogram256 builds a 256-bin histogram of a luminance plane.
func Histogram256(gray [][]float64) [256]int {
	var hist [256]int
	for _, row := range gray {
		for _, v := range row {
			bin := int(v * 255.0)
			if bin < 0 {
				bin = 0
			}
			if bin > 255 {
				bin = 255
			}
			hist[bin]++
		}
	}
	return hist
}

// Flatten returns the plane's samples as a single slice, row-major.
func Flatten(gray [][]float64) []float64 {
	if len(gray) == 0 {
		return nil
	}
	out := make([]float64, 0, len(gray)*len(gray[0]))
	for _, row := range gray {
		out = append(out, row...)
	}
	return out
}

// GaussianBlur applies a 5x5 Gaussian kernel (sigma ~= 1.4) to suppress
// noise before edge detection. Border pixels use clamped edge values.
func GaussianBlur(gray [][]float64) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	height := len(gray)
	if height == 0 {
		return nil
	}
	width := len(gray[0])

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += gray[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// Sobel computes gradient magnitude and direction using the 3x3 Sobel
// operators. Magnitude is in gradient units (not normalized); direction
// is in radians from atan2.
func Sobel(gray [][]float64) (magnitude, direction [][]float64) {
	height := len(gray)
	if height == 0 {
		return nil, nil
	}
	width := len(gray[0])

	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
