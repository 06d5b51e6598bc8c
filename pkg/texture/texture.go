// Package texture computes second-order texture statistics: histogram
// entropy, gray-level co-occurrence features, edge densities, gradient
// strength, local binary patterns and a frequency-domain ratio, then
// classifies the overall texture type and scale.
package texture

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/visprof/image-profiler/pkg/types"
	"github.com/visprof/image-profiler/pkg/vision"
)

const (
	// maxDim bounds analysis cost; longer edges are downscaled first.
	maxDim = 512

	// glcmLevels quantizes the gray plane for co-occurrence counting.
	glcmLevels = 32

	// Canny threshold pairs for the coarse and fine edge densities.
	coarseLow, coarseHigh = 50, 150
	fineLow, fineHigh     = 100, 200

	// scaleRatio separates fine/coarse frequency dominance.
	scaleRatio = 1.5
)

// glcmOffsets are the pixel offsets for distances {1,3,5} at angles
// {0°,45°,90°,135°}.
var glcmDistances = []int{1, 3, 5}
var glcmAngles = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}

// Analyze computes the full texture record for an image.
func Analyze(img image.Image) (types.Texture, error) {
	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
	}

	gray := vision.Grayscale(img)

	var t types.Texture
	t.Entropy = entropy(gray)
	t.GLCMContrast, t.Dissimilarity, t.Homogeneity, t.Energy, t.Correlation = glcmFeatures(gray)
	t.EdgeDensity = vision.EdgeDensity(vision.Canny(gray, coarseLow, coarseHigh))
	t.EdgeDensityFine = vision.EdgeDensity(vision.Canny(gray, fineLow, fineHigh))
	t.GradientStrength = gradientStrength(gray)
	t.LBPUniformity = lbpUniformity(gray)

	var low, high float64
	t.FrequencyRatio, low, high = frequencyRatio(gray)

	t.Type = classify(t)
	t.Scale = classifyScale(low, high)
	return t, nil
}

// entropy is the Shannon entropy of the 256-bin grayscale histogram,
// in bits.
func entropy(gray [][]float64) float64 {
	hist := vision.Histogram256(gray)
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	e := 0.0
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		e -= p * math.Log2(p)
	}
	return e
}

// glcmFeatures averages contrast, dissimilarity, homogeneity, energy and
// correlation over the co-occurrence matrices of all distance/angle
// combinations.
func glcmFeatures(gray [][]float64) (contrast, dissimilarity, homogeneity, energy, correlation float64) {
	height := len(gray)
	if height == 0 {
		return
	}
	width := len(gray[0])

	// Quantize once
	quant := make([][]int, height)
	for y := 0; y < height; y++ {
		quant[y] = make([]int, width)
		for x := 0; x < width; x++ {
			level := int(gray[y][x] * float64(glcmLevels))
			if level >= glcmLevels {
				level = glcmLevels - 1
			}
			quant[y][x] = level
		}
	}

	matrices := 0
	for _, d := range glcmDistances {
		for _, angle := range glcmAngles {
			dx, dy := angle[0]*d, angle[1]*d

			var glcm [glcmLevels][glcmLevels]float64
			pairs := 0
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					glcm[quant[y][x]][quant[ny][nx]]++
					pairs++
				}
			}
			if pairs == 0 {
				continue
			}

			// Normalize to a joint probability matrix
			inv := 1.0 / float64(pairs)
			var con, dis, hom, asm float64
			var meanI, meanJ float64
			for i := 0; i < glcmLevels; i++ {
				for j := 0; j < glcmLevels; j++ {
					p := glcm[i][j] * inv
					if p == 0 {
						continue
					}
					diff := float64(i - j)
					con += p * diff * diff
					dis += p * math.Abs(diff)
					hom += p / (1.0 + diff*diff)
					asm += p * p
					meanI += p * float64(i)
					meanJ += p * float64(j)
				}
			}

			var varI, varJ, cov float64
			for i := 0; i < glcmLevels; i++ {
				for j := 0; j < glcmLevels; j++ {
					p := glcm[i][j] * inv
					if p == 0 {
						continue
					}
					di := float64(i) - meanI
					dj := float64(j) - meanJ
					varI += p * di * di
					varJ += p * dj * dj
					cov += p * di * dj
				}
			}

			corr := 0.0
			if varI > 0 && varJ > 0 {
				corr = cov / math.Sqrt(varI*varJ)
			}

			contrast += con
			dissimilarity += dis
			homogeneity += hom
			energy += math.Sqrt(asm)
			correlation += corr
			matrices++
		}
	}

	if matrices > 0 {
		n := float64(matrices)
		contrast /= n
		dissimilarity /= n
		homogeneity /= n
		energy /= n
		correlation /= n
	}
	return
}

// gradientStrength is the mean Sobel gradient magnitude.
func gradientStrength(gray [][]float64) float64 {
	magnitude, _ := vision.Sobel(gray)
	samples := vision.Flatten(magnitude)
	if len(samples) == 0 {
		return 0
	}
	return stat.Mean(samples, nil)
}

// lbpUniformity computes the 8-neighbor local binary pattern histogram
// and returns its uniformity (sum of squared bin frequencies). High
// values mean few distinct micro-patterns.
func lbpUniformity(gray [][]float64) float64 {
	height := len(gray)
	if height < 3 {
		return 1
	}
	width := len(gray[0])
	if width < 3 {
		return 1
	}

	// Clockwise from top-left
	offsets := [8][2]int{
		{-1, -1}, {0, -1}, {1, -1}, {1, 0},
		{1, 1}, {0, 1}, {-1, 1}, {-1, 0},
	}

	var hist [256]int
	total := 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := gray[y][x]
			code := 0
			for bit, off := range offsets {
				if gray[y+off[1]][x+off[0]] >= center {
					code |= 1 << bit
				}
			}
			hist[code]++
			total++
		}
	}
	if total == 0 {
		return 1
	}

	uniformity := 0.0
	for _, c := range hist {
		p := float64(c) / float64(total)
		uniformity += p * p
	}
	return uniformity
}

// frequencyRatio splits the centered 2D FFT magnitude spectrum into a
// low-frequency disc (r <= min(h,w)/8) and a high-frequency annulus
// (min/8 < r <= min/4) and returns high/low along with both energies.
// A zero low-frequency energy yields ratio 0 rather than dividing.
func frequencyRatio(gray [][]float64) (ratio, low, high float64) {
	height := len(gray)
	if height == 0 {
		return 0, 0, 0
	}
	width := len(gray[0])

	spectrum := fft.FFT2Real(gray)

	minDim := float64(width)
	if height < width {
		minDim = float64(height)
	}
	lowRadius := minDim / 8.0
	highRadius := minDim / 4.0

	for y := 0; y < height; y++ {
		// Wrap-around frequency distance avoids an explicit fftshift
		fy := float64(y)
		if y > height/2 {
			fy = float64(height - y)
		}
		for x := 0; x < width; x++ {
			fx := float64(x)
			if x > width/2 {
				fx = float64(width - x)
			}
			r := math.Hypot(fx, fy)
			mag := cmplxAbs(spectrum[y][x])
			switch {
			case r <= lowRadius:
				low += mag
			case r <= highRadius:
				high += mag
			}
		}
	}

	if low == 0 {
		return 0, low, high
	}
	return high / low, low, high
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// classify walks a fixed decision list top to bottom; the first matching
// rule names the texture type.
func classify(t types.Texture) string {
	switch {
	case t.EdgeDensity > 0.25 && t.Entropy > 7.0:
		return "highly_detailed"
	case t.EdgeDensity > 0.15 && t.Entropy > 6.0:
		return "detailed"
	// Energy guard: a degenerate single-level image has GLCM energy 1
	// and belongs to "flat" further down, not here.
	case t.Entropy < 4.0 && t.EdgeDensity < 0.05 && t.Energy < 0.3:
		return "smooth"
	case t.Energy > 0.3 && t.FrequencyRatio > 1.0:
		return "patterned"
	case t.GLCMContrast > 20.0:
		return "textured"
	case t.LBPUniformity > 0.5:
		return "flat"
	case t.Entropy > 6.5:
		return "complex"
	case t.FrequencyRatio > 2.0:
		return "grainy"
	case t.Energy > 0.5:
		return "uniform"
	default:
		return "mixed"
	}
}

func classifyScale(low, high float64) string {
	switch {
	case high > scaleRatio*low:
		return "fine"
	case low > scaleRatio*high:
		return "coarse"
	default:
		return "medium"
	}
}
