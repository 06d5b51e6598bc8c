package vision

import (
	"math"
	"sort"
)

// Line is a line detected in Hough space. AngleDegrees is the orientation
// of the line itself in [0,180): 0 is horizontal, 90 vertical.
type Line struct {
	Rho          float64 `json:"rho"`
	AngleDegrees float64 `json:"angle_degrees"`
	Votes        int     `json:"votes"`
}

// DetectLines finds straight lines in an edge mask using a standard Hough
// transform. minVotes is the accumulator threshold; peaks must also be
// local maxima in a 5x5 accumulator neighborhood. At most 50 lines are
// returned, strongest first.
func DetectLines(edges [][]bool, minVotes int) []Line {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	if maxDist == 0 {
		return nil
	}
	const numAngles = 180

	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	var lines []Line
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < minVotes {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if !isMax {
				continue
			}

			// theta is the normal direction; the line itself is orthogonal
			lineAngle := math.Mod(float64(theta)+90.0, 180.0)
			lines = append(lines, Line{
				Rho:          float64(rhoIdx - maxDist),
				AngleDegrees: lineAngle,
				Votes:        votes,
			})
		}
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Votes > lines[j].Votes
	})
	if len(lines) > 50 {
		lines = lines[:50]
	}
	return lines
}

// IsVertical reports whether the line is within tolerance degrees of the
// vertical axis.
func (l Line) IsVertical(tolerance float64) bool {
	return math.Abs(l.AngleDegrees-90.0) <= tolerance
}

// IsHorizontal reports whether the line is within tolerance degrees of the
// horizontal axis.
func (l Line) IsHorizontal(tolerance float64) bool {
	return l.AngleDegrees <= tolerance || l.AngleDegrees >= 180.0-tolerance
}
