package vision

import "sort"

// Point is a pixel coordinate with origin at the top-left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is the axis-aligned bounding box of a contour.
// (X1,Y1) is inclusive, (X2,Y2) exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Center returns the center point of the bounds.
func (b Bounds) Center() (float64, float64) {
	return float64(b.X1) + float64(b.Width())/2, float64(b.Y1) + float64(b.Height())/2
}

// Contour is a connected component of edge pixels.
type Contour struct {
	Points []Point
	Bounds Bounds
}

// Area returns the bounding-box area of the contour in square pixels.
func (c Contour) Area() int { return c.Bounds.Width() * c.Bounds.Height() }

// FindContours groups 8-connected edge pixels into contours via flood fill
// and returns them sorted by descending area. An empty mask yields an empty
// slice; callers treat that as a normal outcome.
func FindContours(edges [][]bool) []Contour {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	visited := make([][]bool, height)
	for i := range visited {
		visited[i] = make([]bool, width)
	}

	var contours []Contour
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}

			// Flood fill from this seed
			points := []Point{}
			stack := []Point{{X: x, Y: y}}
			visited[y][x] = true
			minX, minY, maxX, maxY := x, y, x, y

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				points = append(points, p)

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						if edges[ny][nx] && !visited[ny][nx] {
							visited[ny][nx] = true
							stack = append(stack, Point{X: nx, Y: ny})
						}
					}
				}
			}

			contours = append(contours, Contour{
				Points: points,
				Bounds: Bounds{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1},
			})
		}
	}

	sort.Slice(contours, func(i, j int) bool {
		return contours[i].Area() > contours[j].Area()
	})
	return contours
}
