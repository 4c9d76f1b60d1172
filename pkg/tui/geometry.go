// ABOUTME: Point and Rect types for 1-based terminal cell coordinates
// ABOUTME: Rect is inclusive on both corners; Min must not exceed Max componentwise

package tui

// Point is a terminal cell; X is the column, Y the row, both 1-based.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect spans the cells from Min to Max inclusive.
type Rect struct {
	Min Point
	Max Point
}

// R builds a Rect from two corners, swapping coordinates as needed so that
// Min <= Max holds.
func R(x0, y0, x1, y1 int) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// Dx returns the horizontal distance between the corners (width minus one).
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the vertical distance between the corners (height minus one).
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Inset shrinks r by n cells on every side. The result collapses to a single
// cell around the centre rather than inverting.
func (r Rect) Inset(n int) Rect {
	out := Rect{
		Min: Point{r.Min.X + n, r.Min.Y + n},
		Max: Point{r.Max.X - n, r.Max.Y - n},
	}
	if out.Min.X > out.Max.X {
		mid := r.Min.X + r.Dx()/2
		out.Min.X, out.Max.X = mid, mid
	}
	if out.Min.Y > out.Max.Y {
		mid := r.Min.Y + r.Dy()/2
		out.Min.Y, out.Max.Y = mid, mid
	}
	return out
}

// Centered returns a w by h rectangle centred within a termW by termH screen
// anchored at (1,1). Half sizes are floored, matching the modal layout. On a
// screen smaller than w by h the rectangle is clipped to the screen.
func Centered(termW, termH, w, h int) Rect {
	cx, cy := termW/2, termH/2
	hw, hh := w/2, h/2
	return Rect{
		Min: Point{max(cx-hw, 1), max(cy-hh, 1)},
		Max: Point{max(min(cx+hw, termW), 1), max(min(cy+hh, termH), 1)},
	}
}
