package grid

// Positioning indicates how to interpret an (x, y) coordinate passed to a view.
type Positioning uint8

const (
	// Absolute coordinates index directly into the parent Grid.
	Absolute Positioning = iota

	// Relative coordinates treat the view's origin as (0, 0).
	Relative
)

func (p Positioning) String() string {
	switch p {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return "unknown"
	}
}

// Point is an absolute position in a Grid.
type Point struct {
	X, Y int
}

// Rect is the window covered by a view, in the parent Grid's coordinates.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Area returns the number of cells covered by the rectangle.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X < r.X+r.Width && r.Y <= p.Y && p.Y < r.Y+r.Height
}

// Overlaps reports whether the two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	if r.Area() == 0 || o.Area() == 0 {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Resolve translates a query into an absolute Point.
//
// Absolute queries must fall inside the rectangle. Relative queries are
// offset by the origin and accepted up to and including Width and Height;
// the final bounds check is left to the Grid.
func (r Rect) Resolve(mode Positioning, x, y int) (Point, bool) {
	switch mode {
	case Absolute:
		if x < r.X || x >= r.X+r.Width || y < r.Y || y >= r.Y+r.Height {
			return Point{}, false
		}
		return Point{X: x, Y: y}, true
	case Relative:
		if x < 0 || y < 0 || x > r.Width || y > r.Height {
			return Point{}, false
		}
		return Point{X: r.X + x, Y: r.Y + y}, true
	}
	return Point{}, false
}

// HorizontalSplit is a partition into a left and a right part.
type HorizontalSplit[V any] struct {
	Left  V
	Right V
}

// VerticalSplit is a partition into an above and a below part.
type VerticalSplit[V any] struct {
	Above V
	Below V
}

// splitHorizontal cuts the rectangle at column value. The left part keeps
// every column less than the split line.
func (r Rect) splitHorizontal(mode Positioning, value int) HorizontalSplit[Rect] {
	rightX := value
	if mode == Relative {
		rightX = r.X + value
	}
	if rightX < r.X || rightX > r.X+r.Width {
		panic(&SplitError{Axis: "x", Value: rightX, Start: r.X, End: r.X + r.Width})
	}

	leftWidth := rightX - r.X
	return HorizontalSplit[Rect]{
		Left:  Rect{X: r.X, Y: r.Y, Width: leftWidth, Height: r.Height},
		Right: Rect{X: rightX, Y: r.Y, Width: r.Width - leftWidth, Height: r.Height},
	}
}

// splitVertical cuts the rectangle at row value. The above part keeps
// every row less than the split line.
func (r Rect) splitVertical(mode Positioning, value int) VerticalSplit[Rect] {
	belowY := value
	if mode == Relative {
		belowY = r.Y + value
	}
	if belowY < r.Y || belowY > r.Y+r.Height {
		panic(&SplitError{Axis: "y", Value: belowY, Start: r.Y, End: r.Y + r.Height})
	}

	aboveHeight := belowY - r.Y
	return VerticalSplit[Rect]{
		Above: Rect{X: r.X, Y: r.Y, Width: r.Width, Height: aboveHeight},
		Below: Rect{X: r.X, Y: belowY, Width: r.Width, Height: r.Height - aboveHeight},
	}
}
