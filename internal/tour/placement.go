package tour

// Spacing is the fixed gap, in cells, between a callout and its target,
// and the minimum margin kept from the viewport edges.
const Spacing = 20

// Rect is a screen rectangle in cell coordinates.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.Left + r.Width }

// Size is the rendered dimensions of a callout.
type Size struct {
	Width  int
	Height int
}

// Point is the computed top-left position for a callout.
type Point struct {
	Top  int
	Left int
}

// Place computes where the callout goes for a target rectangle and a
// preferred side, then clamps the result into the viewport. Clamping only
// translates the callout; the preferred side is never changed, so near a
// viewport edge the callout may end up beside rather than on that side.
func Place(target Rect, callout Size, viewport Rect, side Side) Point {
	var p Point
	switch side {
	case SideTop:
		p.Top = target.Top - callout.Height - Spacing
		p.Left = target.Left + (target.Width-callout.Width)/2
	case SideBottom:
		p.Top = target.Bottom() + Spacing
		p.Left = target.Left + (target.Width-callout.Width)/2
	case SideLeft:
		p.Left = target.Left - callout.Width - Spacing
		p.Top = target.Top + (target.Height-callout.Height)/2
	case SideRight:
		p.Left = target.Right() + Spacing
		p.Top = target.Top + (target.Height-callout.Height)/2
	default:
		p.Top = target.Bottom() + Spacing
		p.Left = target.Left + (target.Width-callout.Width)/2
	}

	if p.Left < Spacing {
		p.Left = Spacing
	}
	if p.Left > viewport.Width-callout.Width-Spacing {
		p.Left = viewport.Width - callout.Width - Spacing
	}
	if p.Top < Spacing {
		p.Top = Spacing
	}
	if p.Top > viewport.Height-callout.Height-Spacing {
		p.Top = viewport.Height - callout.Height - Spacing
	}

	return p
}
