// Package geometry converts between device pixel coordinates and
// page-relative percentage coordinates so field positions survive zoom,
// scroll, and viewport changes.
package geometry

const (
	// MinZoom is the smallest zoom factor supported by the prepare surface
	MinZoom = 0.5
	// MaxZoom is the largest zoom factor supported by the prepare surface
	MaxZoom = 2.0
	// SignZoom is the fixed zoom factor used by the signing surface
	SignZoom = 1.0
)

// Rect is the on-screen rectangle of a rendered page element, in device
// pixels relative to the viewport. It already reflects zoom and scroll.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a device pixel coordinate relative to the viewport.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Percent is a page-relative position where each axis is a percentage
// (0-100) of the page width/height. The anchor is the top-left corner.
type Percent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToPercent converts a pointer position to page-relative percentages.
// Positions outside the rect are clamped to [0,100] on each axis so drags
// that overshoot the page edge still produce a bounded position.
func ToPercent(p Point, box Rect) Percent {
	if box.Width <= 0 || box.Height <= 0 {
		return Percent{}
	}
	return Percent{
		X: ClampPercent((p.X - box.Left) / box.Width * 100),
		Y: ClampPercent((p.Y - box.Top) / box.Height * 100),
	}
}

// ToAbsolute converts a page-relative percentage position back to device
// pixels for the given rendered page rect.
func ToAbsolute(pct Percent, box Rect) Point {
	return Point{
		X: box.Left + pct.X/100*box.Width,
		Y: box.Top + pct.Y/100*box.Height,
	}
}

// ClampPercent bounds a percentage value to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampZoom bounds a zoom factor to the editor's supported range.
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// StackLayout describes the vertically stacked multi-page layout used by
// the signing surface: pages rendered at a uniform size, top to bottom,
// separated by a fixed gap.
type StackLayout struct {
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
	PageGap    float64 `json:"page_gap"`
}

// PageTop returns the vertical pixel offset of the top edge of a 1-based
// page within the stack.
func (l StackLayout) PageTop(page int) float64 {
	if page < 1 {
		page = 1
	}
	return float64(page-1) * (l.PageHeight + l.PageGap)
}

// FieldOffset returns the absolute vertical pixel offset of a field at the
// given percentage height on a 1-based page. Used both for the rendered top
// offset and for scroll-to-field navigation.
func (l StackLayout) FieldOffset(page int, yPct float64) float64 {
	return l.PageTop(page) + ClampPercent(yPct)/100*l.PageHeight
}

// PageAt returns the 1-based page whose band contains the given scroll
// offset. Offsets inside a gap belong to the preceding page; offsets past
// the last page clamp to numPages. This is a derived value for display
// only, never a source of truth for placement.
func (l StackLayout) PageAt(scrollTop float64, numPages int) int {
	if numPages < 1 {
		return 1
	}
	stride := l.PageHeight + l.PageGap
	if stride <= 0 || scrollTop <= 0 {
		return 1
	}
	page := int(scrollTop/stride) + 1
	if page > numPages {
		page = numPages
	}
	return page
}

// TotalHeight returns the pixel height of the full stack for numPages
// pages, without a trailing gap.
func (l StackLayout) TotalHeight(numPages int) float64 {
	if numPages < 1 {
		return 0
	}
	return float64(numPages)*l.PageHeight + float64(numPages-1)*l.PageGap
}
