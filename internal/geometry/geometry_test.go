package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestToPercent(t *testing.T) {
	box := Rect{Left: 0, Top: 0, Width: 800, Height: 1000}

	tests := []struct {
		name  string
		point Point
		box   Rect
		want  Percent
	}{
		{
			name:  "pointer inside page",
			point: Point{X: 100, Y: 50},
			box:   box,
			want:  Percent{X: 12.5, Y: 5},
		},
		{
			name:  "pointer at origin",
			point: Point{X: 0, Y: 0},
			box:   box,
			want:  Percent{X: 0, Y: 0},
		},
		{
			name:  "pointer at far corner",
			point: Point{X: 800, Y: 1000},
			box:   box,
			want:  Percent{X: 100, Y: 100},
		},
		{
			name:  "offset and scrolled page rect",
			point: Point{X: 250, Y: 180},
			box:   Rect{Left: 50, Top: 80, Width: 400, Height: 500},
			want:  Percent{X: 50, Y: 20},
		},
		{
			name:  "pointer left of page clamps to zero",
			point: Point{X: -40, Y: 500},
			box:   box,
			want:  Percent{X: 0, Y: 50},
		},
		{
			name:  "pointer past page edge clamps to hundred",
			point: Point{X: 900, Y: 1200},
			box:   box,
			want:  Percent{X: 100, Y: 100},
		},
		{
			name:  "degenerate rect yields origin",
			point: Point{X: 10, Y: 10},
			box:   Rect{Width: 0, Height: 0},
			want:  Percent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPercent(tt.point, tt.box)
			if math.Abs(got.X-tt.want.X) > tolerance || math.Abs(got.Y-tt.want.Y) > tolerance {
				t.Errorf("ToPercent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoundTripStability(t *testing.T) {
	boxes := []Rect{
		{Left: 0, Top: 0, Width: 612, Height: 792},
		{Left: 120, Top: -340, Width: 612 * 0.5, Height: 792 * 0.5},
		{Left: 33.3, Top: 1800, Width: 612 * 2.0, Height: 792 * 2.0},
		{Left: 0, Top: 0, Width: 800, Height: 1000},
	}
	points := []Percent{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: 12.5, Y: 5},
		{X: 50, Y: 95},
		{X: 33.333333, Y: 66.666666},
	}

	for _, box := range boxes {
		for _, pct := range points {
			got := ToPercent(ToAbsolute(pct, box), box)
			if math.Abs(got.X-pct.X) > 1e-6 || math.Abs(got.Y-pct.Y) > 1e-6 {
				t.Errorf("round trip of %+v through %+v = %+v", pct, box, got)
			}
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1, MinZoom},
		{0.5, 0.5},
		{1.0, 1.0},
		{2.0, 2.0},
		{3.5, MaxZoom},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStackLayout(t *testing.T) {
	layout := StackLayout{PageWidth: 600, PageHeight: 800, PageGap: 20}

	t.Run("page top offsets", func(t *testing.T) {
		if got := layout.PageTop(1); got != 0 {
			t.Errorf("PageTop(1) = %v, want 0", got)
		}
		if got := layout.PageTop(3); got != 1640 {
			t.Errorf("PageTop(3) = %v, want 1640", got)
		}
	})

	t.Run("field offset combines page top and percentage", func(t *testing.T) {
		// page 2 starts at 820, 25% of 800 is 200
		if got := layout.FieldOffset(2, 25); got != 1020 {
			t.Errorf("FieldOffset(2, 25) = %v, want 1020", got)
		}
	})

	t.Run("page at scroll offset", func(t *testing.T) {
		tests := []struct {
			scroll float64
			want   int
		}{
			{0, 1},
			{-50, 1},
			{799, 1},
			{810, 1}, // inside the gap after page 1
			{820, 2},
			{1650, 3},
			{99999, 3}, // past the end clamps to last page
		}
		for _, tt := range tests {
			if got := layout.PageAt(tt.scroll, 3); got != tt.want {
				t.Errorf("PageAt(%v, 3) = %v, want %v", tt.scroll, got, tt.want)
			}
		}
	})

	t.Run("total height has no trailing gap", func(t *testing.T) {
		if got := layout.TotalHeight(3); got != 2440 {
			t.Errorf("TotalHeight(3) = %v, want 2440", got)
		}
		if got := layout.TotalHeight(0); got != 0 {
			t.Errorf("TotalHeight(0) = %v, want 0", got)
		}
	})
}
