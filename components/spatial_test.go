package components

import (
	"math"
	"testing"
)

func TestPositionDistance(t *testing.T) {
	a := Position{X: 1, Y: 2}
	b := Position{X: 4, Y: 6}
	if got := a.DistSq(b); got != 25 {
		t.Errorf("DistSq = %v, want 25", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
	if d := b.Sub(a); d.X != 3 || d.Y != 4 {
		t.Errorf("Sub = %+v, want {3 4}", d)
	}
}

func TestPositionFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Position
		want bool
	}{
		{"origin", Position{}, true},
		{"nan x", Position{X: float32(math.NaN())}, false},
		{"inf y", Position{Y: float32(math.Inf(-1))}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Finite(); got != tc.want {
				t.Errorf("Finite() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestViewport(t *testing.T) {
	v := Viewport{Left: 50, Top: 50, Width: 1200, Height: 800}
	if !v.Contains(Position{X: 50, Y: 50}) {
		t.Error("top-left corner should be inside")
	}
	if v.Contains(Position{X: 1250, Y: 100}) {
		t.Error("right edge should be exclusive")
	}
	if c := v.Center(); c.X != 650 || c.Y != 450 {
		t.Errorf("Center = %+v, want {650 450}", c)
	}
}
