package viewer

import (
	"math"
	"slices"
	"testing"

	"github.com/pthm-cable/smallworld/components"
)

func TestPick(t *testing.T) {
	positions := []components.Position{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 12, Y: 0},
		{X: float32(math.NaN()), Y: 0},
	}
	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   int
	}{
		{"exact hit", 0, 0, 5, 0},
		{"nearest of two", 11.5, 0, 5, 2},
		{"tie goes to lower index", 11, 0, 5, 1},
		{"on the radius", 5, 0, 5, 0},
		{"miss", 50, 50, 5, -1},
		{"zero radius miss", 1, 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(positions, tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("Pick(%v, %v, %v) = %d, want %d", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
	if got := Pick(nil, 0, 0, 10); got != -1 {
		t.Errorf("Pick on empty = %d", got)
	}
}

func TestSelection(t *testing.T) {
	var s Selection
	if _, ok := s.Primary(); ok {
		t.Fatal("empty selection has no primary")
	}

	s.Select(3, false)
	s.Select(5, true)
	s.Select(7, true)
	if !slices.Equal(s.Indices(), []int{3, 5, 7}) {
		t.Fatalf("indices = %v", s.Indices())
	}

	// Re-adding moves a node to primary without duplicating it.
	s.Select(3, true)
	if !slices.Equal(s.Indices(), []int{5, 7, 3}) {
		t.Errorf("indices after re-add = %v", s.Indices())
	}
	if p, _ := s.Primary(); p != 3 {
		t.Errorf("primary = %d, want 3", p)
	}

	s.Select(9, false)
	if s.Len() != 1 || !s.Contains(9) || s.Contains(3) {
		t.Errorf("plain select should replace, got %v", s.Indices())
	}

	s.Select(2, true)
	s.Select(40, true)
	s.Prune(10)
	if !slices.Equal(s.Indices(), []int{9, 2}) {
		t.Errorf("after prune = %v", s.Indices())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Clear left %v", s.Indices())
	}
}

type recordingSetter struct {
	set map[int]components.Position
}

func (r *recordingSetter) SetPosition(i int, p components.Position) bool {
	r.set[i] = p
	return true
}

func TestDragKeepsOffsets(t *testing.T) {
	positions := []components.Position{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 100, Y: 100}}

	var d Drag
	d.Begin([]int{0, 1, 7}, positions, 10, 10)
	if !d.Active() {
		t.Fatal("drag should be active")
	}

	dst := &recordingSetter{set: map[int]components.Position{}}
	d.Apply(dst, 50, 60)

	if len(dst.set) != 2 {
		t.Fatalf("out-of-range node should be skipped, got %v", dst.set)
	}
	if got := dst.set[0]; got != (components.Position{X: 50, Y: 60}) {
		t.Errorf("grabbed node at %v", got)
	}
	if got := dst.set[1]; got != (components.Position{X: 60, Y: 65}) {
		t.Errorf("second node at %v, want offset kept", got)
	}

	d.End()
	if d.Active() {
		t.Error("drag should end")
	}
	clear(dst.set)
	d.Apply(dst, 0, 0)
	if len(dst.set) != 0 {
		t.Error("ended drag should not move nodes")
	}
}
