package viewer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/systems"
)

func TestDegreeRange(t *testing.T) {
	lo, hi := degreeRange([]int{4, 2, 7, 3})
	if lo != 2 || hi != 7 {
		t.Errorf("degreeRange = %d, %d; want 2, 7", lo, hi)
	}
	if lo, hi := degreeRange(nil); lo != 0 || hi != 0 {
		t.Errorf("empty degreeRange = %d, %d", lo, hi)
	}
}

func TestDegreeColor(t *testing.T) {
	low := rl.Color{R: 0, G: 0, B: 0, A: 255}
	high := rl.Color{R: 200, G: 100, B: 50, A: 255}

	if got := degreeColor(low, high, 2, 2, 6); got != low {
		t.Errorf("min degree = %v, want low", got)
	}
	if got := degreeColor(low, high, 6, 2, 6); got != high {
		t.Errorf("max degree = %v, want high", got)
	}
	if got := degreeColor(low, high, 4, 2, 6); got.R != 100 || got.G != 50 || got.B != 25 {
		t.Errorf("mid degree = %v", got)
	}
	if got := degreeColor(low, high, 3, 3, 3); got != low {
		t.Errorf("flat range = %v, want low", got)
	}
}

func TestSelectedCells(t *testing.T) {
	nan := float32(math.NaN())
	grid := systems.NewSpatialGrid(100)
	grid.Rebuild([]components.Position{
		{X: 10, Y: 10},
		{X: 50, Y: 90},
		{X: 150, Y: -20},
		{X: nan, Y: 0},
	})

	got := selectedCells(grid, []int{2, 0, 1, 3, 9})
	want := [][2]int32{{1, -1}, {0, 0}}
	if len(got) != len(want) {
		t.Fatalf("selectedCells = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, got[i], want[i])
		}
	}

	if cells := selectedCells(grid, nil); len(cells) != 0 {
		t.Errorf("empty selection gave %v", cells)
	}
}
