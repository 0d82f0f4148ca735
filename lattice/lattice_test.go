package lattice

import (
	"testing"

	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/simerr"
)

func TestNewRejectsOddDimYForFHP(t *testing.T) {
	_, err := New(model.FHP1, 8, 7, 0)
	if err == nil {
		t.Fatal("expected a config error for odd DIM_Y with an FHP model")
	}
	if _, ok := err.(*simerr.ConfigError); !ok {
		t.Fatalf("expected *simerr.ConfigError, got %T", err)
	}
}

func TestNewRejectsNegativeCoarseRadius(t *testing.T) {
	if _, err := New(model.HPP, 8, 8, -1); err == nil {
		t.Fatal("expected a config error for negative coarse radius")
	}
}

func TestNewAcceptsEvenDimYForFHP(t *testing.T) {
	l, err := New(model.FHP1, 8, 8, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.N != 64 {
		t.Fatalf("N = %d, want 64", l.N)
	}
}

func TestHPPNeighborsWrapPeriodically(t *testing.T) {
	l, err := New(model.HPP, 4, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Cell (3,0) moving east should wrap to (0,0).
	c := 3
	if got, want := l.Neighbors.Neighbor(c, 0), 0; got != want {
		t.Errorf("east neighbor of (3,0) = %d, want %d", got, want)
	}
	// Cell (0,0) moving west should wrap to (3,0).
	if got, want := l.Neighbors.Neighbor(0, 2), 3; got != want {
		t.Errorf("west neighbor of (0,0) = %d, want %d", got, want)
	}
	// Cell (0,3) moving north should wrap to (0,0).
	top := 3 * 4
	if got, want := l.Neighbors.Neighbor(top, 1), 0; got != want {
		t.Errorf("north neighbor of (0,3) = %d, want %d", got, want)
	}
	// Cell (0,0) moving south should wrap to (0,3).
	if got, want := l.Neighbors.Neighbor(0, 3), top; got != want {
		t.Errorf("south neighbor of (0,0) = %d, want %d", got, want)
	}
}

func TestHPPNeighborRoundTrip(t *testing.T) {
	l, err := New(model.HPP, 5, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	invDir := l.Model.InvDir
	for c := 0; c < l.N; c++ {
		for d := 0; d < l.Model.NumDir; d++ {
			nb := l.Neighbors.Neighbor(c, d)
			back := l.Neighbors.Neighbor(nb, int(invDir[d]))
			if back != c {
				t.Fatalf("cell %d dir %d: neighbor-of-neighbor = %d, want %d", c, d, back, c)
			}
		}
	}
}

func TestFHPNeighborRoundTripBothParities(t *testing.T) {
	l, err := New(model.FHP2, 6, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	invDir := l.Model.InvDir
	for c := 0; c < l.N; c++ {
		for d := 0; d < l.Model.NumDir; d++ {
			nb := l.Neighbors.Neighbor(c, d)
			back := l.Neighbors.Neighbor(nb, int(invDir[d]))
			if back != c {
				t.Fatalf("cell %d dir %d: neighbor-of-neighbor = %d, want %d", c, d, back, c)
			}
		}
	}
}

func TestSwapAliasesOutputToCurrent(t *testing.T) {
	l, err := New(model.HPP, 4, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	l.SetPattern(l.Next(), 0, 0b1010)
	before := l.Current()
	l.Swap()
	if l.Current() == before {
		t.Fatal("Swap did not exchange buffers")
	}
	if l.Pattern(l.Output, 0) != 0b1010 {
		t.Fatal("Output did not track the swapped current buffer")
	}
}

func TestSnapshotOutputDecouplesFromLiveBuffer(t *testing.T) {
	l, err := New(model.HPP, 4, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	l.SetPattern(l.cur, 0, 0b0101)
	l.SnapshotOutput()
	l.SetPattern(l.cur, 0, 0b1111)
	if l.Pattern(l.Output, 0) != 0b0101 {
		t.Fatal("SnapshotOutput should freeze the pattern observed at snapshot time")
	}
	l.UseCurrentOutput()
	if l.Pattern(l.Output, 0) != 0b1111 {
		t.Fatal("UseCurrentOutput should re-alias Output onto the live current buffer")
	}
}

func TestTotalPopcount(t *testing.T) {
	l, err := New(model.HPP, 2, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	l.SetPattern(l.cur, 0, 0b0001)
	l.SetPattern(l.cur, 1, 0b0011)
	if got, want := l.TotalPopcount(), 3; got != want {
		t.Fatalf("TotalPopcount() = %d, want %d", got, want)
	}
}

func TestCoarseGridDimensions(t *testing.T) {
	l, err := New(model.HPP, 10, 10, 1) // window = 3
	if err != nil {
		t.Fatal(err)
	}
	if l.CoarseW != 4 || l.CoarseH != 4 {
		t.Fatalf("coarse dims = %dx%d, want 4x4", l.CoarseW, l.CoarseH)
	}
}
