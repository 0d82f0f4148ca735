// Package kernel implements the three operators that advance a
// lattice.Lattice: propagate+collide and post-process, which run
// data-parallel over cells, and the sequential body-force operator.
// Fork-join parallelism is modeled on the teacher's
// chunked worker-pool pattern: callers spawn a bounded number of
// goroutines, each owning a disjoint output range, joined by a single
// sync.WaitGroup.
package kernel

import (
	"runtime"
	"sync"

	"github.com/myousefi2016/lgca/lattice"
)

// Step runs one propagate+collide pass over the whole lattice and
// swaps the ping-pong buffers. No goroutine reads the scratch buffer
// and none writes outside its own assigned cell range, so the fork-
// join join point is the only synchronization needed (spec.md §5).
func Step(l *lattice.Lattice) {
	forEachChunk(l.N, func(lo, hi int) {
		stepRange(l, lo, hi)
	})
	l.Swap()
}

// forEachChunk partitions [0, n) into up to runtime.GOMAXPROCS(0)
// contiguous ranges and runs fn over each range in its own goroutine,
// returning only once every worker has finished.
func forEachChunk(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > n {
		numWorkers = n
	}
	chunkSize := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// stepRange applies the gather/classify/scatter algorithm of §4.3 to
// every cell in [lo, hi).
func stepRange(l *lattice.Lattice, lo, hi int) {
	d := l.Model
	invDir := d.InvDir
	cur := l.Current()
	next := l.Next()

	for c := lo; c < hi; c++ {
		var in uint16
		for dir := 0; dir < d.NumDir; dir++ {
			src := l.Neighbors.Neighbor(c, int(invDir[dir]))
			if cur.Get(src*lattice.Stride + dir) {
				in |= 1 << uint(dir)
			}
		}

		var out uint16
		switch l.CellType[c] {
		case lattice.Fluid:
			b := 0
			if l.Random.Get(c) {
				b = 1
			}
			out = d.CollisionLUT[in][b]
		case lattice.SolidNoSlip:
			out = d.BBLUT[in]
		case lattice.SolidSlip:
			out = in
			if l.Neighbors.OnEdge(c, lattice.EdgeN) || l.Neighbors.OnEdge(c, lattice.EdgeS) {
				out = d.BFXLUT[out]
			}
			if l.Neighbors.OnEdge(c, lattice.EdgeE) || l.Neighbors.OnEdge(c, lattice.EdgeW) {
				out = d.BFYLUT[out]
			}
		}

		l.SetPattern(next, c, out)
	}
}
