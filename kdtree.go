package img2ascii

import (
	"container/heap"
	"math"
	"slices"
)

// paletteEntry is a terminal palette color and its index.
type paletteEntry struct {
	Color RGB
	Index uint8
}

// ColorNode is a node of a KD-tree over palette colors. Each node splits
// its subtree on the channel with the largest variance.
type ColorNode struct {
	Entry       paletteEntry
	Left, Right *ColorNode
	SplitAxis   int
}

// buildKDTree builds a tree from entries, reordering the slice.
func buildKDTree(entries []paletteEntry) *ColorNode {
	if len(entries) == 0 {
		return nil
	}

	axis := chooseSplitAxis(entries)
	slices.SortStableFunc(entries, func(a, b paletteEntry) int {
		return int(component(a.Color, axis)) - int(component(b.Color, axis))
	})

	median := len(entries) / 2
	return &ColorNode{
		Entry:     entries[median],
		Left:      buildKDTree(entries[:median]),
		Right:     buildKDTree(entries[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns the channel with the largest variance.
func chooseSplitAxis(entries []paletteEntry) int {
	var mean, variance [3]float64
	for _, e := range entries {
		for axis := range 3 {
			mean[axis] += float64(component(e.Color, axis))
		}
	}
	for axis := range 3 {
		mean[axis] /= float64(len(entries))
	}
	for _, e := range entries {
		for axis := range 3 {
			variance[axis] += math.Pow(float64(component(e.Color, axis))-mean[axis], 2)
		}
	}

	if variance[0] > variance[1] && variance[0] > variance[2] {
		return 0
	} else if variance[1] > variance[2] {
		return 1
	}
	return 2
}

type entryDistance struct {
	entry    paletteEntry
	distance float64
}

// farthestFirst is a max-heap on distance, so the root is the worst of
// the current k candidates.
type farthestFirst []entryDistance

func (h farthestFirst) Len() int           { return len(h) }
func (h farthestFirst) Less(i, j int) bool { return h[i].distance > h[j].distance }
func (h farthestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *farthestFirst) Push(x any)        { *h = append(*h, x.(entryDistance)) }
func (h *farthestFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kNearestNeighbors returns up to k entries closest to target in RGB
// space, nearest first.
func (node *ColorNode) kNearestNeighbors(target RGB, k int) []paletteEntry {
	if k <= 0 {
		return nil
	}
	pq := make(farthestFirst, 0, k)

	var search func(*ColorNode)
	search = func(n *ColorNode) {
		if n == nil {
			return
		}

		dist := rgbDistance(n.Entry.Color, target)
		if pq.Len() < k {
			heap.Push(&pq, entryDistance{n.Entry, dist})
		} else if dist < pq[0].distance {
			heap.Pop(&pq)
			heap.Push(&pq, entryDistance{n.Entry, dist})
		}

		axisDist := float64(component(target, n.SplitAxis)) -
			float64(component(n.Entry.Color, n.SplitAxis))
		first, second := n.Right, n.Left
		if axisDist < 0 {
			first, second = n.Left, n.Right
		}

		search(first)
		if pq.Len() < k || axisDist*axisDist < pq[0].distance {
			search(second)
		}
	}
	search(node)

	result := make([]paletteEntry, pq.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&pq).(entryDistance).entry
	}
	return result
}
