package translator

import (
	"encoding/binary"
	"strings"

	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/internal/hash"
)

// rectDetectCache memoizes the axis-aligned-rectangle test across
// repeated identical point lists within one translation pass (library
// layouts commonly place thousands of identical standard-cell vias, each
// contributing the same closed-box Boundary). The cache is local to a
// single LegacyToModern call, so detection stays a pure function of its
// input despite the memoization.
type rectDetectCache struct {
	byHash map[uint64]rectResult
}

type rectResult struct {
	x, y, w, h int64
	ok         bool
}

func newRectDetectCache() *rectDetectCache {
	return &rectDetectCache{byHash: make(map[uint64]rectResult)}
}

func (c *rectDetectCache) detect(xy []gdsii.Point) (x, y, w, h int64, ok bool) {
	key := hashPoints(xy)
	if r, found := c.byHash[key]; found {
		return r.x, r.y, r.w, r.h, r.ok
	}

	x, y, w, h, ok = detectAxisAlignedRectangle(xy)
	c.byHash[key] = rectResult{x, y, w, h, ok}

	return x, y, w, h, ok
}

func hashPoints(xy []gdsii.Point) uint64 {
	var sb strings.Builder
	var tmp [8]byte

	for _, p := range xy {
		binary.LittleEndian.PutUint32(tmp[:4], uint32(p.X))
		binary.LittleEndian.PutUint32(tmp[4:], uint32(p.Y))
		sb.Write(tmp[:])
	}

	return hash.ID(sb.String())
}

// detectAxisAlignedRectangle reports whether xy is a closed 5-point
// (first == last) axis-aligned box, returning its anchor (minimum
// corner) and dimensions if so.
func detectAxisAlignedRectangle(xy []gdsii.Point) (x, y, w, h int64, ok bool) {
	if len(xy) != 5 {
		return 0, 0, 0, 0, false
	}
	if xy[0] != xy[4] {
		return 0, 0, 0, 0, false
	}

	// Adjacent edges must alternate horizontal/vertical, none zero-length.
	var horizontal [4]bool
	for i := 0; i < 4; i++ {
		a, b := xy[i], xy[i+1]
		if (a.X == b.X) == (a.Y == b.Y) {
			return 0, 0, 0, 0, false
		}
		horizontal[i] = a.Y == b.Y
	}
	if horizontal[0] == horizontal[1] || horizontal[1] == horizontal[2] || horizontal[2] == horizontal[3] {
		return 0, 0, 0, 0, false
	}

	xs := map[int32]bool{}
	ys := map[int32]bool{}
	for _, p := range xy[:4] {
		xs[p.X] = true
		ys[p.Y] = true
	}
	if len(xs) != 2 || len(ys) != 2 {
		return 0, 0, 0, 0, false
	}

	var minX, maxX, minY, maxY int32
	first := true
	for v := range xs {
		if first || v < minX {
			minX = v
		}
		if first || v > maxX {
			maxX = v
		}
		first = false
	}
	first = true
	for v := range ys {
		if first || v < minY {
			minY = v
		}
		if first || v > maxY {
			maxY = v
		}
		first = false
	}

	// Every vertex must be one of the box's four corners.
	for _, p := range xy[:4] {
		if p.X != minX && p.X != maxX {
			return 0, 0, 0, 0, false
		}
		if p.Y != minY && p.Y != maxY {
			return 0, 0, 0, 0, false
		}
	}

	return int64(minX), int64(minY), int64(maxX - minX), int64(maxY - minY), true
}

// rectanglePoints returns the closed 5-point legacy boundary outline for
// an axis-aligned box anchored at (x, y) with the given width/height,
// traversed counter-clockwise (y increasing upward) starting at the anchor.
func rectanglePoints(x, y, w, h int32) []gdsii.Point {
	return []gdsii.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}
}
