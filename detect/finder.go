package detect

import "math"

// FinderCenter is a confirmed finder-pattern center with its estimated
// module width (average of the five run lengths divided by their nominal
// module counts, 1:1:3:1:1).
type FinderCenter struct {
	X, Y       float64
	ModuleSize float64
}

// FindFinderCenters scans bm horizontally for the finder ratio, confirms
// candidates vertically and diagonally, and clusters nearby hits into one
// center each (§4.6).
func FindFinderCenters(bm *Bitmap) []FinderCenter {
	var hits []FinderCenter

	for y := 0; y < bm.H; y++ {
		runs := scanRuns(bm, y)
		for i := 5; i <= len(runs); i++ {
			window := runs[i-5 : i]
			if !isFinderRatio(window) {
				continue
			}
			// Candidate center x is the middle of the run-3 (finder core).
			cx := float64(window[2].start) + float64(window[2].length)/2
			acc := 0
			for _, r := range window {
				acc += r.length
			}

			if !confirmVertical(bm, int(cx), y) {
				continue
			}
			if !confirmDiagonal(bm, int(cx), y, acc/2) {
				continue
			}

			moduleSize := float64(acc) / 7.0
			hits = append(hits, FinderCenter{X: cx, Y: float64(y), ModuleSize: moduleSize})
		}
	}

	return clusterCenters(hits)
}

type run struct {
	start, length int
	black         bool
}

func scanRuns(bm *Bitmap, y int) []run {
	var runs []run
	if bm.W == 0 {
		return runs
	}
	cur := run{start: 0, black: bm.At(0, y)}
	for x := 1; x < bm.W; x++ {
		b := bm.At(x, y)
		if b == cur.black {
			continue
		}
		cur.length = x - cur.start
		runs = append(runs, cur)
		cur = run{start: x, black: b}
	}
	cur.length = bm.W - cur.start
	runs = append(runs, cur)
	return runs
}

// isFinderRatio checks five consecutive runs (black, white, black, white,
// black) approximate 1:1:3:1:1 within 40% per-module tolerance, per §4.6.
func isFinderRatio(w []run) bool {
	if !w[0].black || w[1].black || !w[2].black || w[3].black || !w[4].black {
		return false
	}
	total := w[0].length + w[1].length + w[2].length + w[3].length + w[4].length
	if total < 7 {
		return false
	}
	unit := float64(total) / 7.0
	tolerance := 0.4

	check := func(length int, units float64) bool {
		want := units * unit
		return math.Abs(float64(length)-want) <= tolerance*want
	}
	return check(w[0].length, 1) && check(w[1].length, 1) && check(w[2].length, 3) &&
		check(w[3].length, 1) && check(w[4].length, 1)
}

func confirmVertical(bm *Bitmap, x, y int) bool {
	runs := scanRunsVertical(bm, x)
	for i := 5; i <= len(runs); i++ {
		window := runs[i-5 : i]
		core := window[2]
		if core.start <= y && y < core.start+core.length && isFinderRatio(window) {
			return true
		}
	}
	return false
}

func scanRunsVertical(bm *Bitmap, x int) []run {
	var runs []run
	if bm.H == 0 {
		return runs
	}
	cur := run{start: 0, black: bm.At(x, 0)}
	for y := 1; y < bm.H; y++ {
		b := bm.At(x, y)
		if b == cur.black {
			continue
		}
		cur.length = y - cur.start
		runs = append(runs, cur)
		cur = run{start: y, black: b}
	}
	cur.length = bm.H - cur.start
	runs = append(runs, cur)
	return runs
}

// confirmDiagonal walks the right-hand half of both diagonals through
// (x, y), out to reach pixels, and checks each for a plausible alternating
// black/white/black run structure (at least two color changes), a looser
// check than the axis-aligned scans since diagonal sampling is coarser.
func confirmDiagonal(bm *Bitmap, x, y, reach int) bool {
	for _, dy := range [2]int{1, -1} {
		transitions := 0
		prev := bm.At(x, y)
		for d := 1; d <= reach; d++ {
			cur := bm.At(x+d, y+d*dy)
			if cur != prev {
				transitions++
				prev = cur
			}
		}
		if transitions < 2 {
			return false
		}
	}
	return true
}

// clusterCenters merges hits within three module-sizes of each other (the
// span of scan rows that cross one finder's core), averaging their
// positions.
func clusterCenters(hits []FinderCenter) []FinderCenter {
	var out []FinderCenter
	used := make([]bool, len(hits))

	for i, h := range hits {
		if used[i] {
			continue
		}
		sumX, sumY, sumM, n := h.X, h.Y, h.ModuleSize, 1
		used[i] = true
		for j := i + 1; j < len(hits); j++ {
			if used[j] {
				continue
			}
			o := hits[j]
			dist := math.Hypot(h.X-o.X, h.Y-o.Y)
			if dist < h.ModuleSize*3 {
				sumX += o.X
				sumY += o.Y
				sumM += o.ModuleSize
				n++
				used[j] = true
			}
		}
		out = append(out, FinderCenter{X: sumX / float64(n), Y: sumY / float64(n), ModuleSize: sumM / float64(n)})
	}
	return out
}

// Triplet is three finder centers assigned roles by their relative
// geometry: topLeft is the right-angle vertex.
type Triplet struct {
	TopLeft, TopRight, BottomLeft FinderCenter
}

// FindTriplets groups finder centers into triplets forming an isoceles
// right triangle (two legs equal, hypotenuse = sqrt(2)*leg within 10%),
// assigning roles and tie-breaking by smallest leg-ratio error (§4.6).
func FindTriplets(centers []FinderCenter) []Triplet {
	var triplets []Triplet
	used := make([]bool, len(centers))

	type candidate struct {
		i, j, k int
		err     float64
	}
	var candidates []candidate

	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			for k := j + 1; k < len(centers); k++ {
				if e, ok := rightTriangleError(centers[i], centers[j], centers[k]); ok {
					candidates = append(candidates, candidate{i, j, k, e})
				}
			}
		}
	}

	// Greedy by ascending error so the best-fitting triplets claim centers
	// first; a center used once cannot anchor a second triplet.
	for pass := 0; pass < len(candidates); pass++ {
		best := -1
		for idx, c := range candidates {
			if used[c.i] || used[c.j] || used[c.k] {
				continue
			}
			if best == -1 || c.err < candidates[best].err {
				best = idx
			}
		}
		if best == -1 {
			break
		}
		c := candidates[best]
		used[c.i], used[c.j], used[c.k] = true, true, true
		triplets = append(triplets, assignRoles(centers[c.i], centers[c.j], centers[c.k]))
	}

	return triplets
}

// rightTriangleError picks the pairing of (a, b, c) with the smallest
// combined leg-ratio and hypotenuse error against an isoceles right
// triangle, and returns that pairing's leg-ratio error and whether its
// combined error is within 10% tolerance.
func rightTriangleError(a, b, c FinderCenter) (float64, bool) {
	dAB := dist(a, b)
	dBC := dist(b, c)
	dCA := dist(c, a)
	sides := []float64{dAB, dBC, dCA}

	bestErr, bestLegErr := math.Inf(1), math.Inf(1)
	for _, perm := range [][3]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}} {
		leg1, leg2, hyp := sides[perm[0]], sides[perm[1]], sides[perm[2]]
		if hyp <= leg1 || hyp <= leg2 {
			continue
		}
		legRatioErr := math.Abs(leg1-leg2) / math.Max(leg1, leg2)
		hypWant := leg1 * math.Sqrt2
		hypErr := math.Abs(hyp-hypWant) / hypWant
		total := legRatioErr + hypErr
		if total < bestErr {
			bestErr = total
			bestLegErr = legRatioErr
		}
	}

	return bestLegErr, bestErr <= 0.10
}

func dist(a, b FinderCenter) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// assignRoles identifies the right-angle vertex as top-left, then uses the
// image's (x right, y down) orientation to tell top-right from
// bottom-left: top-right shares the top-left's y (roughly) and has a
// larger x; bottom-left shares its x and has a larger y.
func assignRoles(a, b, c FinderCenter) Triplet {
	pts := [3]FinderCenter{a, b, c}
	dists := [3]float64{dist(b, c), dist(a, c), dist(a, b)} // opposite-side length per vertex.

	// The right-angle vertex is opposite the hypotenuse (the longest side).
	longest := 0
	for i := 1; i < 3; i++ {
		if dists[i] > dists[longest] {
			longest = i
		}
	}
	tl := pts[longest]
	others := make([]FinderCenter, 0, 2)
	for i, p := range pts {
		if i != longest {
			others = append(others, p)
		}
	}

	// Rotate the two legs into the image's coordinate frame: the one more
	// horizontally displaced from tl is top-right, the other bottom-left.
	dx0, dy0 := others[0].X-tl.X, others[0].Y-tl.Y
	dx1, dy1 := others[1].X-tl.X, others[1].Y-tl.Y
	if math.Abs(dx0)+math.Abs(dy1) >= math.Abs(dx1)+math.Abs(dy0) {
		return Triplet{TopLeft: tl, TopRight: others[0], BottomLeft: others[1]}
	}
	return Triplet{TopLeft: tl, TopRight: others[1], BottomLeft: others[0]}
}
