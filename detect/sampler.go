package detect

import (
	"math"

	"github.com/qrforge/qrcodec/qrcodegen"
)

// Geometry carries everything the sampler worked out about a located
// symbol: its estimated version and the mapping from module coordinates to
// image pixel coordinates.
type Geometry struct {
	Version  qrcodegen.Version
	Transform
}

// EstimateGeometry turns a finder triplet into a Geometry: module size from
// average finder width, provisional version from inter-finder spacing,
// refined by counting timing-pattern transitions, then a homography (or
// affine fallback for V=1) built from the three finders plus the
// bottom-right alignment pattern (§4.7).
func EstimateGeometry(bm *Bitmap, t Triplet) (Geometry, bool) {
	m := (t.TopLeft.ModuleSize + t.TopRight.ModuleSize + t.BottomLeft.ModuleSize) / 3
	if m <= 0 {
		return Geometry{}, false
	}

	dTop := dist(t.TopLeft, t.TopRight)
	version := estimateVersion(dTop, m)
	version = refineVersionByTiming(bm, t, m, version)
	if version < qrcodegen.MinVersion {
		version = qrcodegen.MinVersion
	}
	if version > qrcodegen.MaxVersion {
		version = qrcodegen.MaxVersion
	}

	side := float64(version.Size())

	// Finder centers are the middles of modules 3 and side-4, i.e. 3.5 and
	// side-3.5 in the half-module-offset coordinates Transform uses.
	near, far := 3.5, side-3.5

	if version == 1 {
		tr := AffineFrom3(
			point{near, near}, point{far, near}, point{near, far},
			point{t.TopLeft.X, t.TopLeft.Y}, point{t.TopRight.X, t.TopRight.Y}, point{t.BottomLeft.X, t.BottomLeft.Y},
		)
		return Geometry{Version: version, Transform: tr}, true
	}

	centers := qrcodegen.AlignmentCenters(version)
	last := float64(centers[len(centers)-1]) + 0.5
	brCenter := point{last, last}
	// The last alignment center lies on the diagonal from the top-left
	// finder to the virtual fourth finder center, 3 modules short of it.
	corner := predictBottomRight(t)
	f := (last - near) / (far - near)
	predicted := point{t.TopLeft.X + (corner.X-t.TopLeft.X)*f, t.TopLeft.Y + (corner.Y-t.TopLeft.Y)*f}
	refined := refineAlignment(bm, predicted, m)

	tr, ok := HomographyFrom4(
		point{near, near}, point{far, near}, point{near, far}, brCenter,
		point{t.TopLeft.X, t.TopLeft.Y}, point{t.TopRight.X, t.TopRight.Y}, point{t.BottomLeft.X, t.BottomLeft.Y}, refined,
	)
	if !ok {
		tr = AffineFrom3(
			point{near, near}, point{far, near}, point{near, far},
			point{t.TopLeft.X, t.TopLeft.Y}, point{t.TopRight.X, t.TopRight.Y}, point{t.BottomLeft.X, t.BottomLeft.Y},
		)
	}
	return Geometry{Version: version, Transform: tr}, true
}

func estimateVersion(interFinderDist, moduleSize float64) qrcodegen.Version {
	// d = (V*4 + 10) * m  =>  V = (d/m - 10) / 4
	v := math.Round((interFinderDist/moduleSize - 10) / 4)
	if v < 1 {
		v = 1
	}
	if v > 40 {
		v = 40
	}
	return qrcodegen.Version(v)
}

// refineVersionByTiming counts black/white transitions along the timing
// pattern between the top-left and top-right finders; the timing row
// alternates every module from column 6 to column side-7, so the
// transition count is side-13, which pins down the version exactly when
// the coarse distance estimate is off by one.
// The timing pattern runs along module row 6, three modules below the
// finder centers (module row 3), so the scan line is the finder-to-finder
// segment shifted down by 3*m along the top-left-to-bottom-left direction,
// not the finder-center segment itself (which crosses the finder cores and
// the data region instead of the alternating timing modules).
func refineVersionByTiming(bm *Bitmap, t Triplet, m float64, guess qrcodegen.Version) qrcodegen.Version {
	steps := 200

	downX, downY := t.BottomLeft.X-t.TopLeft.X, t.BottomLeft.Y-t.TopLeft.Y
	downLen := math.Hypot(downX, downY)
	if downLen == 0 {
		return guess
	}
	offX, offY := downX/downLen*3*m, downY/downLen*3*m

	x0, y0 := t.TopLeft.X+offX, t.TopLeft.Y+offY
	x1, y1 := t.TopRight.X+offX, t.TopRight.Y+offY

	prev := bm.At(int(x0), int(y0))
	transitions := 0
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := x0 + (x1-x0)*f
		y := y0 + (y1-y0)*f
		cur := bm.At(int(x), int(y))
		if cur != prev {
			transitions++
			prev = cur
		}
	}

	if transitions < 5 {
		return guess
	}

	// The finder centers are side-7 modules apart, 6 more than the side-13
	// transitions counted. Re-derive a version from that span and prefer it
	// when it disagrees with the coarse distance-based guess by exactly
	// one, which is the common off-by-one failure mode of that estimate.
	timingVersion := estimateVersion(float64(transitions+6)*m, m)
	if timingVersion != guess && math.Abs(float64(timingVersion-guess)) <= 1 {
		return timingVersion
	}
	return guess
}

type point struct{ X, Y float64 }

func predictBottomRight(t Triplet) point {
	// Fourth corner of the parallelogram formed by the three finders.
	return point{
		X: t.TopRight.X + t.BottomLeft.X - t.TopLeft.X,
		Y: t.TopRight.Y + t.BottomLeft.Y - t.TopLeft.Y,
	}
}

// refineAlignment searches a radius-2m box around predicted and returns the
// dark pixel nearest to it, falling back to the prediction itself when the
// box holds no dark pixel. It does not check for the alignment pattern's
// 1:1:1:1:1 dark/light signature.
func refineAlignment(bm *Bitmap, predicted point, m float64) point {
	radius := int(2 * m)
	if radius < 1 {
		return predicted
	}

	best := predicted
	bestScore := math.Inf(1)
	cx, cy := int(predicted.X), int(predicted.Y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if !bm.At(x, y) {
				continue
			}
			score := math.Hypot(float64(dx), float64(dy))
			if score < bestScore {
				bestScore = score
				best = point{float64(x), float64(y)}
			}
		}
	}
	return best
}

// Transform maps module coordinates (column i, row j, both including the
// half-module offset callers should add before calling) to pixel
// coordinates in the source raster.
type Transform interface {
	Map(i, j float64) (x, y float64)
}

type affine struct {
	a, b, c, d, e, f float64
}

func (t affine) Map(i, j float64) (float64, float64) {
	return t.a*i + t.b*j + t.c, t.d*i + t.e*j + t.f
}

// AffineFrom3 solves the unique affine map taking srcA/srcB/srcC to
// dstA/dstB/dstC, used for V=1 symbols which have no alignment pattern to
// anchor a full homography (§4.7).
func AffineFrom3(srcA, srcB, srcC, dstA, dstB, dstC point) Transform {
	// [a b c] [i]   [x]
	// [d e f] [j] = [y]
	//         [1]
	m := [3][4]float64{
		{srcA.X, srcA.Y, 1, dstA.X},
		{srcB.X, srcB.Y, 1, dstB.X},
		{srcC.X, srcC.Y, 1, dstC.X},
	}
	abc := solve3(m)

	m2 := [3][4]float64{
		{srcA.X, srcA.Y, 1, dstA.Y},
		{srcB.X, srcB.Y, 1, dstB.Y},
		{srcC.X, srcC.Y, 1, dstC.Y},
	}
	def := solve3(m2)

	return affine{a: abc[0], b: abc[1], c: abc[2], d: def[0], e: def[1], f: def[2]}
}

func solve3(m [3][4]float64) [3]float64 {
	// Gaussian elimination with partial pivoting on a 3x4 augmented matrix.
	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		if math.Abs(m[col][col]) < 1e-12 {
			continue
		}
		for r := 0; r < 3; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c < 4; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		if math.Abs(m[i][i]) > 1e-12 {
			out[i] = m[i][3] / m[i][i]
		}
	}
	return out
}

type homography struct {
	h [8]float64
}

func (t homography) Map(i, j float64) (float64, float64) {
	h := t.h
	denom := h[6]*i + h[7]*j + 1
	if denom == 0 {
		denom = 1e-9
	}
	x := (h[0]*i + h[1]*j + h[2]) / denom
	y := (h[3]*i + h[4]*j + h[5]) / denom
	return x, y
}

// HomographyFrom4 solves the 8-unknown perspective transform taking four
// source points to four destination points by Gaussian elimination on the
// standard DLT linear system. Returns ok=false if the system is singular
// (near-collinear points).
func HomographyFrom4(s0, s1, s2, s3, d0, d1, d2, d3 point) (Transform, bool) {
	srcs := [4]point{s0, s1, s2, s3}
	dsts := [4]point{d0, d1, d2, d3}

	var a [8][9]float64
	for k := 0; k < 4; k++ {
		sx, sy := srcs[k].X, srcs[k].Y
		dx, dy := dsts[k].X, dsts[k].Y
		a[2*k] = [9]float64{sx, sy, 1, 0, 0, 0, -dx * sx, -dx * sy, dx}
		a[2*k+1] = [9]float64{0, 0, 0, sx, sy, 1, -dy * sx, -dy * sy, dy}
	}

	h, ok := solve8(a)
	return homography{h: h}, ok
}

func solve8(m [8][9]float64) ([8]float64, bool) {
	const n = 8
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		if math.Abs(m[col][col]) < 1e-12 {
			return [8]float64{}, false
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	var out [8]float64
	for i := 0; i < n; i++ {
		out[i] = m[i][n] / m[i][i]
	}
	return out, true
}

// SampleModules reads every module of a version-sized symbol through
// transform tr, majority-voting a 3x3 pixel neighborhood around each
// mapped point (§4.7).
func SampleModules(bm *Bitmap, tr Transform, v qrcodegen.Version) [][]bool {
	side := v.Size()
	out := make([][]bool, side)
	for j := 0; j < side; j++ {
		out[j] = make([]bool, side)
		for i := 0; i < side; i++ {
			x, y := tr.Map(float64(i)+0.5, float64(j)+0.5)
			out[j][i] = majorityVote3x3(bm, int(math.Round(x)), int(math.Round(y)))
		}
	}
	return out
}

func majorityVote3x3(bm *Bitmap, cx, cy int) bool {
	black := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if bm.At(cx+dx, cy+dy) {
				black++
			}
		}
	}
	return black >= 5
}
