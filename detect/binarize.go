package detect

import "github.com/qrforge/qrcodec/raster"

// Luminance converts an RGB raster to Rec.601 grayscale: a plain
// []float64 grid is simplest to feed into both the Sauvola window pass and
// the Otsu histogram below.
type Luminance struct {
	W, H int
	Y    []float64
}

// ToLuminance applies the Rec.601 luma weights (0.299R + 0.587G + 0.114B).
func ToLuminance(img raster.Image) *Luminance {
	w, h := img.Width(), img.Height()
	l := &Luminance{W: w, H: h, Y: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := img.At(x, y)
			l.Y[y*w+x] = 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		}
	}
	return l
}

func (l *Luminance) at(x, y int) float64 {
	if x < 0 || y < 0 || x >= l.W || y >= l.H {
		return 255
	}
	return l.Y[y*l.W+x]
}

// Bitmap is a binarized image: true means a black module/pixel.
type Bitmap struct {
	W, H int
	Bits []bool
}

func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.Bits[y*b.W+x]
}

// Sauvola binarizes the luminance grid with a local mean/variance
// threshold over a window*window neighborhood, t(x,y) = mean*(1 + k*((std/R)
// - 1)), falling back to a single global Otsu threshold when the image's
// overall contrast is too low for local statistics to be meaningful (a
// near-uniform scan background, for instance).
func Sauvola(l *Luminance, window int) *Bitmap {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}

	if lowContrast(l) {
		return otsuBinarize(l)
	}

	const k = 0.34
	const r = 128.0
	half := window / 2

	// Integral images of sum and sum-of-squares for O(1) window stats.
	sum, sumSq := integralImages(l)

	bm := &Bitmap{W: l.W, H: l.H, Bits: make([]bool, l.W*l.H)}
	for y := 0; y < l.H; y++ {
		y0, y1 := clampRange(y-half, y+half, l.H)
		for x := 0; x < l.W; x++ {
			x0, x1 := clampRange(x-half, x+half, l.W)
			n := float64((x1 - x0) * (y1 - y0))
			s := windowSum(sum, l.W, x0, y0, x1, y1)
			sq := windowSum(sumSq, l.W, x0, y0, x1, y1)
			mean := s / n
			variance := sq/n - mean*mean
			if variance < 0 {
				variance = 0
			}
			std := sqrtApprox(variance)
			threshold := mean * (1 + k*(std/r-1))
			bm.Bits[y*l.W+x] = l.at(x, y) <= threshold
		}
	}
	return bm
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	return lo, hi + 1
}

// integralImages builds summed-area tables of size (w+1)*(h+1) for sum and
// sum-of-squares, so any rectangle's stats are four lookups.
func integralImages(l *Luminance) ([]float64, []float64) {
	w, h := l.W, l.H
	sum := make([]float64, (w+1)*(h+1))
	sumSq := make([]float64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		rowSum, rowSumSq := 0.0, 0.0
		for x := 0; x < w; x++ {
			v := l.Y[y*w+x]
			rowSum += v
			rowSumSq += v * v
			sum[(y+1)*stride+(x+1)] = sum[y*stride+(x+1)] + rowSum
			sumSq[(y+1)*stride+(x+1)] = sumSq[y*stride+(x+1)] + rowSumSq
		}
	}
	return sum, sumSq
}

func windowSum(table []float64, w, x0, y0, x1, y1 int) float64 {
	stride := w + 1
	return table[y1*stride+x1] - table[y0*stride+x1] - table[y1*stride+x0] + table[y0*stride+x0]
}

func sqrtApprox(x float64) float64 {
	if x <= 0 {
		return 0
	}
	guess := x
	for i := 0; i < 20; i++ {
		guess = 0.5 * (guess + x/guess)
	}
	return guess
}

// lowContrast reports whether the luminance range is too narrow for a
// local-window threshold to be meaningful.
func lowContrast(l *Luminance) bool {
	lo, hi := 255.0, 0.0
	for _, v := range l.Y {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi-lo < 24
}

// otsuBinarize picks a single global threshold maximizing inter-class
// variance over the 256-bin luminance histogram.
func otsuBinarize(l *Luminance) *Bitmap {
	var hist [256]int
	for _, v := range l.Y {
		hist[clampByte(v)]++
	}

	total := len(l.Y)
	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}

	var sumB, wB float64
	var bestThreshold int
	bestVar := -1.0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			bestThreshold = t
		}
	}

	bm := &Bitmap{W: l.W, H: l.H, Bits: make([]bool, l.W*l.H)}
	for i, v := range l.Y {
		bm.Bits[i] = v <= float64(bestThreshold)
	}
	return bm
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}
