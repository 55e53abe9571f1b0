// Package raster adapts the stdlib image package into the small pixel
// interface the detect and hc packages sample from, and renders a finished
// qrcodegen.Symbol into a raster the same way.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Image is a minimal RGB raster source. Width/Height are in pixels; At
// returns 8-bit channel values for pixel (x, y).
type Image interface {
	Width() int
	Height() int
	At(x, y int) (r, g, b uint8)
}

// FromStdImage adapts a stdlib image.Image into Image.
func FromStdImage(img image.Image) Image {
	return &stdAdapter{img: img}
}

type stdAdapter struct {
	img image.Image
}

func (s *stdAdapter) Width() int  { return s.img.Bounds().Dx() }
func (s *stdAdapter) Height() int { return s.img.Bounds().Dy() }

func (s *stdAdapter) At(x, y int) (uint8, uint8, uint8) {
	b := s.img.Bounds()
	c := color.NRGBAModel.Convert(s.img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	return c.R, c.G, c.B
}

// Bitmap is a standalone, mutable RGB raster, useful for synthesizing test
// fixtures and for compositing the three high-capacity planes.
type Bitmap struct {
	W, H int
	Pix  []uint8 // 3 bytes (R, G, B) per pixel, row-major.
}

// NewBitmap allocates a black w*h bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

func (bm *Bitmap) Width() int  { return bm.W }
func (bm *Bitmap) Height() int { return bm.H }

func (bm *Bitmap) At(x, y int) (uint8, uint8, uint8) {
	i := (y*bm.W + x) * 3
	return bm.Pix[i], bm.Pix[i+1], bm.Pix[i+2]
}

// Set writes pixel (x, y).
func (bm *Bitmap) Set(x, y int, r, g, b uint8) {
	i := (y*bm.W + x) * 3
	bm.Pix[i], bm.Pix[i+1], bm.Pix[i+2] = r, g, b
}

// ToStdImage converts the bitmap into a stdlib *image.NRGBA for encoding
// (PNG, etc).
func (bm *Bitmap) ToStdImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, bm.W, bm.H))
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			r, g, b := bm.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// ModulePainter renders a symbol's modules into a Bitmap at moduleSize
// pixels per module plus a quiet-zone border, in modules. black/white set
// the fill colors.
type ModulePainter struct {
	ModuleSize int
	Border     int
	Black      [3]uint8
	White      [3]uint8
}

// Paint renders side x side modules (moduleAt(i, j) reports whether module
// column i, row j is black) into a fresh Bitmap.
func (p ModulePainter) Paint(side int, moduleAt func(i, j int) bool) *Bitmap {
	if p.ModuleSize < 1 {
		p.ModuleSize = 1
	}
	px := (side + 2*p.Border) * p.ModuleSize
	bm := NewBitmap(px, px)
	for y := 0; y < px; y++ {
		for x := 0; x < px; x++ {
			bm.Set(x, y, p.White[0], p.White[1], p.White[2])
		}
	}
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			if !moduleAt(i, j) {
				continue
			}
			x0 := (i + p.Border) * p.ModuleSize
			y0 := (j + p.Border) * p.ModuleSize
			for dy := 0; dy < p.ModuleSize; dy++ {
				for dx := 0; dx < p.ModuleSize; dx++ {
					bm.Set(x0+dx, y0+dy, p.Black[0], p.Black[1], p.Black[2])
				}
			}
		}
	}
	return bm
}

// Resample scales src to exactly w by h pixels using a high-quality
// resampler, for normalizing a detector's captured region before module
// sampling (§4.7) or for upscaling a painted symbol for display.
func Resample(src Image, w, h int) *Bitmap {
	srcImg := toNRGBA(src)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)

	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := dst.NRGBAAt(x, y)
			out.Set(x, y, c.R, c.G, c.B)
		}
	}
	return out
}

func toNRGBA(src Image) *image.NRGBA {
	w, h := src.Width(), src.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := src.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
