// Package detect locates and decodes QR symbols in an arbitrary raster:
// binarization, finder-pattern localization, perspective sampling, and the
// decode pipeline (unmask, de-interleave, Reed-Solomon correct, parse
// segments). It has no encode-side responsibilities; those live in
// package qrcodegen.
package detect

import (
	"github.com/qrforge/qrcodec/qrcodegen"
	"github.com/qrforge/qrcodec/raster"
)

// PartialSymbol is a located-but-not-yet-decoded candidate: geometry
// recovery succeeded, but Reed-Solomon correction and segment parsing
// happen lazily in Decode so a caller inspecting only candidate count and
// position doesn't pay for full decoding.
type PartialSymbol struct {
	bitmap     *Bitmap
	isFunction [][]bool
	rawBits    [][]bool
	geometry   Geometry
}

// Geometry exposes the recovered version and module-to-pixel transform.
func (p *PartialSymbol) Geometry() Geometry {
	return p.geometry
}

// Decode runs the full metadata and payload decode pipeline against this
// candidate.
func (p *PartialSymbol) Decode() (*Decoded, error) {
	return DecodeMatrix(p.rawBits, p.isFunction, p.geometry.Version)
}

// DetectionResult holds every candidate symbol found in one image.
type DetectionResult struct {
	Symbols []*PartialSymbol
}

// Detect binarizes img, locates finder-pattern triplets, and samples a
// module grid for each one that yields a usable geometry (§4.6, §4.7). It
// returns ErrNoFinders if fewer than three finder centers are found at
// all, and ErrGeometryAmbiguous if no three centers pass the isoceles
// check. Otherwise it returns whatever triplets pass geometry estimation
// (possibly zero, via an empty DetectionResult) rather than erroring, since
// a multi-symbol image may contain some triplets that fail estimation
// without that invalidating the others.
func Detect(img raster.Image) (*DetectionResult, error) {
	lum := ToLuminance(img)
	centers := FindFinderCenters(coarseBinarize(lum))
	if len(centers) < 3 {
		return nil, ErrNoFinders
	}

	avgModule := averageModuleSize(centers)
	bm := Sauvola(lum, int(avgModule/8+1)*2+1)

	triplets := FindTriplets(FindFinderCenters(bm))
	if len(triplets) == 0 {
		return nil, ErrGeometryAmbiguous
	}

	result := &DetectionResult{}
	for _, t := range triplets {
		geo, ok := EstimateGeometry(bm, t)
		if !ok {
			continue
		}
		isFunction := qrcodegen.FunctionModuleMask(geo.Version)
		rawBits := SampleModules(bm, geo.Transform, geo.Version)
		result.Symbols = append(result.Symbols, &PartialSymbol{
			bitmap:     bm,
			isFunction: isFunction,
			rawBits:    rawBits,
			geometry:   geo,
		})
	}

	return result, nil
}

// coarseBinarize gives the first-pass finder scan (which estimates module
// size, itself the input to the real Sauvola window) something to work
// with before that window size is known.
func coarseBinarize(lum *Luminance) *Bitmap {
	return otsuBinarize(lum)
}

func averageModuleSize(centers []FinderCenter) float64 {
	if len(centers) == 0 {
		return 8
	}
	sum := 0.0
	for _, c := range centers {
		sum += c.ModuleSize
	}
	return sum / float64(len(centers))
}
