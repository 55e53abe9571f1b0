// Package hc implements the experimental high-capacity polychromatic mode:
// three independent QR symbols multiplexed into the red, green, and blue
// channels of a single raster for roughly 3x the payload of one symbol at
// the same version and error correction level (§4.9).
package hc

import (
	"fmt"

	"github.com/qrforge/qrcodec/detect"
	"github.com/qrforge/qrcodec/qrcodegen"
	"github.com/qrforge/qrcodec/raster"
)

// planeMarker is the reserved Byte-mode sentinel prefixed to the
// R-channel plane's data so a decoder with scrambled channel order (or a
// caller auditing a composite for tampering) can identify which plane is
// P0 without trusting channel position alone.
const planeMarker = 0xFE

// Encode splits data into three roughly equal byte-count chunks (the
// first two of ceil(n/3), the third the remainder), encodes each as an
// independent symbol at a common version (the smallest that fits all
// three) and the given error correction level, and composites them into
// the red, green, and blue channels of one raster (6 pixels per module,
// inside a 4-module white border): a plane's black module zeroes its
// channel, leaving the other two channels unaffected, so the composite can
// show up to eight colors per pixel.
func Encode(data []byte, ecl qrcodegen.ECL) (*raster.Bitmap, error) {
	p0, p1, p2 := splitThirds(data)

	segs0 := []*qrcodegen.QRSegment{qrcodegen.MakeBytes([]byte{planeMarker}), qrcodegen.MakeBytes(p0)}
	segs1 := []*qrcodegen.QRSegment{qrcodegen.MakeBytes(p1)}
	segs2 := []*qrcodegen.QRSegment{qrcodegen.MakeBytes(p2)}

	qr0, qr1, qr2, err := encodeAtCommonVersion(segs0, segs1, segs2, ecl)
	if err != nil {
		return nil, err
	}

	const scale, border = 6, 4
	side := qr0.Size
	px := (side + 2*border) * scale
	bm := raster.NewBitmap(px, px)
	for y := 0; y < px; y++ {
		for x := 0; x < px; x++ {
			i, j := x/scale-border, y/scale-border
			var r, g, b uint8 = 255, 255, 255
			if i >= 0 && j >= 0 && i < side && j < side {
				r = planeChannel(qr0, i, j)
				g = planeChannel(qr1, i, j)
				b = planeChannel(qr2, i, j)
			}
			bm.Set(x, y, r, g, b)
		}
	}
	return bm, nil
}

func planeChannel(qr *qrcodegen.QRCode, x, y int) uint8 {
	if qr.Modules[y][x] == 1 {
		return 0
	}
	return 255
}

func splitThirds(data []byte) ([]byte, []byte, []byte) {
	n := len(data)
	chunk := (n + 2) / 3
	end0 := min(chunk, n)
	end1 := min(2*chunk, n)
	return data[:end0], data[end0:end1], data[end1:]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// encodeAtCommonVersion finds the smallest version at which all three
// segment sets fit the given ECL, then encodes all three at exactly that
// version so their matrices are the same size and composite cleanly.
func encodeAtCommonVersion(segs0, segs1, segs2 []*qrcodegen.QRSegment, ecl qrcodegen.ECL) (*qrcodegen.QRCode, *qrcodegen.QRCode, *qrcodegen.QRCode, error) {
	for v := qrcodegen.MinVersion; v <= qrcodegen.MaxVersion; v++ {
		qr0, err0 := qrcodegen.EncodeSegments(segs0, ecl, qrcodegen.WithMinVersion(v), qrcodegen.WithMaxVersion(v), qrcodegen.WithBoostECL(false))
		if err0 != nil {
			continue
		}
		qr1, err1 := qrcodegen.EncodeSegments(segs1, ecl, qrcodegen.WithMinVersion(v), qrcodegen.WithMaxVersion(v), qrcodegen.WithBoostECL(false))
		if err1 != nil {
			continue
		}
		qr2, err2 := qrcodegen.EncodeSegments(segs2, ecl, qrcodegen.WithMinVersion(v), qrcodegen.WithMaxVersion(v), qrcodegen.WithBoostECL(false))
		if err2 != nil {
			continue
		}
		return qr0, qr1, qr2, nil
	}
	return nil, nil, nil, fmt.Errorf("%w: no common version fits all three planes", qrcodegen.ErrCapacityExceeded)
}

// Decode splits img into its three channel planes, runs the standard
// detector and decoder on each independently, and reassembles the
// payload in channel order (R, G, B). It returns ErrHcPlaneMismatch if
// the three planes disagree on (version, ECL); each plane's own
// Reed-Solomon parity is what lets that plane individually survive
// localized damage (§4.9).
func Decode(img raster.Image) ([]byte, error) {
	planes := []raster.Image{
		channelPlane{img, 0},
		channelPlane{img, 1},
		channelPlane{img, 2},
	}

	var decoded [3]*detect.Decoded
	for i, p := range planes {
		result, err := detect.Detect(p)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		if len(result.Symbols) == 0 {
			return nil, fmt.Errorf("plane %d: %w", i, detect.ErrNoFinders)
		}
		d, err := result.Symbols[0].Decode()
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		decoded[i] = d
	}

	for i := 1; i < 3; i++ {
		if decoded[i].Version != decoded[0].Version || decoded[i].ECL != decoded[0].ECL {
			return nil, ErrHcPlaneMismatch
		}
	}

	p0 := decoded[0].Payload
	if len(p0) > 0 && p0[0] == planeMarker {
		p0 = p0[1:]
	}

	out := make([]byte, 0, len(p0)+len(decoded[1].Payload)+len(decoded[2].Payload))
	out = append(out, p0...)
	out = append(out, decoded[1].Payload...)
	out = append(out, decoded[2].Payload...)
	return out, nil
}

// channelPlane presents a single RGB channel of an image as a grayscale
// (r=g=b) raster.Image, so the ordinary luminance-based binarizer and
// detector work on it unmodified.
type channelPlane struct {
	img raster.Image
	ch  int
}

func (c channelPlane) Width() int  { return c.img.Width() }
func (c channelPlane) Height() int { return c.img.Height() }

func (c channelPlane) At(x, y int) (uint8, uint8, uint8) {
	r, g, b := c.img.At(x, y)
	var v uint8
	switch c.ch {
	case 0:
		v = r
	case 1:
		v = g
	default:
		v = b
	}
	return v, v, v
}
