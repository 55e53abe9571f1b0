package detect

import (
	"testing"

	"github.com/qrforge/qrcodec/qrcodegen"
)

func TestDecodeAlphanumericBody(t *testing.T) {
	seg := qrcodegen.MakeAlphanumeric("AC-42")
	r := qrcodegen.NewBitReader(packBits(seg.Data))
	got, err := decodeAlphanumericBody(r, seg.NumChars)
	if err != nil {
		t.Fatalf("decodeAlphanumericBody: %v", err)
	}
	if string(got) != "AC-42" {
		t.Errorf("got %q, want %q", got, "AC-42")
	}
}

func TestDecodeNumericBody(t *testing.T) {
	seg := qrcodegen.MakeNumeric("3141592653")
	r := qrcodegen.NewBitReader(packBits(seg.Data))
	got, err := decodeNumericBody(r, seg.NumChars)
	if err != nil {
		t.Fatalf("decodeNumericBody: %v", err)
	}
	if string(got) != "3141592653" {
		t.Errorf("got %q, want %q", got, "3141592653")
	}
}

func TestParseSegmentsMixedMode(t *testing.T) {
	segs, err := qrcodegen.MakeOptimalSegments("ROUTE99to the store")
	if err != nil {
		t.Fatalf("MakeOptimalSegments: %v", err)
	}
	qr, err := qrcodegen.EncodeSegments(segs, qrcodegen.Medium)
	if err != nil {
		t.Fatalf("EncodeSegments: %v", err)
	}

	blocks, err := qrcodegen.Deinterleave(
		qrcodegen.ExtractCodewords(unmaskGrid(qr), qrcodegen.FunctionModuleMask(qr.Version), qr.Version),
		qr.ErrorCorrectionLevel, qr.Version,
	)
	if err != nil {
		t.Fatalf("Deinterleave: %v", err)
	}
	var data []byte
	for _, b := range blocks {
		eccLen := qrcodegen.BlockECCLen(qr.ErrorCorrectionLevel, qr.Version)
		data = append(data, b[:len(b)-eccLen]...)
	}

	payload, err := parseSegments(data, qr.Version)
	if err != nil {
		t.Fatalf("parseSegments: %v", err)
	}
	if string(payload) != "ROUTE99to the store" {
		t.Errorf("payload = %q, want %q", payload, "ROUTE99to the store")
	}
}

// unmaskGrid reverses the mask the encoder applied when drawing codewords,
// recovering the raw (pre-mask) bit grid ExtractCodewords expects.
func unmaskGrid(qr *qrcodegen.QRCode) [][]bool {
	size := qr.Size
	out := make([][]bool, size)
	for y := 0; y < size; y++ {
		out[y] = make([]bool, size)
		for x := 0; x < size; x++ {
			invert := qrcodegen.MaskInvert(qr.Mask, x, y)
			out[y][x] = (qr.Modules[y][x] == 1) != invert
		}
	}
	return out
}

// packBits packs a segment's one-bit-per-byte Data into big-endian bytes,
// the layout BitReader reads.
func packBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		out[i/8] |= bit << (7 - uint(i%8))
	}
	return out
}
