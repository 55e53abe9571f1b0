package detect

import (
	"fmt"

	"github.com/qrforge/qrcodec/internal/gf256"
	"github.com/qrforge/qrcodec/qrcodegen"
)

// readFormatBits assembles the two redundant 15-bit format-info codewords
// from a sampled module grid, mirroring qrcodegen's drawFormatBits
// placement in reverse (§4.4, §4.8).
func readFormatBits(bits [][]bool, size int) (copy1, copy2 int) {
	get := func(x, y int) int {
		if bits[y][x] {
			return 1
		}
		return 0
	}

	for i := 0; i <= 5; i++ {
		copy1 |= get(8, i) << i
	}
	copy1 |= get(8, 7) << 6
	copy1 |= get(8, 8) << 7
	copy1 |= get(7, 8) << 8
	for i := 9; i < 15; i++ {
		copy1 |= get(14-i, 8) << i
	}

	for i := 0; i < 8; i++ {
		copy2 |= get(size-1-i, 8) << i
	}
	for i := 8; i < 15; i++ {
		copy2 |= get(8, size-15+i) << i
	}

	return copy1, copy2
}

// readVersionBits assembles the two redundant 18-bit version-info
// codewords, mirroring drawVersion in reverse. Only meaningful when
// size implies version >= 7.
func readVersionBits(bits [][]bool, size int) (copy1, copy2 int) {
	get := func(x, y int) int {
		if bits[y][x] {
			return 1
		}
		return 0
	}

	for i := 0; i < 18; i++ {
		a := size - 11 + i%3
		b := i / 3
		copy1 |= get(a, b) << i
		copy2 |= get(b, a) << i
	}
	return copy1, copy2
}

// Decoded is the result of a successful pipeline run: the recovered
// metadata and the concatenated payload bytes (§4.8). Kanji segments are
// re-encoded as Shift-JIS octets in Payload, per the decoder's scope: no
// further text transcoding is performed here.
type Decoded struct {
	Version qrcodegen.Version
	ECL     qrcodegen.ECL
	Mask    qrcodegen.Mask
	Payload []byte
}

// DecodeMatrix runs the full metadata + data pipeline against a sampled,
// unmasked-candidate module grid: it reads format info from both
// locations (preferring the lower-distance copy), derives or confirms the
// version, unmasks, extracts the interleaved codeword stream, de-
// interleaves into blocks, Reed-Solomon corrects each block, and parses
// the resulting bit stream into segments (§4.8).
func DecodeMatrix(rawBits [][]bool, isFunction [][]bool, geomVersion qrcodegen.Version) (*Decoded, error) {
	size := geomVersion.Size()

	f1, f2 := readFormatBits(rawBits, size)
	ecl1, mask1, d1, err1 := qrcodegen.DecodeFormatBitsWithDistance(f1)
	ecl2, mask2, d2, err2 := qrcodegen.DecodeFormatBitsWithDistance(f2)

	var ecl qrcodegen.ECL
	var mask qrcodegen.Mask
	switch {
	case err1 == nil && (err2 != nil || d1 <= d2):
		ecl, mask = ecl1, mask1
	case err2 == nil:
		ecl, mask = ecl2, mask2
	default:
		return nil, qrcodegen.ErrFormatUnrecoverable
	}

	version := geomVersion
	if geomVersion >= 7 {
		v1, v2 := readVersionBits(rawBits, size)
		if dv, err := qrcodegen.DecodeVersionBits(v1); err == nil {
			version = dv
		} else if dv, err := qrcodegen.DecodeVersionBits(v2); err == nil {
			version = dv
		}
		// Otherwise trust the geometric estimate, as §4.8 directs.
	}

	unmasked := make([][]bool, size)
	for y := 0; y < size; y++ {
		unmasked[y] = make([]bool, size)
		for x := 0; x < size; x++ {
			invert := qrcodegen.MaskInvert(mask, x, y)
			unmasked[y][x] = rawBits[y][x] != invert
		}
	}

	raw := qrcodegen.ExtractCodewords(unmasked, isFunction, version)

	blocks, err := qrcodegen.Deinterleave(raw, ecl, version)
	if err != nil {
		return nil, err
	}

	eccLen := qrcodegen.BlockECCLen(ecl, version)
	var data []byte
	for _, block := range blocks {
		corrected, _, err := gf256.Decode(block, eccLen)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", qrcodegen.ErrEcUncorrectable, err)
		}
		data = append(data, corrected[:len(block)-eccLen]...)
	}

	payload, err := parseSegments(data, version)
	if err != nil {
		return nil, err
	}

	return &Decoded{Version: version, ECL: ecl, Mask: mask, Payload: payload}, nil
}

// parseSegments walks the decoded data codewords as a bit stream: 4-bit
// mode indicator, then a mode-specific character count and body, until a
// terminator (mode 0000) or the stream runs out (§4.2, §4.8).
func parseSegments(data []byte, version qrcodegen.Version) ([]byte, error) {
	var out []byte
	r := qrcodegen.NewBitReader(data)

	for r.BitsLeft() >= 4 {
		modeBits, err := r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		mode, ok := qrcodegen.ModeFromBits(modeBits)
		if !ok {
			return nil, qrcodegen.ErrSegmentMalformed
		}
		if mode == qrcodegen.Terminator {
			break
		}

		ccBits := int(mode.NumCharCountBits(version))
		numChars, err := r.ReadBits(ccBits)
		if err != nil {
			return nil, err
		}

		body, err := decodeSegmentBody(r, mode, numChars)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}

	return out, nil
}

func decodeSegmentBody(r *qrcodegen.BitReader, mode qrcodegen.Mode, numChars int) ([]byte, error) {
	switch mode {
	case qrcodegen.Numeric:
		return decodeNumericBody(r, numChars)
	case qrcodegen.Alphanumeric:
		return decodeAlphanumericBody(r, numChars)
	case qrcodegen.Byte:
		out := make([]byte, numChars)
		for i := 0; i < numChars; i++ {
			v, err := r.ReadBits(8)
			if err != nil {
				return nil, err
			}
			out[i] = byte(v)
		}
		return out, nil
	case qrcodegen.Kanji:
		// Re-encoded as Shift-JIS octets, per §4.8: two raw bytes per
		// character, undoing only the 13-bit packing, not the transcoding.
		out := make([]byte, 0, numChars*2)
		for i := 0; i < numChars; i++ {
			v, err := r.ReadBits(13)
			if err != nil {
				return nil, err
			}
			c := qrcodegen.KanjiUnoffset(uint16(v))
			out = append(out, byte(c>>8), byte(c))
		}
		return out, nil
	default:
		return nil, qrcodegen.ErrSegmentMalformed
	}
}

func decodeNumericBody(r *qrcodegen.BitReader, numChars int) ([]byte, error) {
	out := make([]byte, 0, numChars)
	remaining := numChars
	for remaining > 0 {
		n := 3
		bits := 10
		if remaining < 3 {
			n = remaining
			bits = n*3 + 1
		}
		v, err := r.ReadBits(bits)
		if err != nil {
			return nil, err
		}
		digits := fmt.Sprintf("%0*d", n, v)
		out = append(out, digits...)
		remaining -= n
	}
	return out, nil
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

func decodeAlphanumericBody(r *qrcodegen.BitReader, numChars int) ([]byte, error) {
	out := make([]byte, 0, numChars)
	remaining := numChars
	for remaining >= 2 {
		v, err := r.ReadBits(11)
		if err != nil {
			return nil, err
		}
		out = append(out, alphanumericCharset[v/45], alphanumericCharset[v%45])
		remaining -= 2
	}
	if remaining == 1 {
		v, err := r.ReadBits(6)
		if err != nil {
			return nil, err
		}
		out = append(out, alphanumericCharset[v])
	}
	return out, nil
}
