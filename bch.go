/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcodegen

import "fmt"

// Generator polynomials and fixed XOR masks for the two BCH codes defined in
// ISO/IEC 18004 §6.9 and §7.2.1. These are independent of the Reed-Solomon
// code (encode side in qrcode.go, decode side in internal/gf256); they
// protect the 5-bit format summary and the 6-bit version number, not the
// message payload.
const (
	formatGenerator  = 0x537  // g(x) for the (15,5) format-info BCH code.
	formatXORMask    = 0x5412 // Applied so the all-zero data word never encodes to all-zero bits.
	versionGenerator = 0x1F25 // g(x) for the (18,6) version-info BCH code.
)

// EncodeFormatBits packs the error correction level and mask into the
// 15-bit format-info codeword drawn twice around the finders (§4.5).
func EncodeFormatBits(ecl ECL, mask Mask) int {
	data := ecl.formatBits()<<3 | int(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*formatGenerator
	}
	return (data<<10|rem)&0x7FFF ^ formatXORMask
}

// DecodeFormatBits recovers (ECL, Mask) from a 15-bit codeword read off a
// sampled matrix, correcting up to 3 bit errors by nearest-codeword search
// as ISO/IEC 18004 §7.4.1 allows. It returns ErrFormatUnrecoverable if no
// valid codeword lies within that distance.
func DecodeFormatBits(bits int) (ECL, Mask, error) {
	ecl, mask, _, err := DecodeFormatBitsWithDistance(bits)
	return ecl, mask, err
}

// DecodeFormatBitsWithDistance is DecodeFormatBits plus the winning
// codeword's Hamming distance, so a caller holding two copies (the
// standard's redundant placement around the finders) can prefer whichever
// decoded with less correction (§4.8).
func DecodeFormatBitsWithDistance(bits int) (ECL, Mask, int, error) {
	bits &= 0x7FFF
	unmasked := bits ^ formatXORMask

	bestDist := 16
	bestData := -1
	for data := 0; data < 32; data++ {
		rem := data
		for i := 0; i < 10; i++ {
			rem = rem<<1 ^ (rem>>9)*formatGenerator
		}
		candidate := data<<10 | rem
		dist := popcount(candidate ^ unmasked)
		if dist < bestDist {
			bestDist = dist
			bestData = data
		}
	}

	if bestData == -1 || bestDist > 3 {
		return 0, 0, bestDist, fmt.Errorf("%w: best candidate distance %d", ErrFormatUnrecoverable, bestDist)
	}

	ecl, ok := eclFromFormatBits(bestData >> 3)
	if !ok {
		return 0, 0, bestDist, fmt.Errorf("%w: recovered data has no matching ECL", ErrFormatUnrecoverable)
	}
	return ecl, Mask(bestData & 7), bestDist, nil
}

// EncodeVersionBits packs a version number (7-40) into the 18-bit
// version-info codeword drawn twice near the finders.
func EncodeVersionBits(v Version) int {
	rem := int(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*versionGenerator
	}
	return int(v)<<12 | rem
}

// DecodeVersionBits recovers a version number from an 18-bit codeword,
// correcting up to 3 bit errors. Only meaningful for versions 7-40, which
// are the only ones that carry this field.
func DecodeVersionBits(bits int) (Version, error) {
	bits &= 0x3FFFF

	bestDist := 19
	bestVersion := -1
	for v := 7; v <= 40; v++ {
		rem := v
		for i := 0; i < 12; i++ {
			rem = rem<<1 ^ (rem>>11)*versionGenerator
		}
		candidate := v<<12 | rem
		dist := popcount(candidate ^ bits)
		if dist < bestDist {
			bestDist = dist
			bestVersion = v
		}
	}

	if bestVersion == -1 || bestDist > 3 {
		return 0, fmt.Errorf("%w: best candidate distance %d", ErrVersionUnrecoverable, bestDist)
	}
	return Version(bestVersion), nil
}

func popcount(x int) int {
	n := 0
	for x != 0 {
		n += x & 1
		x >>= 1
	}
	return n
}
