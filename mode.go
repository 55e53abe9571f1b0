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

// Mode represents the mode (numeric, alphanumeric, byte, kanji, ECI, or the
// terminator) of a segment.
type Mode struct {
	modeBits int8
	numBits  [3]int8
	ordinal  int8 // tie-break rank used by the segment analyzer; lower wins.
}

// Mode values for a segment. Terminator is not a real encodable mode; it is
// the all-zero 4-bit indicator that ends a message (§4.8).
var (
	Terminator   = Mode{0x0, [3]int8{0, 0, 0}, -1}
	Numeric      = Mode{0x1, [3]int8{10, 12, 14}, 0}
	Alphanumeric = Mode{0x2, [3]int8{9, 11, 13}, 1}
	Byte         = Mode{0x4, [3]int8{8, 16, 16}, 2}
	Kanji        = Mode{0x8, [3]int8{8, 10, 12}, 3}
	ECI          = Mode{0x7, [3]int8{0, 0, 0}, 4}
)

var modesByBits = map[int8]Mode{
	Terminator.modeBits:   Terminator,
	Numeric.modeBits:      Numeric,
	Alphanumeric.modeBits: Alphanumeric,
	Byte.modeBits:         Byte,
	Kanji.modeBits:        Kanji,
	ECI.modeBits:          ECI,
}

// ModeFromBits looks up a Mode by its 4-bit indicator, as read from a
// decoded bit stream. The ECI indicator is recognized here, but the detect
// package's segment parser does not decode ECI segments and reports
// ErrSegmentMalformed for them.
func ModeFromBits(bits int) (Mode, bool) {
	m, ok := modesByBits[int8(bits)]
	return m, ok
}

// NumCharCountBits returns the width, in bits, of this mode's character
// count indicator field at the given version.
func (m Mode) NumCharCountBits(version Version) int8 {
	return m.numBits[version.sizeClass()]
}

func (m *Mode) numCharCountBits(version Version) int8 {
	return m.NumCharCountBits(version)
}
