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

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// isKanjiEncodable reports whether text transcodes entirely to Shift-JIS
// without substitution, which is what ISO/IEC 18004 mode Kanji requires
// (§4.2, §4.9): every rune must round-trip through a 2-byte Shift-JIS pair
// in one of the two rows the standard's offset formula covers.
func isKanjiEncodable(text string) bool {
	if text == "" {
		return false
	}
	enc, err := japanese.ShiftJIS.NewEncoder().String(text)
	if err != nil || len(enc) != utf8.RuneCountInString(text)*2 {
		return false
	}
	for i := 0; i < len(enc); i += 2 {
		c := uint16(enc[i])<<8 | uint16(enc[i+1])
		if _, ok := kanjiOffset(c); !ok {
			return false
		}
	}
	return true
}

// kanjiOffset applies the two Shift-JIS row offsets ISO/IEC 18004 §6.4.5
// defines, collapsing a raw double-byte value into the compact 13-bit
// field a Kanji segment stores per character.
func kanjiOffset(c uint16) (uint16, bool) {
	switch {
	case c >= 0x8140 && c <= 0x9FFC:
		c -= 0x8140
	case c >= 0xE040 && c <= 0xEBBF:
		c -= 0xC140
	default:
		return 0, false
	}
	return (c>>8)*0xC0 + (c & 0xFF), true
}

// KanjiUnoffset inverts kanjiOffset, recovering the raw double-byte
// Shift-JIS value from the compact 13-bit field read off a decoded symbol.
// Exported so package detect can reconstruct Shift-JIS octets without a
// Shift-JIS decoder of its own (§4.8 only requires re-encoding to octets,
// not further transcoding).
func KanjiUnoffset(v uint16) uint16 {
	row := v / 0xC0
	col := v % 0xC0
	c := row<<8 | col
	if c <= 0x9FFC-0x8140 {
		return c + 0x8140
	}
	return c + 0xC140
}

// MakeKanji creates a Kanji-mode segment from text that transcodes entirely
// to Shift-JIS double-byte code points. It returns ErrKanjiOutOfRange if any
// rune falls outside the two encodable rows.
func MakeKanji(text string) (*QRSegment, error) {
	enc, err := japanese.ShiftJIS.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKanjiOutOfRange, err)
	}

	n := utf8.RuneCountInString(text)
	bb := make(bitBuffer, 0, n*13)
	for i := 0; i < len(enc); i += 2 {
		c := uint16(enc[i])<<8 | uint16(enc[i+1])
		v, ok := kanjiOffset(c)
		if !ok {
			return nil, fmt.Errorf("%w: code point %#x", ErrKanjiOutOfRange, c)
		}
		bb.appendBits(int(v), 13)
	}

	return &QRSegment{
		Mode:     Kanji,
		NumChars: n,
		Data:     bb,
	}, nil
}

// DecodeKanji reconstructs text from a Kanji segment's raw 13-bit-per-char
// data, inverting MakeKanji via Shift-JIS decoding.
func DecodeKanji(numChars int, data []byte) (string, error) {
	r := NewBitReader(data)
	sjis := make([]byte, 0, numChars*2)
	for i := 0; i < numChars; i++ {
		v, err := r.ReadBits(13)
		if err != nil {
			return "", err
		}
		c := KanjiUnoffset(uint16(v))
		sjis = append(sjis, byte(c>>8), byte(c))
	}

	text, err := japanese.ShiftJIS.NewDecoder().String(string(sjis))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSegmentMalformed, err)
	}
	return text, nil
}
