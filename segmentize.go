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

import "strings"

// runClass is the tightest mode a single rune can be carried in, ranked
// cheapest to most expensive. There is no class for the ECI or Terminator
// modes; those aren't produced by text analysis.
type runClass int8

const (
	classNumeric runClass = iota
	classAlphanumeric
	classKanji
	classByte
)

func classifyRune(r rune) runClass {
	switch {
	case r >= '0' && r <= '9':
		return classNumeric
	case strings.ContainsRune(alphanumericCharset, r):
		return classAlphanumeric
	case isKanjiEncodable(string(r)):
		return classKanji
	default:
		return classByte
	}
}

// smoothMinRun is the run length, in characters, below which a Kanji or
// Alphanumeric island folds into its Byte-mode neighbor. A short island
// costs a 4-bit mode switch plus a character-count field every time it
// breaks out of a surrounding Byte run; below this length that overhead
// outweighs the narrower mode's per-character savings for the common case
// of versions in the 1-9 size class (4+8=12 header bits, ~1.5 bytes).
const smoothMinRun = 3

// MakeOptimalSegments partitions text into a minimal-cost sequence of
// Numeric, Alphanumeric, Kanji, and Byte segments. It classifies each rune
// by its tightest eligible mode, merges adjacent same-class runs, then
// smooths away runs too short to recoup their own mode-switch overhead by
// folding them into a neighboring Byte run. Ties in the resulting segment
// count are not possible by construction: each merge strictly reduces the
// segment count, so the pass always terminates at a local fixed point.
func MakeOptimalSegments(text string) ([]*QRSegment, error) {
	if len(text) == 0 {
		return []*QRSegment{}, nil
	}

	runes := []rune(text)
	classes := make([]runClass, len(runes))
	for i, r := range runes {
		classes[i] = classifyRune(r)
	}

	type run struct {
		class runClass
		start int
		end   int // exclusive
	}

	var runs []run
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && classes[j] == classes[i] {
			j++
		}
		runs = append(runs, run{classes[i], i, j})
		i = j
	}

	// Smoothing: repeatedly fold short non-Byte islands bordered by Byte
	// runs into their neighbor, merging the resulting adjacent Byte runs.
	for {
		changed := false
		for i := range runs {
			if runs[i].class == classByte || runs[i].end-runs[i].start >= smoothMinRun {
				continue
			}
			leftByte := i > 0 && runs[i-1].class == classByte
			rightByte := i < len(runs)-1 && runs[i+1].class == classByte
			if leftByte || rightByte {
				runs[i].class = classByte
				changed = true
			}
		}
		if !changed {
			break
		}

		merged := runs[:1]
		for _, r := range runs[1:] {
			last := &merged[len(merged)-1]
			if last.class == r.class {
				last.end = r.end
			} else {
				merged = append(merged, r)
			}
		}
		runs = merged
	}

	segs := make([]*QRSegment, 0, len(runs))
	for _, r := range runs {
		chunk := string(runes[r.start:r.end])
		var seg *QRSegment
		var err error
		switch r.class {
		case classNumeric:
			seg = MakeNumeric(chunk)
		case classAlphanumeric:
			seg = MakeAlphanumeric(chunk)
		case classKanji:
			seg, err = MakeKanji(chunk)
		default:
			seg = MakeBytes([]byte(chunk))
		}
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}

	return segs, nil
}
