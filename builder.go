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

// Builder collects the configuration for a single symbol and produces a
// Symbol on Build. It is the entry point most callers should use instead of
// assembling segments and calling EncodeSegments directly; it exists
// alongside segmentEncoder (qrcodegen's lower-level functional-options
// record) because most callers think in terms of "this text, this
// correction level" rather than raw QRSegment slices.
type Builder struct {
	text       string
	binary     []byte
	useBinary  bool
	ecl        ECL
	boostECL   bool
	mask       Mask
	minVersion Version
	maxVersion Version
}

// NewBuilder returns a Builder defaulting to medium error correction,
// automatic mask selection, automatic ECL boosting, and the full version
// range. text is analyzed with MakeOptimalSegments at Build time.
func NewBuilder(text string) *Builder {
	return &Builder{
		text:       text,
		ecl:        Medium,
		boostECL:   true,
		mask:       AutoMask,
		minVersion: MinVersion,
		maxVersion: MaxVersion,
	}
}

// NewBinaryBuilder is like NewBuilder but carries data as a single Byte-mode
// segment instead of analyzing it as text.
func NewBinaryBuilder(data []byte) *Builder {
	b := NewBuilder("")
	b.binary = data
	b.useBinary = true
	return b
}

// WithECL sets the minimum error correction level. ECL boosting (on by
// default) may raise it further if the chosen version has spare capacity.
func (b *Builder) WithECL(ecl ECL) *Builder {
	b.ecl = ecl
	return b
}

// WithBoostECL controls whether the builder raises the error correction
// level when the chosen version has room to spare (§4.1).
func (b *Builder) WithBoostECL(boost bool) *Builder {
	b.boostECL = boost
	return b
}

// WithMask fixes the mask pattern instead of selecting it by penalty score.
func (b *Builder) WithMask(mask Mask) *Builder {
	b.mask = mask
	return b
}

// WithVersionRange restricts the version search to [min, max].
func (b *Builder) WithVersionRange(min, max Version) *Builder {
	b.minVersion = min
	b.maxVersion = max
	return b
}

// WithVersion fixes a single version.
func (b *Builder) WithVersion(v Version) *Builder {
	b.minVersion = v
	b.maxVersion = v
	return b
}

// Build analyzes the configured data into segments and encodes a Symbol.
func (b *Builder) Build() (*Symbol, error) {
	var segs []*QRSegment
	if b.useBinary {
		segs = []*QRSegment{MakeBytes(b.binary)}
	} else {
		var err error
		segs, err = MakeOptimalSegments(b.text)
		if err != nil {
			return nil, err
		}
	}

	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no data to encode", ErrInvalidConfig)
	}

	qr, err := EncodeSegments(segs, b.ecl,
		WithBoostECL(b.boostECL),
		WithMask(b.mask),
		WithMinVersion(b.minVersion),
		WithMaxVersion(b.maxVersion),
	)
	if err != nil {
		return nil, err
	}

	return &Symbol{qr: qr}, nil
}
