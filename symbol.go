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

// Symbol is the façade callers outside this package interact with: a
// finished QR code plus its rendering and introspection methods. It wraps
// *QRCode so the encode-time internals (IsFunction bookkeeping, mask
// trial state) stay unexported while the matrix itself stays reachable for
// rendering and for the detect package's round-trip tests.
type Symbol struct {
	qr *QRCode
}

// Metadata summarizes a symbol's header fields without exposing the matrix.
type Metadata struct {
	Version Version
	ECL     ECL
	Mask    Mask
}

// Module reports whether module (i, j) — column i, row j — is black.
// Panics if either index is out of [0, Side()).
func (s *Symbol) Module(i, j int) bool {
	return s.qr.Modules[j][i] == 1
}

// Side returns the symbol's side length in modules.
func (s *Symbol) Side() int {
	return s.qr.Size
}

// Metadata returns the symbol's version, error correction level, and mask.
func (s *Symbol) Metadata() Metadata {
	return Metadata{
		Version: s.qr.Version,
		ECL:     s.qr.ErrorCorrectionLevel,
		Mask:    s.qr.Mask,
	}
}

// String renders the symbol as a block-character grid, for quick terminal
// inspection.
func (s *Symbol) String() string {
	return s.qr.String()
}

// ToSVGString renders the symbol as an SVG document with the given quiet
// zone border width, in modules.
func (s *Symbol) ToSVGString(border int, includeDocType bool) (string, error) {
	return s.qr.ToSVGString(border, includeDocType)
}

// QRCode exposes the underlying matrix for callers (raster rendering, the
// detect package's synthetic round-trip tests) that need direct access
// beyond the façade methods.
func (s *Symbol) QRCode() *QRCode {
	return s.qr
}
