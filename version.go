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

// Version is a QR code version in the range [1, 40]. The side length of the
// symbol is 17 + 4*Version modules.
type Version int

// The minimum and maximum QR code version (symbol size).
const (
	MinVersion = Version(1)
	MaxVersion = Version(40)
)

// Size returns the side length, in modules, of a symbol at this version.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// sizeClass buckets a version into the three character-count-indicator
// bands used throughout the standard: 1-9, 10-26, 27-40.
func (v Version) sizeClass() int {
	switch {
	case v <= 9:
		return 0
	case v <= 26:
		return 1
	default:
		return 2
	}
}
