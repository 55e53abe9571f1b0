package qrcodegen

// Mask identifies one of the eight deterministic XOR patterns applied over
// data modules (§3, §4.3). AutoMask tells the builder to pick the
// minimum-penalty mask itself.
type Mask int8

const AutoMask Mask = -1

// maskFuncs holds the eight pattern predicates directly from ISO/IEC 18004
// table 20. Both the encoder (applyMask) and the decoder (detect package,
// via MaskInvert) key off the same table so masking is its own inverse
// regardless of which side calls it.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// MaskInvert reports whether the mask pattern m inverts the module at
// (x, y). Exported so package detect can unmask a sampled matrix with
// exactly the formula the encoder used.
func MaskInvert(m Mask, x, y int) bool {
	if m < 0 || int(m) >= len(maskFuncs) {
		panic("illegal mask value")
	}
	return maskFuncs[m](x, y)
}
