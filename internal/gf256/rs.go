package gf256

import "errors"

// ErrTooManyErrors means more error locations were found than the
// codeword's parity budget (nsym/2) can correct.
var ErrTooManyErrors = errors.New("gf256: too many errors to correct")

// ErrCorrectionFailed means the corrected codeword still has nonzero
// syndromes, so the proposed correction must be wrong.
var ErrCorrectionFailed = errors.New("gf256: correction verification failed")

// Syndromes evaluates received (QR's descending-degree codeword
// convention: received[0] is the highest-degree coefficient) at α^0
// through α^(nsym-1). A codeword is error-free iff every syndrome is zero.
func Syndromes(received []byte, nsym int) []byte {
	syn := make([]byte, nsym)
	for i := range syn {
		syn[i] = PolyEval(received, Pow(i))
	}
	return syn
}

// HasErrors reports whether any syndrome is nonzero.
func HasErrors(syn []byte) bool {
	for _, s := range syn {
		if s != 0 {
			return true
		}
	}
	return false
}

// berlekampMassey derives the error locator polynomial from the syndrome
// sequence, following Massey's 1969 shift-register synthesis algorithm.
// The result is stored ascending (result[0] is the constant term, always
// 1): Lambda(x) = result[0] + result[1]*x + ... .
func berlekampMassey(syn []byte) []byte {
	c := []byte{1}
	b := []byte{1}
	l := 0
	m := 1
	bCoeff := byte(1)

	for n := 0; n < len(syn); n++ {
		delta := syn[n]
		for i := 1; i <= l; i++ {
			if i < len(c) {
				delta ^= Mul(c[i], syn[n-i])
			}
		}

		if delta == 0 {
			m++
		} else if 2*l <= n {
			t := append([]byte(nil), c...)
			coef := Div(delta, bCoeff)
			c = xorShifted(c, b, coef, m)
			l = n + 1 - l
			b = t
			bCoeff = delta
			m = 1
		} else {
			coef := Div(delta, bCoeff)
			c = xorShifted(c, b, coef, m)
			m++
		}
	}

	return c
}

// xorShifted computes c - coef*x^m*b (ascending coefficient order),
// extending c as needed; subtraction is XOR in GF(2^m).
func xorShifted(c, b []byte, coef byte, m int) []byte {
	need := m + len(b)
	if need > len(c) {
		grown := make([]byte, need)
		copy(grown, c)
		c = grown
	} else {
		c = append([]byte(nil), c...)
	}
	for i, bi := range b {
		c[m+i] ^= Mul(coef, bi)
	}
	return c
}

// chienSearch returns the ascending-convention error positions i in
// [0, n) for which Lambda(alpha^-i) == 0, i.e. the roots of the error
// locator polynomial.
func chienSearch(lambda []byte, n int) []int {
	var positions []int
	for i := 0; i < n; i++ {
		if PolyEvalAscending(lambda, Pow(-i)) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// PolyEvalAscending evaluates p, stored ascending (p[0] is the constant
// term), at x.
func PolyEvalAscending(p []byte, x byte) byte {
	y := byte(0)
	for i := len(p) - 1; i >= 0; i-- {
		y = Mul(y, x) ^ p[i]
	}
	return y
}

// omegaPoly computes the error evaluator polynomial Omega(x) = S(x)
// Lambda(x) mod x^nsym, both operands ascending.
func omegaPoly(syn, lambda []byte, nsym int) []byte {
	deg := nsym
	if len(lambda) < deg {
		deg = len(syn) + len(lambda) - 1
	}
	omega := make([]byte, nsym)
	for i := 0; i < len(syn) && i < nsym; i++ {
		for j := 0; j < len(lambda) && i+j < nsym; j++ {
			omega[i+j] ^= Mul(syn[i], lambda[j])
		}
	}
	return omega
}

// lambdaDerivative returns the formal derivative of an ascending
// polynomial over GF(2): only odd-degree terms survive, shifted down one
// degree.
func lambdaDerivative(lambda []byte) []byte {
	if len(lambda) <= 1 {
		return []byte{0}
	}
	d := make([]byte, len(lambda)-1)
	for k := 1; k < len(lambda); k++ {
		if k%2 == 1 {
			d[k-1] = lambda[k]
		}
	}
	return d
}

// Decode corrects up to nsym/2 errors in received (QR's descending
// codeword convention) using its trailing nsym parity bytes, returning the
// full corrected codeword (data and parity together). It reports
// ErrTooManyErrors when the error locator implies more errors than the
// parity budget allows, and ErrCorrectionFailed when the proposed
// correction does not re-zero the syndromes.
func Decode(received []byte, nsym int) ([]byte, int, error) {
	syn := Syndromes(received, nsym)
	if !HasErrors(syn) {
		return received, 0, nil
	}

	lambda := berlekampMassey(syn)
	errCount := len(lambda) - 1
	if errCount <= 0 || errCount > nsym/2 {
		return nil, errCount, ErrTooManyErrors
	}

	positions := chienSearch(lambda, len(received))
	if len(positions) != errCount {
		return nil, len(positions), ErrTooManyErrors
	}

	omega := omegaPoly(syn, lambda, nsym)
	deriv := lambdaDerivative(lambda)

	corrected := append([]byte(nil), received...)
	n := len(received)
	for _, i := range positions {
		xInv := Pow(-i)
		num := Mul(Pow(i), PolyEvalAscending(omega, xInv))
		den := PolyEvalAscending(deriv, xInv)
		if den == 0 {
			return nil, errCount, ErrCorrectionFailed
		}
		magnitude := Div(num, den)

		k := n - 1 - i // convert ascending position back to QR's descending index.
		corrected[k] ^= magnitude
	}

	if HasErrors(Syndromes(corrected, nsym)) {
		return nil, errCount, ErrCorrectionFailed
	}

	return corrected, errCount, nil
}
