package gf256

import (
	"bytes"
	"testing"
)

// computeDivisor builds the degree-nsym RS generator polynomial, root alpha^0,
// stored highest-degree-first (QR's convention), mirroring the root
// package's encode-side generator construction.
func computeDivisor(nsym int) []byte {
	result := make([]byte, nsym)
	result[nsym-1] = 1

	root := byte(1)
	for i := 0; i < nsym; i++ {
		for j := 0; j < nsym; j++ {
			result[j] = Mul(result[j], root)
			if j+1 < nsym {
				result[j] ^= result[j+1]
			}
		}
		root = Mul(root, 0x02)
	}
	return result
}

// encodeSystematic appends nsym parity bytes to data (descending
// convention throughout), the standard systematic RS encode used to build
// fixtures for Decode.
func encodeSystematic(data []byte, nsym int) []byte {
	divisor := computeDivisor(nsym)
	remainder := make([]byte, nsym)
	for _, b := range data {
		factor := b ^ remainder[0]
		copy(remainder, remainder[1:])
		remainder[nsym-1] = 0
		for i, d := range divisor {
			remainder[i] ^= Mul(d, factor)
		}
	}
	return append(append([]byte(nil), data...), remainder...)
}

func TestDecodeNoErrors(t *testing.T) {
	data := []byte("HELLO WORLD")
	nsym := 10
	codeword := encodeSystematic(data, nsym)

	corrected, count, err := Decode(codeword, nsym)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 corrections, got %d", count)
	}
	if !bytes.Equal(corrected, codeword) {
		t.Error("an error-free codeword must come back unchanged")
	}
}

func TestDecodeSingleError(t *testing.T) {
	data := []byte("HELLO WORLD, THIS IS A TEST MESSAGE")
	nsym := 16
	codeword := encodeSystematic(data, nsym)

	damaged := append([]byte(nil), codeword...)
	damaged[5] ^= 0x5A

	corrected, count, err := Decode(damaged, nsym)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 correction, got %d", count)
	}
	if !bytes.Equal(corrected, codeword) {
		t.Error("corrected codeword does not match the original")
	}
}

func TestDecodeMaxCorrectableErrors(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 20)
	nsym := 10 // can correct up to nsym/2 = 5 errors
	codeword := encodeSystematic(data, nsym)

	damaged := append([]byte(nil), codeword...)
	for _, pos := range []int{0, 3, 7, 12, 20} {
		damaged[pos] ^= 0xFF
	}

	corrected, count, err := Decode(damaged, nsym)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 corrections, got %d", count)
	}
	if !bytes.Equal(corrected, codeword) {
		t.Error("corrected codeword does not match the original")
	}
}

func TestDecodeTooManyErrors(t *testing.T) {
	data := bytes.Repeat([]byte{0x7E}, 20)
	nsym := 10 // can correct at most 5 errors
	codeword := encodeSystematic(data, nsym)

	damaged := append([]byte(nil), codeword...)
	for _, pos := range []int{0, 3, 7, 12, 20, 25} {
		damaged[pos] ^= 0xFF
	}

	_, _, err := Decode(damaged, nsym)
	if err == nil {
		t.Fatal("expected an error when damage exceeds the parity budget")
	}
}

func TestSyndromesZeroForCleanCodeword(t *testing.T) {
	data := []byte("no errors here")
	nsym := 8
	codeword := encodeSystematic(data, nsym)
	syn := Syndromes(codeword, nsym)
	if HasErrors(syn) {
		t.Error("a clean codeword must have all-zero syndromes")
	}
}
