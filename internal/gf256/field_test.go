package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpLogRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		assert.Equal(t, byte(a), Exp(Log(byte(a))), "exp(log(%d)) should round-trip", a)
	}
}

func TestAddIsXor(t *testing.T) {
	assert.Equal(t, byte(0), Add(200, 200))
	assert.Equal(t, byte(0x13), Add(0x11, 0x02))
}

func TestMulZero(t *testing.T) {
	assert.Equal(t, byte(0), Mul(0, 42))
	assert.Equal(t, byte(0), Mul(42, 0))
}

func TestMulDivInverse(t *testing.T) {
	for a := 1; a < 256; a++ {
		for _, b := range []byte{1, 2, 3, 17, 200, 255} {
			got := Div(Mul(byte(a), b), b)
			assert.Equal(t, byte(a), got, "a=%d b=%d", a, b)
		}
	}
}

func TestInv(t *testing.T) {
	for a := 1; a < 256; a++ {
		assert.Equal(t, byte(1), Mul(byte(a), Inv(byte(a))))
	}
}

func TestPow(t *testing.T) {
	assert.Equal(t, byte(1), Pow(5, 0))
	assert.Equal(t, byte(5), Pow(5, 1))
	assert.Equal(t, Mul(5, Mul(5, 5)), Pow(5, 3))
}

func TestCharacteristicTwo(t *testing.T) {
	// Characteristic-2 field: a+a == 0 for all a.
	for a := 0; a < 256; a++ {
		assert.Equal(t, byte(0), Add(byte(a), byte(a)))
	}
}

func TestPolyEval(t *testing.T) {
	// p(x) = x + 1, evaluated at x=1 should be 1 xor 1 = 0.
	p := Poly{1, 1}
	assert.Equal(t, byte(0), p.Eval(1))
	// Constant polynomial.
	c := Poly{7}
	assert.Equal(t, byte(7), c.Eval(99))
}

func TestMulPoly(t *testing.T) {
	// (x+1)(x+1) = x^2 + 2x + 1 = x^2 + 1 in char 2 (2x vanishes).
	a := Poly{1, 1}
	got := MulPoly(a, a)
	want := Poly{1, 0, 1}
	assert.Equal(t, want, got)
}
