// Package rs implements the Reed-Solomon codec (C2) used by QR Codes:
// parity generation for encoding, and syndrome/Berlekamp-Massey/Chien/
// Forney decoding for error correction.
//
// The encode half is grounded on nayuki-QR-Code-generator's
// reedSolomonComputeDivisor/reedSolomonComputeRemainder
// (qrcodegen.go), generalized from its bit-twiddling "Russian peasant"
// multiply to the shared internal/gf256 table-based field. The decode
// half follows the algorithm shapes documented (but left unimplemented
// as workshop exercises) in exercises/6-berlekamp, exercises/7-chien
// and exercises/8-forney, and the orchestration in
// qrcode/decoder/error_correction.go (compute syndromes, solve for the
// error locator, Chien search, Forney correction, re-verify).
package rs

import "github.com/jalphad/qrcore/internal/gf256"

// Generator returns the Reed-Solomon generator polynomial of the given
// degree: product_{i=0}^{degree-1} (x - alpha^i), in highest-first
// coefficient order, degree+1 coefficients with the leading 1 at index 0.
//
// Mirrors reedSolomonComputeDivisor, ported from the xor/shift
// bit-trick form to explicit gf256 operations.
func Generator(degree int) gf256.Poly {
	g := gf256.Poly{1}
	root := byte(1)
	for i := 0; i < degree; i++ {
		// Multiply g by (x - root) == (x + root) in characteristic 2.
		next := make(gf256.Poly, len(g)+1)
		for j, c := range g {
			next[j] = gf256.Add(next[j], c)
			next[j+1] = gf256.Add(next[j+1], gf256.Mul(c, root))
		}
		g = next
		root = gf256.Mul(root, gf256.Generator)
	}
	return g
}

// Encode returns the nsym parity bytes for the given data block, i.e.
// data(x)*x^nsym mod generator(x), emitted high-degree-first to match
// the QR wire convention of data-then-parity.
func Encode(data []byte, nsym int) []byte {
	gen := Generator(nsym)
	remainder := make([]byte, nsym)
	for _, d := range data {
		factor := gf256.Add(d, remainder[0])
		copy(remainder, remainder[1:])
		remainder[len(remainder)-1] = 0
		for i, gc := range gen[1:] {
			remainder[i] = gf256.Add(remainder[i], gf256.Mul(gc, factor))
		}
	}
	return remainder
}

// DecodeResult reports what correction found in a single received block.
type DecodeResult struct {
	Corrected      []byte // full corrected codeword (data || parity)
	ErrorsFound    int    // degree of the error locator, i.e. the number of errors located
	ErrorPositions []int  // positions within the codeword that were corrected, 0 = first byte
}

// ErrUncorrectable is returned when a block's error count exceeds the
// code's correction capacity, or post-correction syndromes do not all
// vanish.
type ErrUncorrectable struct {
	ErrorsFound int
	MaxCorrect  int
}

func (e *ErrUncorrectable) Error() string {
	return "rs: uncorrectable block"
}

// Decode corrects a received codeword (data||parity, length n) against
// nsym parity symbols. If the block has no errors, it is returned
// unchanged. Decode never silently returns wrong data: it either
// succeeds with a verified correction or returns *ErrUncorrectable.
func Decode(received []byte, nsym int) (DecodeResult, error) {
	n := len(received)
	syndromes := computeSyndromes(received, nsym)
	if allZero(syndromes) {
		return DecodeResult{Corrected: append([]byte(nil), received...)}, nil
	}

	lambda := berlekampMassey(syndromes)
	maxCorrectable := nsym / 2
	if len(lambda)-1 > maxCorrectable {
		return DecodeResult{}, &ErrUncorrectable{ErrorsFound: len(lambda) - 1, MaxCorrect: maxCorrectable}
	}

	positions := chienSearch(lambda, n)
	if len(positions) != len(lambda)-1 {
		// Degree of locator doesn't match the number of roots found:
		// the error count exceeds what Lambda can represent validly.
		return DecodeResult{}, &ErrUncorrectable{ErrorsFound: len(lambda) - 1, MaxCorrect: maxCorrectable}
	}
	if len(positions) > maxCorrectable {
		return DecodeResult{}, &ErrUncorrectable{ErrorsFound: len(positions), MaxCorrect: maxCorrectable}
	}

	omega := computeOmega(syndromes, lambda, nsym)
	corrected := append([]byte(nil), received...)
	for _, pos := range positions {
		magnitude := forneyMagnitude(lambda, omega, pos, n)
		corrected[n-1-pos] = gf256.Add(corrected[n-1-pos], magnitude)
	}

	verify := computeSyndromes(corrected, nsym)
	if !allZero(verify) {
		return DecodeResult{}, &ErrUncorrectable{ErrorsFound: len(positions), MaxCorrect: maxCorrectable}
	}

	errPositions := make([]int, len(positions))
	for i, pos := range positions {
		errPositions[i] = n - 1 - pos
	}
	return DecodeResult{Corrected: corrected, ErrorsFound: len(positions), ErrorPositions: errPositions}, nil
}

func allZero(s []byte) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// computeSyndromes evaluates the received polynomial (received[0] is
// the highest-degree coefficient, per QR convention) at alpha^0..alpha^{nsym-1}.
func computeSyndromes(received []byte, nsym int) []byte {
	syndromes := make([]byte, nsym)
	for i := 0; i < nsym; i++ {
		alphaI := gf256.Pow(gf256.Generator, i)
		syndromes[i] = gf256.Poly(received).Eval(alphaI)
	}
	return syndromes
}

// berlekampMassey runs the Berlekamp-Massey iterative algorithm over
// the syndrome sequence to find the minimal-degree error locator
// polynomial Lambda(x), returned in lowest-first coefficient order
// (Lambda[0] == 1).
func berlekampMassey(syndromes []byte) []byte {
	lambda := []byte{1}
	prevLambda := []byte{1}
	var prevDiscrepancy byte = 1
	shiftSincePrev := 1

	for n := 0; n < len(syndromes); n++ {
		discrepancy := syndromes[n]
		for i := 1; i < len(lambda); i++ {
			discrepancy = gf256.Add(discrepancy, gf256.Mul(lambda[i], syndromes[n-i]))
		}

		if discrepancy == 0 {
			shiftSincePrev++
			continue
		}

		newLen := len(prevLambda) + shiftSincePrev
		if newLen < len(lambda) {
			newLen = len(lambda)
		}
		correction := make([]byte, newLen)
		copy(correction, lambda)

		scale := gf256.Div(discrepancy, prevDiscrepancy)
		for i, c := range prevLambda {
			idx := i + shiftSincePrev
			correction[idx] = gf256.Add(correction[idx], gf256.Mul(scale, c))
		}

		if 2*(len(lambda)-1) <= n {
			prevLambda = append([]byte(nil), lambda...)
			prevDiscrepancy = discrepancy
			shiftSincePrev = 1
		} else {
			shiftSincePrev++
		}
		lambda = correction
	}

	return lambda
}

// chienSearch finds the roots of Lambda(x) among alpha^{-j} for j in
// [0, codewordLength), returned as the set of "standard convention"
// positions j where Lambda(alpha^{-j}) == 0. codewordLength bounds
// the search to the positions that can actually occur in this block.
func chienSearch(lambda []byte, codewordLength int) []int {
	var positions []int
	for j := 0; j < codewordLength; j++ {
		// Evaluate lambda at alpha^{-j} using lowest-first coefficients:
		// lambda[0] + lambda[1]*x + ... with x = alpha^{-j}.
		x := gf256.Pow(gf256.Generator, (255-j%255)%255)
		var sum byte
		xi := byte(1)
		for _, c := range lambda {
			sum = gf256.Add(sum, gf256.Mul(c, xi))
			xi = gf256.Mul(xi, x)
		}
		if sum == 0 {
			positions = append(positions, j)
		}
	}
	return positions
}

// computeOmega computes the error evaluator polynomial Omega(x) = [S(x)*Lambda(x)] mod x^nsym,
// both polynomials given lowest-first.
func computeOmega(syndromes []byte, lambda []byte, nsym int) []byte {
	omega := make([]byte, nsym)
	for i := 0; i < nsym; i++ {
		var sum byte
		for j := 0; j <= i && j < len(lambda); j++ {
			if i-j < len(syndromes) {
				sum = gf256.Add(sum, gf256.Mul(lambda[j], syndromes[i-j]))
			}
		}
		omega[i] = sum
	}
	return omega
}

// formalDerivative computes the formal derivative of a lowest-first
// polynomial over GF(2^8); in characteristic 2 this keeps only the
// odd-degree terms, shifted down by one.
func formalDerivative(p []byte) []byte {
	if len(p) <= 1 {
		return nil
	}
	deriv := make([]byte, len(p)-1)
	for i := 1; i < len(p); i += 2 {
		deriv[i-1] = p[i]
	}
	return deriv
}

// forneyMagnitude computes the error magnitude at the standard-convention
// position pos (error locator X = alpha^pos), via Forney's formula
// Y = X * Omega(X^-1) / Lambda'(X^-1); the extra factor X comes from the
// syndromes starting at alpha^0. n (the codeword length) is not used.
func forneyMagnitude(lambda, omega []byte, pos, n int) byte {
	xInv := gf256.Pow(gf256.Generator, (255-pos%255)%255)
	omegaVal := evalLowFirst(omega, xInv)
	lambdaDeriv := formalDerivative(lambda)
	derivVal := evalLowFirst(lambdaDeriv, xInv)
	if derivVal == 0 {
		return 0
	}
	return gf256.Mul(gf256.Pow(gf256.Generator, pos), gf256.Div(omegaVal, derivVal))
}

func evalLowFirst(p []byte, x byte) byte {
	var sum byte
	xi := byte(1)
	for _, c := range p {
		sum = gf256.Add(sum, gf256.Mul(c, xi))
		xi = gf256.Mul(xi, x)
	}
	return sum
}
