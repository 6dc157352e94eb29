// Package grading implements the advisory quality scores (C9):
// functional_grade (how closely a sampled symbol's function patterns
// match their known ideal values) and error_grade (how much of the
// Reed-Solomon correction budget a decode consumed). Neither grade
// affects whether decoding succeeds; both are diagnostics.
package grading

import (
	"github.com/jalphad/qrcore/internal/layout"
	"github.com/jalphad/qrcore/internal/qrtables"
)

// FunctionalGrade compares every function-pattern module (finder,
// timing, alignment, dark module, format/version info) in sampled
// against the ideal values they should hold for the given EC level and
// mask, and buckets the fraction of mismatches into 0 (sampling
// effectively failed) through 4 (every ratio within 5%).
func FunctionalGrade(sampled *layout.Grid, ecl qrtables.ECLevel, mask uint8) int {
	ideal := layout.NewGrid(sampled.Version())
	ideal.WriteFormatInfo(ecl, mask)
	ideal.WriteVersionInfo()

	size := sampled.Size()
	total, mismatches := 0, 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !ideal.IsFunction(row, col) {
				continue
			}
			total++
			if sampled.Get(row, col) != ideal.Get(row, col) {
				mismatches++
			}
		}
	}
	if total == 0 {
		return 0
	}
	errRatio := float64(mismatches) / float64(total)
	switch {
	case errRatio <= 0.05:
		return 4
	case errRatio <= 0.10:
		return 3
	case errRatio <= 0.20:
		return 2
	case errRatio <= 0.35:
		return 1
	default:
		return 0
	}
}

// ErrorGrade scores how much of the correction budget the worst block
// in a decode consumed: 4 - floor(maxBlockErrors*4/maxCorrectable),
// clamped to [0,4]. maxCorrectable is the per-block floor((n-k)/2).
func ErrorGrade(maxBlockErrors, maxCorrectable int) int {
	if maxCorrectable <= 0 {
		if maxBlockErrors == 0 {
			return 4
		}
		return 0
	}
	grade := 4 - (maxBlockErrors*4)/maxCorrectable
	if grade < 0 {
		grade = 0
	}
	if grade > 4 {
		grade = 4
	}
	return grade
}
