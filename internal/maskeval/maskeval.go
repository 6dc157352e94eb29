// Package maskeval implements the four QR Code penalty rules (C6) and
// minimal-score mask selection.
//
// Ported from nayuki-QR-Code-generator's QrCode.getPenaltyScore and its
// finderPenalty helper struct (qrcodegen.go): N1 runs of 5+ same-color
// modules, N2 2x2 same-color blocks, N3 1:1:3:1:1 finder-like patterns
// (tracked via a 7-entry run-length history with an implicit light
// border), and N4 the overall dark/light balance.
package maskeval

import "github.com/jalphad/qrcore/internal/layout"

const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// grid is the minimal surface maskeval needs from *layout.Grid.
type grid interface {
	Size() int
	Get(row, col int) bool
}

// SelectBestMask tries all 8 mask patterns against g (which must
// already have its final data codewords placed, unmasked), and returns
// the pattern with the lowest penalty score, lowest index breaking
// ties. g is left in its original (unmasked) state on return.
func SelectBestMask(g *layout.Grid) uint8 {
	var best uint8
	bestScore := -1
	for mask := uint8(0); mask < 8; mask++ {
		g.ApplyMask(mask)
		score := PenaltyScore(g)
		g.ApplyMask(mask) // revert: XOR is its own inverse
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = mask
		}
	}
	return best
}

// PenaltyScore computes the sum of the four penalty rules over every
// module in g, including function patterns (the standard scores the
// whole symbol, not just the data area).
func PenaltyScore(g grid) int {
	size := g.Size()
	total := 0

	for row := 0; row < size; row++ {
		total += runAndFinderPenalty(size, func(i int) bool { return g.Get(row, i) })
	}
	for col := 0; col < size; col++ {
		total += runAndFinderPenalty(size, func(i int) bool { return g.Get(i, col) })
	}

	for row := 0; row < size-1; row++ {
		for col := 0; col < size-1; col++ {
			c := g.Get(row, col)
			if c == g.Get(row, col+1) && c == g.Get(row+1, col) && c == g.Get(row+1, col+1) {
				total += penaltyN2
			}
		}
	}

	dark := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if g.Get(row, col) {
				dark++
			}
		}
	}
	// N4: 10 * floor(|dark_ratio*100 - 50| / 5), computed without floats as
	// |dark*100 - 50*totalModules| / (5*totalModules).
	totalModules := size * size
	k := absInt(dark*100-50*totalModules) / (5 * totalModules)
	total += k * penaltyN4

	return total
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// runAndFinderPenalty scans one row or column (via at(i)) and returns
// the combined N1+N3 contribution.
func runAndFinderPenalty(size int, at func(int) bool) int {
	result := 0
	runColor := false
	runLen := 0
	fp := finderPenalty{size: size}

	for i := 0; i < size; i++ {
		c := at(i)
		if c == runColor {
			runLen++
			if runLen == 5 {
				result += penaltyN1
			} else if runLen > 5 {
				result++
			}
		} else {
			fp.addHistory(runLen)
			if !runColor {
				result += fp.countPatterns() * penaltyN3
			}
			runColor = c
			runLen = 1
		}
	}
	result += fp.terminateAndCount(runColor, runLen) * penaltyN3
	return result
}

// finderPenalty tracks a 7-entry run-length history (current run plus
// the previous six) to detect the 1:1:3:1:1 finder-like pattern for
// rule N3, including the implicit light border at each end of a row or
// column.
type finderPenalty struct {
	size    int
	history [7]int
}

func (fp *finderPenalty) addHistory(runLen int) {
	if fp.history[0] == 0 {
		runLen += fp.size // the very first run is implicitly preceded by light border
	}
	copy(fp.history[1:], fp.history[:len(fp.history)-1])
	fp.history[0] = runLen
}

func (fp *finderPenalty) countPatterns() int {
	h := fp.history
	n := h[1]
	core := n > 0 && h[2] == n && h[3] == n*3 && h[4] == n && h[5] == n
	result := 0
	if core && h[0] >= n*4 && h[6] >= n {
		result++
	}
	if core && h[6] >= n*4 && h[0] >= n {
		result++
	}
	return result
}

func (fp *finderPenalty) terminateAndCount(runColor bool, runLen int) int {
	if runColor {
		fp.addHistory(runLen)
		runLen = 0
	}
	runLen += fp.size
	fp.addHistory(runLen)
	return fp.countPatterns()
}
