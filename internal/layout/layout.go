// Package layout implements the QR Code symbol grid (C5): function
// pattern placement (finder, timing, alignment, dark module,
// format/version info reservation), the zig-zag data codeword
// traversal, and mask XOR application.
//
// Ported from nayuki-QR-Code-generator's qrcodegen.go methods on
// QrCode (drawFunctionPatterns, drawFinderPattern,
// drawAlignmentPattern, drawFormatBits, drawVersion, drawCodewords,
// applyMask), generalized into a Grid type with a read path as well as
// nayuki's write-only original, so the same traversal and function-area
// map serve both the encoder and the decoder in package qrcode.
package layout

import (
	"fmt"

	"github.com/jalphad/qrcore/internal/qrtables"
)

// Grid is a QR Code symbol's module matrix, indexed [row][col].
type Grid struct {
	version  int
	size     int
	modules  [][]bool
	function [][]bool
}

// NewGrid allocates an empty grid (all modules light) for the given
// version with function patterns drawn and reserved, ready for data
// placement.
func NewGrid(version int) *Grid {
	size := qrtables.Size(version)
	g := &Grid{
		version:  version,
		size:     size,
		modules:  make([][]bool, size),
		function: make([][]bool, size),
	}
	for i := range g.modules {
		g.modules[i] = make([]bool, size)
		g.function[i] = make([]bool, size)
	}
	g.drawFunctionPatterns()
	return g
}

// Version returns the grid's version (1..40).
func (g *Grid) Version() int { return g.version }

// Size returns the side length in modules.
func (g *Grid) Size() int { return g.size }

// Get reports whether the module at (row, col) is dark.
func (g *Grid) Get(row, col int) bool {
	return g.modules[row][col]
}

// IsFunction reports whether (row, col) belongs to a function pattern
// or reserved info area, and so must never be touched by data
// placement or masking.
func (g *Grid) IsFunction(row, col int) bool {
	return g.function[row][col]
}

func (g *Grid) set(row, col int, dark bool) {
	g.modules[row][col] = dark
}

// SetRaw overwrites a module's color without touching its function-area
// flag. Used by the sampler to drop externally-read pixel values into a
// grid whose version (and therefore function pattern layout) is
// already known.
func (g *Grid) SetRaw(row, col int, dark bool) {
	g.modules[row][col] = dark
}

func (g *Grid) setFunction(row, col int, dark bool) {
	g.modules[row][col] = dark
	g.function[row][col] = true
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (g *Grid) drawFunctionPatterns() {
	for i := 0; i < g.size; i++ {
		g.setFunction(6, i, i%2 == 0)
		g.setFunction(i, 6, i%2 == 0)
	}

	g.drawFinderPattern(3, 3)
	g.drawFinderPattern(g.size-4, 3)
	g.drawFinderPattern(3, g.size-4)

	positions := qrtables.AlignmentPatternPositions(g.version)
	n := len(positions)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// Skip the three positions that collide with finder patterns.
			if (i == 0 && j == 0) || (i == 0 && j == n-1) || (i == n-1 && j == 0) {
				continue
			}
			g.drawAlignmentPattern(positions[i], positions[j])
		}
	}

	g.reserveFormatInfo()
	if g.version >= 7 {
		g.reserveVersionInfo()
	}
}

// drawFinderPattern draws a 9x9 finder pattern centered at (centerRow, centerCol).
func (g *Grid) drawFinderPattern(centerCol, centerRow int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			dist := maxInt(absInt(dx), absInt(dy))
			row, col := centerRow+dy, centerCol+dx
			if g.inBounds(row, col) {
				g.setFunction(row, col, dist != 2 && dist != 4)
			}
		}
	}
}

func (g *Grid) drawAlignmentPattern(centerCol, centerRow int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			g.setFunction(centerRow+dy, centerCol+dx, maxInt(absInt(dx), absInt(dy)) != 1)
		}
	}
}

// reserveFormatInfo marks the two 15-bit format information areas as
// function modules (value placeholders; overwritten by WriteFormatInfo),
// and pre-darkens the always-dark module.
func (g *Grid) reserveFormatInfo() {
	for i := 0; i <= 5; i++ {
		g.setFunction(i, 8, false)
	}
	g.setFunction(7, 8, false)
	g.setFunction(8, 8, false)
	g.setFunction(8, 7, false)
	for i := 9; i < 15; i++ {
		g.setFunction(8, 14-i, false)
	}
	for i := 0; i <= 7; i++ {
		g.setFunction(8, g.size-1-i, false)
	}
	for i := 8; i < 15; i++ {
		g.setFunction(g.size-15+i, 8, false)
	}
	g.setFunction(g.size-8, 8, true) // dark module, always 1
}

func (g *Grid) reserveVersionInfo() {
	for i := 0; i < 18; i++ {
		a := g.size - 11 + i%3
		b := i / 3
		g.setFunction(b, a, false)
		g.setFunction(a, b, false)
	}
}

// WriteFormatInfo writes the 15-bit format information codeword for
// ecl/mask into both reserved locations.
func (g *Grid) WriteFormatInfo(ecl qrtables.ECLevel, mask uint8) {
	bits := qrtables.FormatBits(ecl, mask)
	getBit := func(i int) bool { return (bits>>uint(i))&1 != 0 }

	for i := 0; i <= 5; i++ {
		g.set(i, 8, getBit(i))
	}
	g.set(7, 8, getBit(6))
	g.set(8, 8, getBit(7))
	g.set(8, 7, getBit(8))
	for i := 9; i < 15; i++ {
		g.set(8, 14-i, getBit(i))
	}

	for i := 0; i <= 7; i++ {
		g.set(8, g.size-1-i, getBit(i))
	}
	for i := 8; i < 15; i++ {
		g.set(g.size-15+i, 8, getBit(i))
	}
	g.set(g.size-8, 8, true)
}

// ReadFormatBits1 reads the format information codeword from the
// primary location (around the top-left finder pattern).
func (g *Grid) ReadFormatBits1() uint32 {
	var bits uint32
	for i := 0; i <= 5; i++ {
		bits |= boolBit(g.Get(i, 8), i)
	}
	bits |= boolBit(g.Get(7, 8), 6)
	bits |= boolBit(g.Get(8, 8), 7)
	bits |= boolBit(g.Get(8, 7), 8)
	for i := 9; i < 15; i++ {
		bits |= boolBit(g.Get(8, 14-i), i)
	}
	return bits
}

// ReadFormatBits2 reads the format information codeword from the
// secondary location (split across the top-right and bottom-left finders).
func (g *Grid) ReadFormatBits2() uint32 {
	var bits uint32
	for i := 0; i <= 7; i++ {
		bits |= boolBit(g.Get(8, g.size-1-i), i)
	}
	for i := 8; i < 15; i++ {
		bits |= boolBit(g.Get(g.size-15+i, 8), i)
	}
	return bits
}

func boolBit(v bool, i int) uint32 {
	if v {
		return 1 << uint(i)
	}
	return 0
}

// WriteVersionInfo writes the 18-bit version information codeword into
// both reserved 6x3 blocks. No-op below version 7.
func (g *Grid) WriteVersionInfo() {
	if g.version < 7 {
		return
	}
	bits := qrtables.VersionBits(g.version)
	for i := 0; i < 18; i++ {
		bit := (bits>>uint(i))&1 != 0
		a := g.size - 11 + i%3
		b := i / 3
		g.set(b, a, bit)
		g.set(a, b, bit)
	}
}

// ReadVersionBits1/2 read the two redundant 18-bit version information
// blocks. Meaningless below version 7.
func (g *Grid) ReadVersionBits1() uint32 {
	var bits uint32
	for i := 0; i < 18; i++ {
		a := g.size - 11 + i%3
		b := i / 3
		bits |= boolBit(g.Get(b, a), i)
	}
	return bits
}

func (g *Grid) ReadVersionBits2() uint32 {
	var bits uint32
	for i := 0; i < 18; i++ {
		a := g.size - 11 + i%3
		b := i / 3
		bits |= boolBit(g.Get(a, b), i)
	}
	return bits
}

// dataPosition is one (row, col) visited by the zig-zag data traversal.
type dataPosition struct {
	row, col int
}

// dataPositions returns every non-function module position in the
// order the standard's zig-zag scan visits them: paired columns from
// the right edge, skipping the timing column, alternating scan
// direction every column pair. Ported from nayuki's drawCodewords loop
// structure.
func (g *Grid) dataPositions() []dataPosition {
	var positions []dataPosition
	for right := g.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < g.size; vert++ {
			for j := 0; j < 2; j++ {
				col := right - j
				upward := (right+1)&2 == 0
				var row int
				if upward {
					row = g.size - 1 - vert
				} else {
					row = vert
				}
				if !g.function[row][col] {
					positions = append(positions, dataPosition{row: row, col: col})
				}
			}
		}
	}
	return positions
}

// PlaceData writes codeword bytes (MSB first) into the grid's data
// module positions in zig-zag order. Returns an error if data has more
// bits than the grid has data module positions for.
func (g *Grid) PlaceData(data []byte) error {
	positions := g.dataPositions()
	totalBits := len(data) * 8
	if totalBits > len(positions) {
		return fmt.Errorf("layout: %d data bits exceed %d available module positions", totalBits, len(positions))
	}
	for i := 0; i < totalBits; i++ {
		bit := (data[i/8]>>uint(7-i%8))&1 != 0
		p := positions[i]
		g.set(p.row, p.col, bit)
	}
	// Remaining positions (padding bits beyond the last codeword) stay light.
	return nil
}

// ReadData reads every data module position in zig-zag order and packs
// them MSB-first into bytes, padding the final byte with zero bits if
// the position count isn't a multiple of 8. This is PlaceData's exact
// inverse over the same traversal.
func (g *Grid) ReadData() []byte {
	positions := g.dataPositions()
	out := make([]byte, (len(positions)+7)/8)
	for i, p := range positions {
		if g.Get(p.row, p.col) {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// maskPredicate returns the one of the 8 standard mask functions for
// the given pattern reference, as (row, col) -> invert?. Ported from
// nayuki's getMaskBit switch in applyMask.
func maskPredicate(mask uint8, row, col int) bool {
	switch mask {
	case 0:
		return (row+col)%2 == 0
	case 1:
		return row%2 == 0
	case 2:
		return col%3 == 0
	case 3:
		return (row+col)%3 == 0
	case 4:
		return (row/2+col/3)%2 == 0
	case 5:
		return (row*col)%2+(row*col)%3 == 0
	case 6:
		return ((row*col)%2+(row*col)%3)%2 == 0
	case 7:
		return ((row+col)%2+(row*col)%3)%2 == 0
	default:
		panic("layout: invalid mask pattern")
	}
}

// ApplyMask XORs every non-function module with the given mask
// pattern's predicate. Since XOR is self-inverse, calling this a
// second time with the same mask removes it again -- used both by the
// encoder (apply once before writing format info) and the decoder
// (unmask using the mask read from format info).
func (g *Grid) ApplyMask(mask uint8) {
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.function[row][col] {
				continue
			}
			if maskPredicate(mask, row, col) {
				g.modules[row][col] = !g.modules[row][col]
			}
		}
	}
}

// ProvisionalVersion returns the version implied by a symbol's side
// length, before version information (for V>=7) has been confirmed.
func ProvisionalVersion(size int) int {
	return (size - 17) / 4
}
