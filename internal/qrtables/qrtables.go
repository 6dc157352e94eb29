// Package qrtables holds the QR Code standard's per-version constants
// (C4): symbol size, raw module counts, error-correction block layout,
// alignment pattern positions, and the format/version information BCH
// codewords.
//
// Grounded on nayuki-QR-Code-generator's qrcodegen.go: the
// ECC_CODEWORDS_PER_BLOCK/NUM_ERROR_CORRECTION_BLOCKS tables,
// getNumRawDataModules, getAlignmentPatternPositions, and the
// drawFormatBits/drawVersion BCH computations are ported here verbatim
// in algorithm and constant, adapted from method receivers on QrCode to
// free functions usable by both the encode (internal/layout) and
// decode (internal/sampler) sides.
package qrtables

import "fmt"

// ECLevel is one of the four QR Code error correction levels.
type ECLevel int

const (
	L ECLevel = iota
	M
	Q
	H
)

func (e ECLevel) String() string {
	switch e {
	case L:
		return "L"
	case M:
		return "M"
	case Q:
		return "Q"
	case H:
		return "H"
	default:
		return "?"
	}
}

// Bits returns the 2-bit format-information indicator for this level,
// per the QR standard's L=01, M=00, Q=11, H=10 mapping.
func (e ECLevel) Bits() uint32 {
	switch e {
	case L:
		return 1
	case M:
		return 0
	case Q:
		return 3
	case H:
		return 2
	default:
		panic("qrtables: unknown EC level")
	}
}

// ECLevelFromBits recovers the EC level from its 2-bit format indicator.
func ECLevelFromBits(bits uint32) (ECLevel, error) {
	switch bits {
	case 1:
		return L, nil
	case 0:
		return M, nil
	case 3:
		return Q, nil
	case 2:
		return H, nil
	default:
		return 0, fmt.Errorf("qrtables: invalid EC level bits %02b", bits)
	}
}

const (
	MinVersion = 1
	MaxVersion = 40
)

// Size returns the side length in modules of the given version.
func Size(version int) int {
	return 17 + 4*version
}

// eccCodewordsPerBlock[level][version] is the number of EC codewords
// contributed by each block. Index 0 (version 0) is unused padding so
// the table can be indexed directly by version number.
var eccCodewordsPerBlock = [4][41]int{
	L: {-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numErrorCorrectionBlocks[level][version] is the number of RS blocks
// the data+EC codewords are interleaved across.
var numErrorCorrectionBlocks = [4][41]int{
	L: {-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	M: {-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Q: {-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	H: {-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

func checkVersion(version int) {
	if version < MinVersion || version > MaxVersion {
		panic(fmt.Sprintf("qrtables: version %d out of range [%d,%d]", version, MinVersion, MaxVersion))
	}
}

// NumRawDataModules returns the number of bit positions available for
// data+EC+remainder in the given version, before function patterns are
// subtracted out. Ported from nayuki's getNumRawDataModules.
func NumRawDataModules(version int) int {
	checkVersion(version)
	result := (16*version+128)*version + 64
	if version >= 2 {
		numAlign := version/7 + 2
		result -= (25*numAlign-10)*numAlign - 55
		if version >= 7 {
			result -= 36
		}
	}
	return result
}

// NumDataCodewords returns the number of codewords available for the
// data+terminator+padding payload (i.e. total codewords minus EC
// codewords), at the given version and EC level.
func NumDataCodewords(version int, ecl ECLevel) int {
	checkVersion(version)
	totalCodewords := NumRawDataModules(version) / 8
	ecCodewords := eccCodewordsPerBlock[ecl][version] * numErrorCorrectionBlocks[ecl][version]
	return totalCodewords - ecCodewords
}

// BlockLayout describes how a version+EC level's codewords are split
// across interleaved Reed-Solomon blocks.
type BlockLayout struct {
	NumBlocks       int
	ECCodewordsEach int
	// Group1 blocks hold DataCodewordsGroup1 data codewords each;
	// Group2 blocks (if any) hold one more, per the standard's
	// "short blocks first" layout.
	NumGroup1Blocks     int
	DataCodewordsGroup1 int
	NumGroup2Blocks     int
	DataCodewordsGroup2 int
}

// Layout computes the block layout for the given version and EC level.
func Layout(version int, ecl ECLevel) BlockLayout {
	checkVersion(version)
	numBlocks := numErrorCorrectionBlocks[ecl][version]
	ecPerBlock := eccCodewordsPerBlock[ecl][version]
	totalData := NumDataCodewords(version, ecl)

	baseLen := totalData / numBlocks
	numLongBlocks := totalData % numBlocks
	numShortBlocks := numBlocks - numLongBlocks

	return BlockLayout{
		NumBlocks:           numBlocks,
		ECCodewordsEach:     ecPerBlock,
		NumGroup1Blocks:     numShortBlocks,
		DataCodewordsGroup1: baseLen,
		NumGroup2Blocks:     numLongBlocks,
		DataCodewordsGroup2: baseLen + 1,
	}
}

// AlignmentPatternPositions returns the row/column coordinates (shared
// between rows and columns) of alignment pattern centers for the given
// version, starting at 6. The list includes the coordinates whose
// pairings collide with finder patterns; internal/layout skips those
// pairings when drawing. Ported from nayuki's getAlignmentPatternPositions.
func AlignmentPatternPositions(version int) []int {
	checkVersion(version)
	if version == 1 {
		return nil
	}
	numAlign := version/7 + 2
	var step int
	if version == 32 {
		step = 26
	} else {
		step = (version*4+numAlign*2+1)/(numAlign*2-2)*2
	}
	result := make([]int, numAlign)
	result[0] = 6
	pos := version*4 + 10
	for i := numAlign - 1; i >= 1; i-- {
		result[i] = pos
		pos -= step
	}
	return result
}

// FormatBits returns the 15-bit BCH(15,5)-encoded, XOR-masked format
// information codeword for the given EC level and data mask, per
// nayuki's drawFormatBits.
func FormatBits(ecl ECLevel, mask uint8) uint32 {
	data := ecl.Bits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * formatBCHGenerator)
	}
	bits := (data<<10 | rem) ^ 0x5412
	return bits & 0x7FFF
}

// formatBCHGenerator is the degree-10 generator polynomial used for
// format information, 0x537 in nayuki's shift-xor encoding.
const formatBCHGenerator = 0x537

// VersionBits returns the 18-bit BCH(18,6)-encoded version information
// codeword for versions 7 and up, per nayuki's drawVersion. Unused (and
// meaningless) for versions below 7.
func VersionBits(version int) uint32 {
	rem := uint32(version)
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * versionBCHGenerator)
	}
	return uint32(version)<<12 | rem
}

// versionBCHGenerator is the degree-12 generator polynomial used for
// version information, 0x1F25 in nayuki's shift-xor encoding.
const versionBCHGenerator = 0x1F25

// bchDistance returns the Hamming distance between two same-width
// bitstrings, used by the decoder to pick the closest valid format or
// version codeword under bit corruption.
func bchDistance(a, b uint32) int {
	x := a ^ b
	count := 0
	for x != 0 {
		count++
		x &= x - 1
	}
	return count
}

// BestFormat finds the EC level and mask whose FormatBits is closest
// (by Hamming distance) to the observed 15-bit value, returning an
// error if even the best candidate differs in more bits than the
// format code's 3-bit correction guarantee.
func BestFormat(observed uint32) (ECLevel, uint8, error) {
	bestDist := 99
	var bestEcl ECLevel
	var bestMask uint8
	for _, ecl := range []ECLevel{L, M, Q, H} {
		for mask := uint8(0); mask < 8; mask++ {
			candidate := FormatBits(ecl, mask)
			d := bchDistance(observed, candidate)
			if d < bestDist {
				bestDist = d
				bestEcl = ecl
				bestMask = mask
			}
		}
	}
	if bestDist > 3 {
		return 0, 0, fmt.Errorf("qrtables: format information unreadable (best distance %d)", bestDist)
	}
	return bestEcl, bestMask, nil
}

// BestVersion finds the version (7..40) whose VersionBits is closest to
// the observed 18-bit value, erroring if no candidate is within the
// version code's 3-bit correction guarantee.
func BestVersion(observed uint32) (int, error) {
	bestDist := 99
	bestVersion := 0
	for v := 7; v <= MaxVersion; v++ {
		d := bchDistance(observed, VersionBits(v))
		if d < bestDist {
			bestDist = d
			bestVersion = v
		}
	}
	if bestDist > 3 {
		return 0, fmt.Errorf("qrtables: version information unreadable (best distance %d)", bestDist)
	}
	return bestVersion, nil
}

// VersionForCapacity returns the smallest version (1..40) at the given
// EC level whose data capacity in bits is at least minBits, or an
// error if even version 40 is insufficient.
func VersionForCapacity(ecl ECLevel, minBits int) (int, error) {
	for v := MinVersion; v <= MaxVersion; v++ {
		if NumDataCodewords(v, ecl)*8 >= minBits {
			return v, nil
		}
	}
	return 0, fmt.Errorf("qrtables: no version at EC level %s has capacity for %d bits", ecl, minBits)
}
