package qrtables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	assert.Equal(t, 21, Size(1))
	assert.Equal(t, 25, Size(2))
	assert.Equal(t, 177, Size(40))
}

func TestFormatBitsRoundTrip(t *testing.T) {
	for _, ecl := range []ECLevel{L, M, Q, H} {
		for mask := uint8(0); mask < 8; mask++ {
			bits := FormatBits(ecl, mask)
			gotEcl, gotMask, err := BestFormat(bits)
			require.NoError(t, err)
			assert.Equal(t, ecl, gotEcl)
			assert.Equal(t, mask, gotMask)
		}
	}
}

func TestFormatBitsToleratesUpToThreeErrors(t *testing.T) {
	clean := FormatBits(Q, 5)
	corrupted := clean
	for bit := 0; bit < 3; bit++ {
		corrupted ^= 1 << uint(bit)
		ecl, mask, err := BestFormat(corrupted)
		require.NoError(t, err)
		assert.Equal(t, Q, ecl)
		assert.Equal(t, uint8(5), mask)
	}
}


func TestVersionBitsRoundTrip(t *testing.T) {
	for v := 7; v <= MaxVersion; v++ {
		bits := VersionBits(v)
		got, err := BestVersion(bits)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVersionBitsToleratesUpToThreeErrors(t *testing.T) {
	clean := VersionBits(21)
	corrupted := clean
	for bit := 0; bit < 3; bit++ {
		corrupted ^= 1 << uint(bit)
		got, err := BestVersion(corrupted)
		require.NoError(t, err)
		assert.Equal(t, 21, got)
	}
}

func TestNumRawDataModulesVersion1(t *testing.T) {
	// Version 1 has no alignment patterns and no version info: the
	// standard's well-known raw module count is 208.
	assert.Equal(t, 208, NumRawDataModules(1))
}

func TestNumDataCodewordsVersion1L(t *testing.T) {
	// Version 1-L holds 19 data codewords per the standard's published
	// capacity table.
	assert.Equal(t, 19, NumDataCodewords(1, L))
}

func TestLayoutSplitsBlocksCorrectly(t *testing.T) {
	// Version 5-Q: 2 blocks of 15 data codewords + 2 blocks of 16, per
	// the standard's published block table.
	layout := Layout(5, Q)
	assert.Equal(t, 4, layout.NumBlocks)
	assert.Equal(t, 2, layout.NumGroup1Blocks)
	assert.Equal(t, 15, layout.DataCodewordsGroup1)
	assert.Equal(t, 2, layout.NumGroup2Blocks)
	assert.Equal(t, 16, layout.DataCodewordsGroup2)

	total := layout.NumGroup1Blocks*layout.DataCodewordsGroup1 +
		layout.NumGroup2Blocks*layout.DataCodewordsGroup2
	assert.Equal(t, NumDataCodewords(5, Q), total)
}

func TestLayoutSingleBlockVersion1(t *testing.T) {
	layout := Layout(1, L)
	assert.Equal(t, 1, layout.NumBlocks)
	assert.Equal(t, 0, layout.NumGroup2Blocks)
	assert.Equal(t, 19, layout.DataCodewordsGroup1)
}

func TestAlignmentPatternPositionsVersion1Empty(t *testing.T) {
	assert.Nil(t, AlignmentPatternPositions(1))
}

func TestAlignmentPatternPositionsVersion2(t *testing.T) {
	assert.Equal(t, []int{6, 18}, AlignmentPatternPositions(2))
}

func TestAlignmentPatternPositionsVersion32Step(t *testing.T) {
	// Version 32 is the special-cased step=26 version in the standard.
	assert.Equal(t, []int{6, 34, 60, 86, 112, 138}, AlignmentPatternPositions(32))
}

func TestVersionForCapacityMonotonic(t *testing.T) {
	prev := 0
	for minBits := 8; minBits <= 8000; minBits += 97 {
		v, err := VersionForCapacity(L, minBits)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, prev)
		assert.GreaterOrEqual(t, NumDataCodewords(v, L)*8, minBits)
		prev = v
	}
}

func TestVersionForCapacityExhausted(t *testing.T) {
	_, err := VersionForCapacity(H, 1_000_000)
	assert.Error(t, err)
}

func TestECLevelBitsRoundTrip(t *testing.T) {
	for _, ecl := range []ECLevel{L, M, Q, H} {
		got, err := ECLevelFromBits(ecl.Bits())
		require.NoError(t, err)
		assert.Equal(t, ecl, got)
	}
}
