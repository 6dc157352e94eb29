package layout

import (
	"testing"

	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridSize(t *testing.T) {
	g := NewGrid(1)
	assert.Equal(t, 21, g.Size())
	assert.Equal(t, 1, g.Version())
}

func TestFinderPatternsAreFunctionModules(t *testing.T) {
	g := NewGrid(1)
	// Every module of the top-left 7x7 finder pattern.
	for row := 0; row < 7; row++ {
		for col := 0; col < 7; col++ {
			assert.True(t, g.IsFunction(row, col), "row=%d col=%d", row, col)
		}
	}
}

func TestTimingPatternAlternates(t *testing.T) {
	g := NewGrid(1)
	for i := 8; i < g.Size()-8; i++ {
		assert.True(t, g.IsFunction(6, i))
		assert.Equal(t, i%2 == 0, g.Get(6, i))
	}
}

func TestDarkModuleAlwaysSet(t *testing.T) {
	g := NewGrid(1)
	assert.True(t, g.Get(g.Size()-8, 8))
}

func TestVersion7ReservesVersionInfo(t *testing.T) {
	g := NewGrid(7)
	assert.True(t, g.IsFunction(0, g.Size()-11))
	assert.True(t, g.IsFunction(g.Size()-11, 0))
}

func TestVersion6HasNoVersionInfoReservation(t *testing.T) {
	g := NewGrid(6)
	assert.False(t, g.IsFunction(0, g.Size()-11))
}

func TestFormatInfoRoundTrip(t *testing.T) {
	g := NewGrid(3)
	g.WriteFormatInfo(qrtables.Q, 5)
	bits1 := g.ReadFormatBits1()
	bits2 := g.ReadFormatBits2()
	want := qrtables.FormatBits(qrtables.Q, 5)
	assert.Equal(t, want, bits1)
	assert.Equal(t, want, bits2)
}

func TestVersionInfoRoundTrip(t *testing.T) {
	g := NewGrid(9)
	g.WriteVersionInfo()
	want := qrtables.VersionBits(9)
	assert.Equal(t, want, g.ReadVersionBits1())
	assert.Equal(t, want, g.ReadVersionBits2())
}

func TestPlaceDataReadDataRoundTrip(t *testing.T) {
	g := NewGrid(1)
	numDataBits := len(g.dataPositions())
	numBytes := numDataBits / 8
	data := make([]byte, numBytes)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}
	require.NoError(t, g.PlaceData(data))
	got := g.ReadData()
	assert.Equal(t, data, got[:numBytes])
}

func TestPlaceDataRejectsOverflow(t *testing.T) {
	g := NewGrid(1)
	tooMuch := make([]byte, qrtables.NumRawDataModules(1))
	err := g.PlaceData(tooMuch)
	assert.Error(t, err)
}

func TestApplyMaskIsSelfInverse(t *testing.T) {
	g := NewGrid(2)
	before := snapshot(g)
	g.ApplyMask(3)
	g.ApplyMask(3)
	after := snapshot(g)
	assert.Equal(t, before, after)
}

func TestApplyMaskSkipsFunctionModules(t *testing.T) {
	g := NewGrid(1)
	beforeDark := g.Get(0, 0)
	g.ApplyMask(0)
	assert.Equal(t, beforeDark, g.Get(0, 0)) // inside finder pattern, untouched
}

func TestMaskPredicates(t *testing.T) {
	assert.True(t, maskPredicate(0, 2, 2))
	assert.False(t, maskPredicate(0, 2, 3))
	assert.True(t, maskPredicate(1, 4, 7))
	assert.True(t, maskPredicate(2, 5, 3))
	assert.True(t, maskPredicate(4, 2, 3))
}

func TestProvisionalVersion(t *testing.T) {
	assert.Equal(t, 1, ProvisionalVersion(21))
	assert.Equal(t, 40, ProvisionalVersion(177))
}

func snapshot(g *Grid) [][]bool {
	out := make([][]bool, g.Size())
	for r := range out {
		out[r] = append([]bool(nil), g.modules[r]...)
	}
	return out
}
