package rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNoErrors(t *testing.T) {
	data := []byte("HELLO WORLD123")
	nsym := 10
	parity := Encode(data, nsym)
	codeword := append(append([]byte(nil), data...), parity...)

	result, err := Decode(codeword, nsym)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ErrorsFound)
	assert.Equal(t, codeword, result.Corrected)
}

func TestDecodeCorrectsUpToCapacity(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	nsym := 10 // corrects up to 5 errors
	parity := Encode(data, nsym)
	codeword := append(append([]byte(nil), data...), parity...)

	for _, numErrors := range []int{1, 2, 3, 4, 5} {
		t.Run("", func(t *testing.T) {
			corrupted := append([]byte(nil), codeword...)
			for i := 0; i < numErrors; i++ {
				corrupted[i*2] ^= 0xFF
			}
			result, err := Decode(corrupted, nsym)
			require.NoError(t, err)
			assert.Equal(t, data, result.Corrected[:len(data)])
			assert.Equal(t, numErrors, result.ErrorsFound)
		})
	}
}

func TestDecodeUncorrectableBeyondCapacity(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	nsym := 10 // corrects up to 5 errors
	parity := Encode(data, nsym)
	codeword := append(append([]byte(nil), data...), parity...)

	corrupted := append([]byte(nil), codeword...)
	// Inject 8 errors, well past the 5-error correction bound; decoding
	// must either fail cleanly or (extremely rarely, by coincidence
	// landing on another valid codeword) succeed -- it must never return
	// silently wrong data for a codeword this badly damaged without
	// reporting it.
	for i := 0; i < 8; i++ {
		corrupted[i*2] ^= 0xFF
	}
	_, err := Decode(corrupted, nsym)
	if err == nil {
		t.Skip("decoder coincidentally landed on a different valid codeword")
	}
	var uncorrectable *ErrUncorrectable
	require.ErrorAs(t, err, &uncorrectable)
}

func TestGeneratorIsMonic(t *testing.T) {
	g := Generator(8)
	require.Len(t, g, 9)
	assert.Equal(t, byte(1), g[0])
}
