package qrcode

import (
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/jalphad/qrcore/internal/rs"
)

// splitBlocks slices the full data codeword stream into each
// Reed-Solomon block's data codewords, per the version/EC level's
// BlockLayout.
func splitBlocks(data []byte, layout qrtables.BlockLayout) [][]byte {
	blocks := make([][]byte, 0, layout.NumBlocks)
	offset := 0
	for i := 0; i < layout.NumGroup1Blocks; i++ {
		blocks = append(blocks, data[offset:offset+layout.DataCodewordsGroup1])
		offset += layout.DataCodewordsGroup1
	}
	for i := 0; i < layout.NumGroup2Blocks; i++ {
		blocks = append(blocks, data[offset:offset+layout.DataCodewordsGroup2])
		offset += layout.DataCodewordsGroup2
	}
	return blocks
}

// interleaveEncode splits the padded data codewords into their RS
// blocks, computes each block's EC codewords, and interleaves data
// then EC codewords column-by-column per the standard's "read one byte
// from each block in turn" rule (shorter blocks simply run out first).
func interleaveEncode(data []byte, version int, ecl qrtables.ECLevel) ([]byte, error) {
	layout := qrtables.Layout(version, ecl)
	dataBlocks := splitBlocks(data, layout)

	ecBlocks := make([][]byte, len(dataBlocks))
	for i, b := range dataBlocks {
		ecBlocks[i] = rs.Encode(b, layout.ECCodewordsEach)
	}

	var out []byte
	maxDataLen := layout.DataCodewordsGroup2
	for col := 0; col < maxDataLen; col++ {
		for _, b := range dataBlocks {
			if col < len(b) {
				out = append(out, b[col])
			}
		}
	}
	for col := 0; col < layout.ECCodewordsEach; col++ {
		for _, b := range ecBlocks {
			out = append(out, b[col])
		}
	}
	return out, nil
}

// blockResult is the per-block decode outcome, independent of whether
// correction succeeded.
type blockResult struct {
	index          int
	dataCodewords  int
	ecCodewords    int
	errorsFound    int
	errorPositions []int
	corrected      bool
}

// deinterleaveDecode is interleaveEncode's inverse: given the full
// sampled codeword stream, it recovers each block's (data||EC) bytes,
// runs Reed-Solomon correction per block, and reassembles the
// corrected data codewords in original order.
func deinterleaveDecode(raw []byte, version int, ecl qrtables.ECLevel) (data []byte, results []blockResult, uncorrectable bool) {
	layout := qrtables.Layout(version, ecl)
	numBlocks := layout.NumBlocks
	dataLens := make([]int, numBlocks)
	for i := 0; i < layout.NumGroup1Blocks; i++ {
		dataLens[i] = layout.DataCodewordsGroup1
	}
	for i := layout.NumGroup1Blocks; i < numBlocks; i++ {
		dataLens[i] = layout.DataCodewordsGroup2
	}

	blocks := make([][]byte, numBlocks)
	for i, n := range dataLens {
		blocks[i] = make([]byte, 0, n+layout.ECCodewordsEach)
	}

	pos := 0
	maxDataLen := layout.DataCodewordsGroup2
	for col := 0; col < maxDataLen; col++ {
		for i, n := range dataLens {
			if col < n {
				blocks[i] = append(blocks[i], raw[pos])
				pos++
			}
		}
	}
	for col := 0; col < layout.ECCodewordsEach; col++ {
		for i := range blocks {
			blocks[i] = append(blocks[i], raw[pos])
			pos++
		}
	}

	results = make([]blockResult, numBlocks)
	for i, block := range blocks {
		decoded, err := rs.Decode(block, layout.ECCodewordsEach)
		br := blockResult{
			index:         i,
			dataCodewords: dataLens[i],
			ecCodewords:   layout.ECCodewordsEach,
		}
		if err != nil {
			uncorrectable = true
			results[i] = br
			data = append(data, block[:dataLens[i]]...)
			continue
		}
		br.errorsFound = decoded.ErrorsFound
		br.errorPositions = decoded.ErrorPositions
		br.corrected = true
		results[i] = br
		data = append(data, decoded.Corrected[:dataLens[i]]...)
	}
	return data, results, uncorrectable
}
