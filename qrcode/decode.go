package qrcode

import (
	"fmt"
	"image"

	"github.com/jalphad/qrcore/internal/bitstream"
	"github.com/jalphad/qrcore/internal/grading"
	"github.com/jalphad/qrcore/internal/layout"
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/jalphad/qrcore/internal/sampler"
	"github.com/jalphad/qrcore/qrerr"
)

// BlockResult reports one Reed-Solomon block's correction outcome.
type BlockResult struct {
	BlockIndex          int
	NumDataCodewords    int
	NumECCodewords      int
	ErrorsFound         int
	ErrorPositions      []int
	CorrectionSucceeded bool
}

// DecodeResult is everything Decode recovers from a symbol.
type DecodeResult struct {
	Message              string
	Version              int
	ECLevel              qrtables.ECLevel
	Mask                 uint8
	CorrectionSuccessful bool
	NumErrorsCorrected   int
	BlockResults         []BlockResult
	FunctionalGrade      int
	ErrorGrade           int
}

// Decode locates, samples, and fully decodes a single QR Code symbol
// from img.
func Decode(img image.Image, sink Sink) (*DecodeResult, error) {
	sink = orNoop(sink)
	g, err := sampler.Locate(img)
	if err != nil {
		return nil, err
	}
	sink.Note(Event{Stage: "finder_located", Detail: fmt.Sprintf("size=%d version=%d", g.Size(), g.Version())})
	return decodeGrid(g, sink)
}

// DecodeRegion restricts the search to [x0,x1)x[y0,y1) within img, for
// decoding one of several symbols on a larger scanned page.
func DecodeRegion(img image.Image, x0, y0, x1, y1, maxVersion int, sink Sink) (*DecodeResult, error) {
	sink = orNoop(sink)
	g, err := sampler.LocateRegion(img, x0, y0, x1, y1)
	if err != nil {
		return nil, err
	}
	if maxVersion > 0 && g.Version() > maxVersion {
		return nil, qrerr.New(qrerr.SamplingFailed, "sampled version %d exceeds maxVersion %d", g.Version(), maxVersion)
	}
	sink.Note(Event{Stage: "finder_located", Detail: fmt.Sprintf("size=%d version=%d", g.Size(), g.Version())})
	return decodeGrid(g, sink)
}

// decodeGrid reads format/version info, unmasks, de-interleaves and
// corrects codewords, and unpacks segments, from a grid already sampled
// (or, in tests, built directly) at its true version.
func decodeGrid(g *layout.Grid, sink Sink) (*DecodeResult, error) {
	ecl, mask, err := readFormatInfo(g)
	if err != nil {
		sink.Warn(Event{Stage: "format_info_failed", Detail: err.Error()})
		return nil, err
	}
	sink.Note(Event{Stage: "format_info_read", Detail: fmt.Sprintf("ec=%s mask=%d", ecl, mask)})

	if g.Version() >= 7 {
		if err := verifyVersionInfo(g); err != nil {
			sink.Warn(Event{Stage: "version_info_failed", Detail: err.Error()})
			return nil, err
		}
	}

	g.ApplyMask(mask) // self-inverse: this undoes the encoder's masking

	totalCodewords := qrtables.NumRawDataModules(g.Version()) / 8
	raw := g.ReadData()
	if len(raw) < totalCodewords {
		return nil, qrerr.New(qrerr.SamplingFailed, "sampled only %d codewords, need %d", len(raw), totalCodewords)
	}
	raw = raw[:totalCodewords]

	dataCodewords, blockResults, uncorrectable := deinterleaveDecode(raw, g.Version(), ecl)

	results := make([]BlockResult, len(blockResults))
	totalErrors := 0
	for i, br := range blockResults {
		results[i] = BlockResult{
			BlockIndex:          br.index,
			NumDataCodewords:    br.dataCodewords,
			NumECCodewords:      br.ecCodewords,
			ErrorsFound:         br.errorsFound,
			ErrorPositions:      br.errorPositions,
			CorrectionSucceeded: br.corrected,
		}
		totalErrors += br.errorsFound
		sink.Note(Event{Stage: "block_corrected", Detail: fmt.Sprintf("block=%d errors=%d ok=%v", br.index, br.errorsFound, br.corrected)})
	}

	maxBlockErrors := 0
	for _, r := range results {
		if r.ErrorsFound > maxBlockErrors {
			maxBlockErrors = r.ErrorsFound
		}
	}
	maxCorrectable := qrtables.Layout(g.Version(), ecl).ECCodewordsEach / 2
	functionalGrade := grading.FunctionalGrade(g, ecl, mask)
	errorGrade := grading.ErrorGrade(maxBlockErrors, maxCorrectable)

	if uncorrectable {
		return &DecodeResult{
			Version:              g.Version(),
			ECLevel:              ecl,
			Mask:                 mask,
			CorrectionSuccessful: false,
			NumErrorsCorrected:   totalErrors,
			BlockResults:         results,
			FunctionalGrade:      functionalGrade,
			ErrorGrade:           errorGrade,
		}, qrerr.New(qrerr.Uncorrectable, "one or more blocks exceeded correction capacity")
	}

	segments, err := bitstream.UnpackSegments(dataCodewords, g.Version())
	if err != nil {
		return nil, qrerr.Wrap(qrerr.DecodingMismatch, err, "unpacking segments")
	}

	message, err := assembleMessage(segments)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.DecodingMismatch, err, "assembling message")
	}

	return &DecodeResult{
		Message:              message,
		Version:              g.Version(),
		ECLevel:              ecl,
		Mask:                 mask,
		CorrectionSuccessful: true,
		NumErrorsCorrected:   totalErrors,
		BlockResults:         results,
		FunctionalGrade:      functionalGrade,
		ErrorGrade:           errorGrade,
	}, nil
}

func assembleMessage(segments []bitstream.Segment) (string, error) {
	var out []byte
	for _, seg := range segments {
		switch seg.Mode {
		case bitstream.Numeric:
			out = append(out, seg.Numeric...)
		case bitstream.Alphanumeric, bitstream.EightBit:
			out = append(out, seg.Text...)
		default:
			return "", fmt.Errorf("qrcode: unknown segment mode %d", seg.Mode)
		}
	}
	return string(out), nil
}

// readFormatInfo reads both redundant format information locations and
// returns the EC level and mask, succeeding if either location is
// within the format code's 3-bit correction guarantee.
func readFormatInfo(g *layout.Grid) (qrtables.ECLevel, uint8, error) {
	ecl, mask, err1 := qrtables.BestFormat(g.ReadFormatBits1())
	if err1 == nil {
		return ecl, mask, nil
	}
	ecl, mask, err2 := qrtables.BestFormat(g.ReadFormatBits2())
	if err2 == nil {
		return ecl, mask, nil
	}
	return 0, 0, qrerr.Wrap(qrerr.FormatInfoUnreadable, err1, "both format information locations unreadable")
}

// verifyVersionInfo cross-checks the two redundant version information
// blocks (V>=7) against the version implied by the symbol's dimension.
func verifyVersionInfo(g *layout.Grid) error {
	v1, err1 := qrtables.BestVersion(g.ReadVersionBits1())
	if err1 == nil && v1 == g.Version() {
		return nil
	}
	v2, err2 := qrtables.BestVersion(g.ReadVersionBits2())
	if err2 == nil && v2 == g.Version() {
		return nil
	}
	return qrerr.New(qrerr.VersionInfoUnreadable, "version information disagrees with sampled dimension (version %d)", g.Version())
}
