// Package qrcode is the high-level QR Code engine API (C8): build a
// symbol grid from text (Encode) and recover text from a sampled image
// (Decode/DecodeRegion), wiring together internal/bitstream,
// internal/qrtables, internal/layout, internal/maskeval, internal/rs
// and internal/sampler.
package qrcode

import (
	"fmt"

	"github.com/jalphad/qrcore/internal/bitstream"
	"github.com/jalphad/qrcore/internal/layout"
	"github.com/jalphad/qrcore/internal/maskeval"
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/jalphad/qrcore/qrerr"
)

// Encode builds a complete QR Code symbol grid for data under the
// given mode and error-correction level.
//
// If version is 0, the smallest version (1..40) whose capacity fits
// the encoded payload at this EC level is chosen automatically. A
// non-zero version pins the symbol size, erroring with
// qrerr.CapacityExceeded if the payload doesn't fit that version.
// Mode is never inferred (left to the caller, per this engine's scope).
func Encode(data []byte, mode bitstream.Mode, ecl qrtables.ECLevel, version int, sink Sink) (*layout.Grid, error) {
	sink = orNoop(sink)
	if len(data) == 0 {
		return nil, qrerr.New(qrerr.InvalidInput, "empty input")
	}
	switch mode {
	case bitstream.Numeric:
		if !bitstream.IsNumeric(data) {
			return nil, qrerr.New(qrerr.InvalidInput, "data contains non-digit bytes for numeric mode")
		}
	case bitstream.Alphanumeric:
		if !bitstream.IsAlphanumeric(data) {
			return nil, qrerr.New(qrerr.InvalidInput, "data contains characters outside the alphanumeric charset")
		}
	case bitstream.EightBit:
	default:
		return nil, qrerr.New(qrerr.InvalidInput, "unknown mode %d", mode)
	}

	if version == 0 {
		v, err := VersionForLength(ecl, mode, len(data))
		if err != nil {
			return nil, err
		}
		version = v
	} else if version < qrtables.MinVersion || version > qrtables.MaxVersion {
		return nil, qrerr.New(qrerr.InvalidInput, "version %d out of range [1,40]", version)
	}

	capacityBits := qrtables.NumDataCodewords(version, ecl) * 8
	if ccBits := mode.CharCountBits(version); len(data) >= 1<<uint(ccBits) {
		return nil, qrerr.New(qrerr.CapacityExceeded, "%d characters exceed the %d-bit character count of version %d", len(data), ccBits, version)
	}
	w := &bitstream.Writer{}
	if err := w.PackSegment(mode, version, data); err != nil {
		return nil, qrerr.Wrap(qrerr.InvalidInput, err, "packing segment")
	}
	if w.Len() > capacityBits {
		return nil, qrerr.New(qrerr.CapacityExceeded, "payload needs %d bits but version %d EC %s has %d", w.Len(), version, ecl, capacityBits)
	}
	if err := w.FinishAndPad(capacityBits); err != nil {
		return nil, qrerr.Wrap(qrerr.CapacityExceeded, err, "padding payload")
	}
	sink.Note(Event{Stage: "segment_packed", Detail: fmt.Sprintf("version=%d mode=%v bits=%d", version, mode, w.Len())})

	interleaved, err := interleaveEncode(w.Bytes(), version, ecl)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.InvalidInput, err, "interleaving blocks")
	}
	sink.Note(Event{Stage: "rs_encoded", Detail: fmt.Sprintf("%d codewords", len(interleaved))})

	g := layout.NewGrid(version)
	if err := g.PlaceData(interleaved); err != nil {
		return nil, qrerr.Wrap(qrerr.InvalidInput, err, "placing data")
	}

	mask := maskeval.SelectBestMask(g)
	g.ApplyMask(mask)
	g.WriteFormatInfo(ecl, mask)
	g.WriteVersionInfo()
	sink.Note(Event{Stage: "mask_selected", Detail: fmt.Sprintf("mask=%d", mask)})

	return g, nil
}

// VersionForLength returns the smallest version whose capacity at ecl
// fits a single segment of mode carrying length characters, including
// the mode indicator and character-count indicator overhead (which
// itself depends on the version band, so this searches rather than
// computing directly).
func VersionForLength(ecl qrtables.ECLevel, mode bitstream.Mode, length int) (int, error) {
	for v := qrtables.MinVersion; v <= qrtables.MaxVersion; v++ {
		overhead := 4 + mode.CharCountBits(v)
		need := overhead + bitstream.PayloadBits(mode, length)
		if need <= qrtables.NumDataCodewords(v, ecl)*8 {
			return v, nil
		}
	}
	return 0, qrerr.New(qrerr.CapacityExceeded, "no version at EC level %s fits %d characters in mode %v", ecl, length, mode)
}

// DataCapacityBits returns the raw data capacity, in bits, of the given
// version and EC level (before mode indicator/character-count/padding
// overhead).
func DataCapacityBits(version int, ecl qrtables.ECLevel) int {
	return qrtables.NumDataCodewords(version, ecl) * 8
}
