// Package sampler locates a QR Code symbol in a raster image and
// samples it into a module grid (the geometric half of C7).
//
// Grounded on qrcode/types/extractor.go's ExtractFromBitmap: uses
// gozxing's BinaryBitmap to threshold the image and its
// qrcode/detector.Detector to find the three finder patterns, fit the
// perspective transform, and sample module centers into a BitMatrix.
// Everything past this point (format info, de-interleaving,
// Reed-Solomon correction, segment decoding) is this module's own code
// in package qrcode, not gozxing's decoder.
package sampler

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode/detector"

	"github.com/jalphad/qrcore/internal/layout"
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/jalphad/qrcore/qrerr"
)

// Locate finds a QR Code symbol in img and returns the sampled module
// grid, with function-pattern positions marked per the version implied
// by the sampled size. Module colors are raw (masked, as printed) --
// the caller is responsible for reading format info and unmasking.
func Locate(img image.Image) (*layout.Grid, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.SamplingFailed, err, "constructing bitmap")
	}
	matrix, err := bmp.GetBlackMatrix()
	if err != nil {
		return nil, qrerr.Wrap(qrerr.SamplingFailed, err, "thresholding image")
	}
	det := detector.NewDetector(matrix)
	detResult, err := det.Detect(nil)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.FinderNotFound, err, "locating finder patterns")
	}
	bits := detResult.GetBits()

	size := bits.GetWidth()
	version := layout.ProvisionalVersion(size)
	if version < 1 || version > 40 {
		return nil, qrerr.New(qrerr.SamplingFailed, "sampled dimension %d does not correspond to a valid version", size)
	}
	if size != qrtables.Size(version) {
		return nil, qrerr.New(qrerr.SamplingFailed, "sampled dimension %d is not a valid QR Code size (nearest version %d expects %d)", size, version, qrtables.Size(version))
	}
	if bits.GetHeight() != size {
		return nil, qrerr.New(qrerr.SamplingFailed, "sampled bit matrix is not square (%dx%d)", size, bits.GetHeight())
	}

	g := layout.NewGrid(version)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			g.SetRaw(row, col, bits.Get(col, row))
		}
	}
	return g, nil
}

// LocateRegion restricts the search to the sub-rectangle
// [x0,x1)x[y0,y1) of img, for callers decoding one symbol out of a
// larger scanned page. gozxing's detector works over the full bitmap,
// so this crops first via image.Image's SubImage-compatible rectangle
// when the underlying image supports it.
func LocateRegion(img image.Image, x0, y0, x1, y1 int) (*layout.Grid, error) {
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	si, ok := img.(subImager)
	if !ok {
		return nil, qrerr.New(qrerr.SamplingFailed, "image type %T does not support cropping", img)
	}
	cropped := si.SubImage(image.Rect(x0, y0, x1, y1))
	return Locate(cropped)
}
