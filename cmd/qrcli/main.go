// Command qrcli is a thin demonstration shell around the qrcode
// engine: encode text to a PNG, or decode a PNG/JPEG back to text.
//
// Grounded on qrcode/cmd/main.go's argv parsing and summary-printing
// style (no flag package, a bare os.Args scan, a verbose switch).
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/jalphad/qrcore/internal/bitstream"
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/jalphad/qrcore/qrcode"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func runEncode(args []string) {
	verbose := false
	if len(args) > 0 && args[0] == "-v" {
		verbose = true
		args = args[1:]
	}
	if len(args) < 3 {
		fmt.Println("Usage: qrcli encode [-v] <text> <ec-level:L|M|Q|H> <out.png>")
		os.Exit(1)
	}
	text, eclStr, outPath := args[0], args[1], args[2]

	ecl, err := parseECLevel(eclStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	mode := bitstream.EightBit
	data := []byte(text)
	if bitstream.IsNumeric(data) {
		mode = bitstream.Numeric
	} else if bitstream.IsAlphanumeric(data) {
		mode = bitstream.Alphanumeric
	}

	sink := &printSink{verbose: verbose}
	fmt.Println("=== QR Code Encoding ===")
	g, err := qrcode.Encode(data, mode, ecl, 0, sink)
	if err != nil {
		fmt.Printf("Error encoding: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Version: %d\n", g.Version())
	fmt.Printf("Size: %dx%d modules\n", g.Size(), g.Size())

	const scale = 8
	img := image.NewGray(image.Rect(0, 0, g.Size()*scale, g.Size()*scale))
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			c := color.Gray{Y: 255}
			if g.Get(row, col) {
				c = color.Gray{Y: 0}
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(col*scale+dx, row*scale+dy, c)
				}
			}
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error writing PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func runDecode(args []string) {
	verbose := false
	if len(args) > 0 && args[0] == "-v" {
		verbose = true
		args = args[1:]
	}
	if len(args) < 1 {
		fmt.Println("Usage: qrcli decode [-v] <image>")
		os.Exit(1)
	}
	imagePath := args[0]

	file, err := os.Open(imagePath)
	if err != nil {
		fmt.Printf("Error opening image: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	img, err := decodeImage(file, imagePath)
	if err != nil {
		fmt.Printf("Error decoding image file: %v\n", err)
		os.Exit(1)
	}

	sink := &printSink{verbose: verbose}
	fmt.Println("=== QR Code Decoding ===")
	result, err := qrcode.Decode(img, sink)
	if err != nil {
		fmt.Printf("Error decoding QR code: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n=== DECODING RESULTS ===")
	fmt.Printf("Message: %q\n", result.Message)
	fmt.Printf("Version: %d, EC level: %s, Mask: %d\n", result.Version, result.ECLevel, result.Mask)
	if result.NumErrorsCorrected > 0 {
		fmt.Printf("Corrected %d error(s)\n", result.NumErrorsCorrected)
	} else {
		fmt.Println("No errors detected (clean QR code)")
	}
	if verbose {
		for _, block := range result.BlockResults {
			fmt.Printf("Block %d: data=%d ec=%d errors=%d ok=%v\n",
				block.BlockIndex, block.NumDataCodewords, block.NumECCodewords, block.ErrorsFound, block.CorrectionSucceeded)
		}
	}
}

func decodeImage(f *os.File, path string) (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(path), ".jpg") || strings.HasSuffix(strings.ToLower(path), ".jpeg") {
		return jpeg.Decode(f)
	}
	return png.Decode(f)
}

func parseECLevel(s string) (qrtables.ECLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qrtables.L, nil
	case "M":
		return qrtables.M, nil
	case "Q":
		return qrtables.Q, nil
	case "H":
		return qrtables.H, nil
	default:
		return 0, fmt.Errorf("unknown EC level %q, want one of L, M, Q, H", s)
	}
}

type printSink struct {
	verbose bool
}

func (s *printSink) Note(e qrcode.Event) {
	if s.verbose {
		fmt.Printf("  [%s] %s\n", e.Stage, e.Detail)
	}
}

func (s *printSink) Warn(e qrcode.Event) {
	fmt.Printf("  warning [%s] %s\n", e.Stage, e.Detail)
}

func printUsage() {
	fmt.Println("QR Code engine CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  qrcli encode [-v] <text> <ec-level:L|M|Q|H> <out.png>")
	fmt.Println("  qrcli decode [-v] <image>")
}
