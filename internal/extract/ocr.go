package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/cheggaaa/pb/v3"
	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ocrDPI keeps rendering fast while staying sharp enough for table text.
const ocrDPI = 200

// OCRPages renders every page to an image and runs tesseract over it.
// Individual page failures are skipped, not fatal; the survey data we care
// about repeats across pages.
func OCRPages(pdfPath string, showProgress bool) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s for OCR: %w", pdfPath, err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	numPages := doc.NumPage()
	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(numPages)
	}

	pages := make([]string, 0, numPages)
	for i := 0; i < numPages; i++ {
		if bar != nil {
			bar.Increment()
		}
		img, err := doc.ImageDPI(i, ocrDPI)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		encoded, err := encodeGray(img)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		if err := client.SetImageFromBytes(encoded); err != nil {
			pages = append(pages, "")
			continue
		}
		text, err := client.Text()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	if bar != nil {
		bar.Finish()
	}
	return pages, nil
}

// encodeGray converts the rendered page to grayscale PNG, which tesseract
// reads more reliably than color scans.
func encodeGray(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
