package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// Recognized upload MIME types
const (
	MimePDF  = "application/pdf"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Extraction provenance tags
const (
	MethodText = "text"
	MethodOCR  = "OCR"
	MethodPPTX = "pptx"
)

const (
	// Below this many characters of text-layer output the PDF is
	// assumed to be image-only and OCR is attempted.
	minTextThreshold = 500

	ocrDPI = 150
)

var (
	// ErrUnsupportedFileType is returned for MIME types other than PDF and PPTX
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoTextExtracted is returned when every extraction pass came back empty
	ErrNoTextExtracted = errors.New("no text could be extracted from the file")
)

// ExtractService converts uploaded deck files into plain text
type ExtractService struct{}

// NewExtractService creates a new extract service
func NewExtractService() *ExtractService {
	return &ExtractService{}
}

// Extract produces plain text and a provenance tag for a deck file.
// Stage-level failures (corrupt pages, missing OCR binary) degrade to
// less text rather than aborting; only a fully empty result or an
// unsupported MIME type returns an error.
func (s *ExtractService) Extract(mimeType string, data []byte) (string, string, error) {
	switch mimeType {
	case MimePDF:
		return s.extractPDF(data)
	case MimePPTX:
		text, err := s.extractPPTX(data)
		if err != nil {
			return "", "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", "", ErrNoTextExtracted
		}
		return text, MethodPPTX, nil
	default:
		return "", "", ErrUnsupportedFileType
	}
}

// extractPDF runs the text-layer pass and, when it yields too little
// content (image-only decks), the OCR fallback. The final result is
// whichever pass produced more text; ties keep the text-layer result.
func (s *ExtractService) extractPDF(data []byte) (string, string, error) {
	direct, err := s.pdfTextLayer(data)
	if err != nil {
		log.Printf("Warning: PDF text extraction failed: %v", err)
		direct = ""
	}
	if len(direct) >= minTextThreshold {
		return direct, MethodText, nil
	}

	ocr, err := s.pdfOCR(data)
	if err != nil {
		log.Printf("Warning: OCR fallback failed: %v", err)
		ocr = ""
	}

	text, method := chooseExtractionResult(direct, ocr)
	if strings.TrimSpace(text) == "" {
		return "", "", ErrNoTextExtracted
	}
	return text, method, nil
}

// chooseExtractionResult keeps whichever pass produced more text.
// The OCR result wins only when non-empty and strictly longer, so ties
// keep the text-layer result.
func chooseExtractionResult(direct, ocr string) (string, string) {
	if ocr != "" && len(ocr) > len(direct) {
		return ocr, MethodOCR
	}
	return direct, MethodText
}

// pdfTextLayer extracts the embedded text layer page by page
func (s *ExtractService) pdfTextLayer(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", i, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&builder, "--- Page %d ---\n%s\n", i, text)
	}
	return builder.String(), nil
}

// pdfOCR rasterizes each page and runs it through Tesseract
func (s *ExtractService) pdfOCR(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf for rasterization: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	var builder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, ocrDPI)
		if err != nil {
			log.Printf("Warning: failed to rasterize page %d: %v", i+1, err)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			log.Printf("Warning: failed to encode page %d image: %v", i+1, err)
			continue
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			log.Printf("Warning: failed to load page %d into OCR: %v", i+1, err)
			continue
		}

		text, err := client.Text()
		if err != nil {
			log.Printf("Warning: OCR failed on page %d: %v", i+1, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&builder, "--- Page %d (OCR) ---\n%s\n", i+1, text)
	}
	return builder.String(), nil
}

// extractPPTX walks the slide XML inside the package zip. Slides are
// visited in order; within a slide, every text body contributes its
// paragraphs in traversal order. Slides with no text contribute no block.
func (s *ExtractService) extractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open slide package: %w", err)
	}

	slides := make(map[int]*zip.File)
	numbers := make([]int, 0)
	for _, f := range zr.File {
		var n int
		if _, err := fmt.Sscanf(f.Name, "ppt/slides/slide%d.xml", &n); err == nil {
			slides[n] = f
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	var builder strings.Builder
	for _, n := range numbers {
		rc, err := slides[n].Open()
		if err != nil {
			log.Printf("Warning: failed to open slide %d: %v", n, err)
			continue
		}
		shapes, err := slideTextBodies(rc)
		rc.Close()
		if err != nil {
			log.Printf("Warning: failed to parse slide %d: %v", n, err)
			continue
		}

		block := strings.Join(shapes, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		fmt.Fprintf(&builder, "--- Slide %d ---\n%s\n", n, block)
	}
	return builder.String(), nil
}

// slideTextBodies collects the text of each text body (shape or table
// cell) on a slide, paragraphs joined by newlines.
func slideTextBodies(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var bodies []string
	var current strings.Builder
	inBody := false
	inRun := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode slide xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txBody":
				inBody = true
				current.Reset()
			case "t":
				inRun = inBody
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if inBody {
					current.WriteString("\n")
				}
			case "txBody":
				inBody = false
				text := strings.TrimRight(current.String(), "\n")
				if strings.TrimSpace(text) != "" {
					bodies = append(bodies, text)
				}
			}
		}
	}
	return bodies, nil
}
