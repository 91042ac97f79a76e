package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slideXMLTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>%s</p:spTree></p:cSld></p:sld>`

func buildPPTX(t *testing.T, slides map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range slides {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func shape(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString("<p:sp><p:txBody>")
	for _, p := range paragraphs {
		b.WriteString("<a:p><a:r><a:t>")
		b.WriteString(p)
		b.WriteString("</a:t></a:r></a:p>")
	}
	b.WriteString("</p:txBody></p:sp>")
	return b.String()
}

func TestExtract_PPTXSlidesInOrderWithMarkers(t *testing.T) {
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide2.xml": strings.Replace(slideXMLTemplate, "%s", shape("Traction"), 1),
		"ppt/slides/slide1.xml": strings.Replace(slideXMLTemplate, "%s",
			shape("Acme Robotics", "Pre-seed")+shape("Warehouse automation"), 1),
	})

	svc := NewExtractService()
	text, method, err := svc.Extract(MimePPTX, data)
	require.NoError(t, err)

	assert.Equal(t, MethodPPTX, method)
	assert.Equal(t,
		"--- Slide 1 ---\nAcme Robotics\nPre-seed\nWarehouse automation\n--- Slide 2 ---\nTraction\n",
		text)
}

func TestExtract_PPTXSkipsEmptySlides(t *testing.T) {
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide1.xml": strings.Replace(slideXMLTemplate, "%s", shape("Title"), 1),
		"ppt/slides/slide2.xml": strings.Replace(slideXMLTemplate, "%s", "", 1),
		"ppt/slides/slide3.xml": strings.Replace(slideXMLTemplate, "%s", shape("Ask"), 1),
	})

	svc := NewExtractService()
	text, _, err := svc.Extract(MimePPTX, data)
	require.NoError(t, err)

	assert.NotContains(t, text, "--- Slide 2 ---")
	assert.Contains(t, text, "--- Slide 1 ---")
	assert.Contains(t, text, "--- Slide 3 ---")
}

func TestExtract_PPTXWithNoText(t *testing.T) {
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide1.xml": strings.Replace(slideXMLTemplate, "%s", "", 1),
	})

	svc := NewExtractService()
	_, _, err := svc.Extract(MimePPTX, data)
	assert.ErrorIs(t, err, ErrNoTextExtracted)
}

func TestExtract_UnsupportedMimeType(t *testing.T) {
	svc := NewExtractService()

	_, _, err := svc.Extract("text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, _, err = svc.Extract("application/msword", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExtract_CorruptPDFDegradesWithoutPanic(t *testing.T) {
	svc := NewExtractService()

	_, _, err := svc.Extract(MimePDF, []byte("not a pdf at all"))
	assert.ErrorIs(t, err, ErrNoTextExtracted)
}

func TestChooseExtractionResult(t *testing.T) {
	// OCR wins only when strictly longer
	text, method := chooseExtractionResult("short", "a much longer ocr result")
	assert.Equal(t, "a much longer ocr result", text)
	assert.Equal(t, MethodOCR, method)

	// Ties keep the text-layer result
	text, method = chooseExtractionResult("12345", "abcde")
	assert.Equal(t, "12345", text)
	assert.Equal(t, MethodText, method)

	// Empty OCR never wins
	text, method = chooseExtractionResult("", "")
	assert.Equal(t, "", text)
	assert.Equal(t, MethodText, method)
}
