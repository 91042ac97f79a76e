package handlers

import (
	"archive/zip"
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thefundraisingaccelerator/fundraising-copilot/service"
)

const testSlideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>Acme Robotics</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

func buildTestPPTX(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(testSlideXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// multipartUpload builds a multipart body with an explicit part
// Content-Type, which CreateFormFile does not allow.
func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadDeck_PPTX(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	body, contentType := multipartUpload(t, "acme.pptx", service.MimePPTX, buildTestPPTX(t))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(router, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "acme.pptx", data["filename"])
	assert.Equal(t, "pptx", data["method"])
	assert.Greater(t, data["characters"].(float64), float64(0))
	assert.NotContains(t, data, "warning")

	require.NotNil(t, session.Deck)
	assert.Contains(t, session.Deck.Text, "Acme Robotics")
	assert.NotEmpty(t, session.Deck.StoragePath)
}

func TestUploadDeck_InvalidFileType(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE_TYPE", errorCode(t, w))
	assert.Nil(t, session.Deck)
}

func TestUploadDeck_MimeInferredFromExtension(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	// No part Content-Type; the handler falls back to the .pptx extension
	body, contentType := multipartUpload(t, "acme.pptx", "", buildTestPPTX(t))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(router, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, session.Deck)
	assert.Equal(t, "pptx", session.Deck.Method)
}

func TestUploadDeck_ExtractionFailureStillSaves(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	// A valid MIME type with garbage bytes: the upload succeeds with a
	// warning and an empty deck text.
	body, contentType := multipartUpload(t, "broken.pptx", service.MimePPTX, []byte("not a zip"))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(router, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["warning"])
	assert.Equal(t, float64(0), data["characters"])

	require.NotNil(t, session.Deck)
	assert.Empty(t, session.Deck.Text)
}

func TestUploadDeck_MissingFile(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := doRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", errorCode(t, w))
}

func TestUploadDeck_UnknownSession(t *testing.T) {
	router, _ := newTestRouter(t, &stubCompleter{})

	body, contentType := multipartUpload(t, "acme.pptx", service.MimePPTX, buildTestPPTX(t))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/00000000-0000-0000-0000-000000000001/deck", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(router, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadDeck(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()
	pptxBytes := buildTestPPTX(t)

	body, contentType := multipartUpload(t, "acme.pptx", service.MimePPTX, pptxBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)
	require.Equal(t, http.StatusCreated, doRequest(router, req).Code)

	w := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID.String()+"/deck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pptxBytes, w.Body.Bytes())
	assert.Equal(t, service.MimePPTX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="acme.pptx"`)
}

func TestDownloadDeck_NoDeck(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	w := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID.String()+"/deck", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NO_DECK", errorCode(t, w))
}

func TestRemoveDeck(t *testing.T) {
	router, sessions := newTestRouter(t, &stubCompleter{})
	session := sessions.Create()

	body, contentType := multipartUpload(t, "acme.pptx", service.MimePPTX, buildTestPPTX(t))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID.String()+"/deck", body)
	req.Header.Set("Content-Type", contentType)
	require.Equal(t, http.StatusCreated, doRequest(router, req).Code)

	w := doRequest(router, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+session.ID.String()+"/deck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, session.Deck)

	// A second removal finds nothing attached
	w = doRequest(router, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+session.ID.String()+"/deck", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NO_DECK", errorCode(t, w))
}
