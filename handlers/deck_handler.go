package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
	"github.com/thefundraisingaccelerator/fundraising-copilot/repository"
	"github.com/thefundraisingaccelerator/fundraising-copilot/service"
	"github.com/thefundraisingaccelerator/fundraising-copilot/storage"
)

// DeckHandler handles pitch deck upload and removal
type DeckHandler struct {
	sessionRepo      *repository.SessionRepository
	extractService   *service.ExtractService
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(sessionRepo *repository.SessionRepository, extractService *service.ExtractService, store storage.Storage) *DeckHandler {
	return &DeckHandler{
		sessionRepo:    sessionRepo,
		extractService: extractService,
		storage:        store,
		maxFileSize:    20 * 1024 * 1024, // 20MB
		allowedMimeTypes: map[string]bool{
			service.MimePDF:  true,
			service.MimePPTX: true,
		},
	}
}

// UploadDeck handles POST /api/sessions/:id/deck
func (h *DeckHandler) UploadDeck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return
	}

	session, err := h.sessionRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		// Infer from extension
		filename := strings.ToLower(fileHeader.Filename)
		switch {
		case strings.HasSuffix(filename, ".pdf"):
			mimeType = service.MimePDF
		case strings.HasSuffix(filename, ".pptx"):
			mimeType = service.MimePPTX
		default:
			mimeType = "application/octet-stream"
		}
	}

	// Anything other than PDF or PPTX is rejected with no extraction
	// attempted.
	if !h.allowedMimeTypes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed. Allowed types: PDF, PPTX",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	fileID := uuid.New()
	storagePath, err := h.storage.Upload(c.Request.Context(), fileID, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": fmt.Sprintf("Failed to store file: %v", err),
			},
		})
		return
	}

	// Extraction failure degrades to "no content" with a user-visible
	// warning; the upload itself still succeeds.
	warning := ""
	text, method, err := h.extractService.Extract(mimeType, data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			// Already filtered by the MIME allow-list; treat a
			// mismatch the same as no text.
			warning = "File type not supported for text extraction."
		} else {
			warning = "Could not extract text from the deck. It was saved, but won't be used for context."
		}
		log.Printf("Warning: deck extraction failed for %s: %v", fileHeader.Filename, err)
	}

	// Replacing an existing deck removes its stored file first
	if session.Deck != nil && session.Deck.StoragePath != "" {
		if err := h.storage.Delete(c.Request.Context(), session.Deck.StoragePath); err != nil {
			log.Printf("Warning: failed to delete replaced deck file: %v", err)
		}
	}

	session.Deck = &models.DeckContent{
		Filename:    fileHeader.Filename,
		Text:        text,
		Method:      method,
		MimeType:    mimeType,
		Size:        int64(len(data)),
		StoragePath: storagePath,
		UploadedAt:  time.Now(),
	}
	session.UpdatedAt = time.Now()

	response := gin.H{
		"filename":   fileHeader.Filename,
		"method":     method,
		"characters": len(text),
	}
	if warning != "" {
		response["warning"] = warning
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    response,
	})
}

// DownloadDeck handles GET /api/sessions/:id/deck
func (h *DeckHandler) DownloadDeck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return
	}

	session, err := h.sessionRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	if session.Deck == nil || session.Deck.StoragePath == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_DECK",
				"message": "No deck attached to this session",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), session.Deck.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download file: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", session.Deck.Filename))
	c.DataFromReader(http.StatusOK, session.Deck.Size, session.Deck.MimeType, reader, nil)
}

// RemoveDeck handles DELETE /api/sessions/:id/deck
func (h *DeckHandler) RemoveDeck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return
	}

	session, err := h.sessionRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	if session.Deck == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_DECK",
				"message": "No deck attached to this session",
			},
		})
		return
	}

	if session.Deck.StoragePath != "" {
		if err := h.storage.Delete(c.Request.Context(), session.Deck.StoragePath); err != nil {
			log.Printf("Warning: failed to delete deck file: %v", err)
		}
	}

	session.Deck = nil
	session.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
