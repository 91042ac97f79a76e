package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn. Turns are append-only; a message
// is never edited after creation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DeckContent holds the text extracted from an uploaded pitch deck,
// together with how it was obtained ("text", "OCR" or the format name).
// It lives for the duration of one session and is replaced on re-upload.
type DeckContent struct {
	Filename    string    `json:"filename"`
	Text        string    `json:"-"`
	Method      string    `json:"method"`
	MimeType    string    `json:"-"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Session represents one founder's conversation with the copilot
type Session struct {
	ID        uuid.UUID    `json:"id"`
	Messages  []Message    `json:"messages"`
	Deck      *DeckContent `json:"deck,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
