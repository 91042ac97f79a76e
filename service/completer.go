package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

// ErrEmptyCompletion is returned when the model produced no usable text
var ErrEmptyCompletion = errors.New("model returned no content")

// Completer is the model service boundary: one opaque call, prompt in,
// text out. Failures propagate to the caller with no built-in retry.
type Completer interface {
	Complete(ctx context.Context, systemInstructions string, turns []models.Message, maxOutputTokens int32) (string, error)
}

// GeminiCompleter implements Completer with the Gemini API
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a completer for the given model name
func NewGeminiCompleter(client *genai.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{
		client: client,
		model:  model,
	}
}

// Complete sends the full turn sequence to Gemini and returns the
// response text. The last turn must be the current user turn.
func (g *GeminiCompleter) Complete(
	ctx context.Context,
	systemInstructions string,
	turns []models.Message,
	maxOutputTokens int32,
) (string, error) {
	if len(turns) == 0 {
		return "", errors.New("no turns to send")
	}

	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstructions)},
	}
	model.SetMaxOutputTokens(maxOutputTokens)

	chat := model.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	if builder.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return builder.String(), nil
}
