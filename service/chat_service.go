package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
	"github.com/thefundraisingaccelerator/fundraising-copilot/repository"
)

var (
	ErrCompleterNotSet = errors.New("completer not set")
	ErrEmptyMessage    = errors.New("message is empty")
)

const (
	defaultMaxOutputTokens = 2000

	// Investor results injected into a single turn
	searchTurnMaxResults = 15
)

// ChatService orchestrates one conversation turn: classify the message,
// optionally match investors, assemble the prompt with injected context
// and make exactly one model call.
type ChatService struct {
	sessionRepo     *repository.SessionRepository
	matcher         *MatcherService
	intents         *IntentService
	completer       Completer
	persona         string
	maxOutputTokens int32
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithSessionRepository sets the session repository
func ChatWithSessionRepository(repo *repository.SessionRepository) ChatServiceOption {
	return func(s *ChatService) {
		s.sessionRepo = repo
	}
}

// ChatWithMatcher sets the investor matcher
func ChatWithMatcher(matcher *MatcherService) ChatServiceOption {
	return func(s *ChatService) {
		s.matcher = matcher
	}
}

// ChatWithIntentService sets the intent classifier
func ChatWithIntentService(intents *IntentService) ChatServiceOption {
	return func(s *ChatService) {
		s.intents = intents
	}
}

// ChatWithCompleter sets the model boundary
func ChatWithCompleter(completer Completer) ChatServiceOption {
	return func(s *ChatService) {
		s.completer = completer
	}
}

// ChatWithPersona overrides the default persona instruction block
func ChatWithPersona(persona string) ChatServiceOption {
	return func(s *ChatService) {
		s.persona = persona
	}
}

// ChatWithMaxOutputTokens sets the per-turn output token limit
func ChatWithMaxOutputTokens(n int32) ChatServiceOption {
	return func(s *ChatService) {
		s.maxOutputTokens = n
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		intents:         NewIntentService(),
		persona:         personaInstructions,
		maxOutputTokens: defaultMaxOutputTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendMessageRequest represents one user turn
type SendMessageRequest struct {
	SessionID uuid.UUID
	Message   string

	// MaxOutputTokens overrides the service default when positive
	MaxOutputTokens int32
}

// SendMessageResult carries the assistant reply for one turn
type SendMessageResult struct {
	Reply            models.Message
	InvestorsMatched int
}

// SendMessage runs one full conversation turn. The raw user message is
// appended to history before the model call; on model failure it stays
// there unpaired and the error propagates with no retry.
func (s *ChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResult, error) {
	if s.completer == nil {
		return nil, ErrCompleterNotSet
	}
	if s.sessionRepo == nil {
		return nil, errors.New("session repository not set")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.sessionRepo.GetByID(req.SessionID)
	if err != nil {
		return nil, err
	}

	hasDeck := session.Deck != nil && session.Deck.Text != ""
	intent := s.intents.Classify(message, hasDeck)

	blocks, matched := s.buildContextBlocks(session, message, intent, hasDeck)

	// History keeps the raw message; only the outgoing turn carries
	// the injected context.
	augmented := message
	if len(blocks) > 0 {
		augmented = message + "\n\n" + strings.Join(blocks, "\n\n")
	}

	session.Messages = append(session.Messages, models.Message{
		Role:    models.RoleUser,
		Content: message,
	})
	session.UpdatedAt = time.Now()

	turns := make([]models.Message, len(session.Messages))
	copy(turns, session.Messages)
	turns[len(turns)-1].Content = augmented

	maxTokens := s.maxOutputTokens
	if req.MaxOutputTokens > 0 {
		maxTokens = req.MaxOutputTokens
	}

	reply, err := s.completer.Complete(ctx, s.persona, turns, maxTokens)
	if err != nil {
		return nil, err
	}

	assistantMessage := models.Message{
		Role:    models.RoleAssistant,
		Content: reply,
	}
	session.Messages = append(session.Messages, assistantMessage)
	session.UpdatedAt = time.Now()

	return &SendMessageResult{
		Reply:            assistantMessage,
		InvestorsMatched: matched,
	}, nil
}

// buildContextBlocks assembles the per-turn injected context according
// to intent and deck availability: investor matches for search turns
// with enough signal, the deck excerpt whenever a deck is attached, and
// a note when a review is requested without a deck.
func (s *ChatService) buildContextBlocks(
	session *models.Session,
	message string,
	intent Intent,
	hasDeck bool,
) ([]string, int) {
	blocks := make([]string, 0, 2)
	matched := 0

	if intent.WantsInvestorSearch && s.matcher != nil {
		deckText := ""
		if hasDeck {
			deckText = session.Deck.Text
		}
		criteria := s.intents.DeriveCriteria(message, deckText)

		// Without a derivable stage or sector there is nothing to
		// match on; the persona has the model ask clarifying
		// questions instead of fabricating matches.
		if criteria.Stage != "" || len(criteria.SectorKeywords) > 0 {
			criteria.MaxResults = searchTurnMaxResults
			scored := s.matcher.Match(criteria)
			matched = len(scored)
			if matched > 0 {
				investors := make([]models.Investor, 0, len(scored))
				for _, m := range scored {
					investors = append(investors, m.Investor)
				}
				blocks = append(blocks, investorContextBlock(FormatInvestorContext(investors)))
			}
		}
	}

	if hasDeck {
		blocks = append(blocks, deckContextBlock(session.Deck))
	} else if intent.WantsDeckReview {
		blocks = append(blocks, noDeckNote)
	}

	return blocks, matched
}

const noDeckNote = `---
NOTE: The founder asked about their deck but no deck is attached to this conversation. Ask them to upload it (PDF or PPTX) if they want slide-level feedback.
---`

func investorContextBlock(formatted string) string {
	return fmt.Sprintf(`---
INVESTOR DATABASE RESULTS
Based on the startup description, here are potentially relevant investors from the database:

%s

Use this data to recommend 5-10 investors that seem like the best fit. Explain WHY each might be relevant based on their thesis and stage preferences. Remind the founder to research each one and look for warm intro paths.
---`, formatted)
}

func deckContextBlock(deck *models.DeckContent) string {
	return fmt.Sprintf(`---
ATTACHED PITCH DECK (%s, extracted via %s)

%s
---`, deck.Filename, deck.Method, DeckExcerpt(deck.Text))
}
