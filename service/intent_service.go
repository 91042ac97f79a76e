package service

import (
	"strings"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

// Intent holds the per-turn routing decision. Classification is purely
// syntactic keyword presence; false positives and negatives are
// expected and acceptable.
type Intent struct {
	WantsInvestorSearch bool
	WantsDeckReview     bool
}

// Keyword rule tables. Kept as explicit package data so the heuristic
// stays auditable and testable apart from the orchestration logic.
var (
	investorSearchKeywords = []string{
		"investor", "investors", "find", "recommend", "who should i pitch",
		"vc", "angel", "funding", "raise", "fit for my",
	}

	deckReviewKeywords = []string{
		"review my deck", "analyze my deck", "analyse my deck",
		"review my pitch deck", "analyze my pitch deck",
		"feedback on my deck", "look at my deck",
	}

	// Looser deck mentions, only consulted when a deck is attached
	deckMentionKeywords = []string{
		"my deck", "the deck", "this deck", "my pitch deck", "my slides",
	}

	preSeedSignals = []string{"pre-seed", "preseed", "idea", "prototype"}
	seedSignals    = []string{"seed", "early revenue", "mvp"}
	seriesASignals = []string{"series a", "scaling", "growth"}

	sectorTerms = []string{
		"ai", "fintech", "healthtech", "health", "saas", "b2b", "b2c", "consumer", "enterprise",
		"climate", "sustainability", "edtech", "proptech", "foodtech", "biotech", "deeptech",
		"marketplace", "ecommerce", "gaming", "web3", "blockchain", "crypto", "defi",
		"mental health", "wellness", "fashion", "retail", "logistics", "hr", "legal",
		"insurance", "insurtech", "regtech", "cybersecurity", "security", "iot", "robotics",
		"energy", "cleantech", "agtech", "space", "mobility", "transport", "social impact", "impact",
	}

	ukSignals     = []string{"uk", "united kingdom", "london", "britain"}
	usaSignals    = []string{"us", "usa", "united states", "america"}
	europeSignals = []string{"europe", "eu"}
)

// IntentService classifies user turns and derives search criteria
type IntentService struct{}

// NewIntentService creates a new intent service
func NewIntentService() *IntentService {
	return &IntentService{}
}

// Classify decides whether a message asks for an investor search
// and/or a deck review. When a deck is attached, plain mentions of
// "my deck" also count as a review request.
func (s *IntentService) Classify(message string, hasDeck bool) Intent {
	lower := strings.ToLower(message)

	intent := Intent{
		WantsInvestorSearch: containsAny(lower, investorSearchKeywords),
		WantsDeckReview:     containsAny(lower, deckReviewKeywords),
	}
	if !intent.WantsDeckReview && hasDeck {
		intent.WantsDeckReview = containsAny(lower, deckMentionKeywords)
	}
	return intent
}

// DeriveCriteria extracts stage, sector keywords and geography from a
// user message, plus sector keywords from any attached deck text.
// Stage and geography come from the message only, where the founder
// states them.
func (s *IntentService) DeriveCriteria(message, deckText string) models.SearchCriteria {
	lower := strings.ToLower(message)
	criteria := models.SearchCriteria{}

	switch {
	case containsAny(lower, preSeedSignals):
		criteria.Stage = models.StagePreSeed
	case containsAny(lower, seedSignals):
		criteria.Stage = models.StageSeed
	case containsAny(lower, seriesASignals):
		criteria.Stage = models.StageSeriesA
	}

	// Sector terms are collected per source and not deduplicated
	// across sources: a term present in both message and deck scores
	// twice downstream.
	for _, term := range sectorTerms {
		if strings.Contains(lower, term) {
			criteria.SectorKeywords = append(criteria.SectorKeywords, term)
		}
	}
	if deckText != "" {
		deckLower := strings.ToLower(DeckExcerpt(deckText))
		for _, term := range sectorTerms {
			if strings.Contains(deckLower, term) {
				criteria.SectorKeywords = append(criteria.SectorKeywords, term)
			}
		}
	}

	switch {
	case containsAny(lower, ukSignals):
		criteria.Geography = models.GeographyUK
	case containsAny(lower, usaSignals):
		criteria.Geography = models.GeographyUSA
	case containsAny(lower, europeSignals):
		criteria.Geography = models.GeographyEurope
	}

	return criteria
}
