package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

func TestClassify_InvestorSearch(t *testing.T) {
	intents := NewIntentService()

	tests := []struct {
		message string
		want    bool
	}{
		{"find investors for my healthtech startup in the UK", true},
		{"Can you recommend some VCs?", true},
		{"who should I pitch first?", true},
		{"is this angel a good fit for my company?", true},
		{"What colour should my logo be?", false},
	}

	for _, tt := range tests {
		intent := intents.Classify(tt.message, false)
		assert.Equal(t, tt.want, intent.WantsInvestorSearch, "message: %q", tt.message)
	}
}

func TestClassify_DeckReview(t *testing.T) {
	intents := NewIntentService()

	assert.True(t, intents.Classify("Please review my deck", false).WantsDeckReview)
	assert.True(t, intents.Classify("can you analyze my deck?", false).WantsDeckReview)

	// Plain mentions only count when a deck is attached
	assert.False(t, intents.Classify("thoughts on my deck?", false).WantsDeckReview)
	assert.True(t, intents.Classify("thoughts on my deck?", true).WantsDeckReview)
}

func TestDeriveCriteria_HealthtechUKScenario(t *testing.T) {
	intents := NewIntentService()

	criteria := intents.DeriveCriteria("find investors for my healthtech startup in the UK", "")

	assert.Contains(t, criteria.SectorKeywords, "health")
	assert.Contains(t, criteria.SectorKeywords, "healthtech")
	assert.Equal(t, models.GeographyUK, criteria.Geography)
	assert.Empty(t, criteria.Stage)
}

func TestDeriveCriteria_Stage(t *testing.T) {
	intents := NewIntentService()

	tests := []struct {
		message string
		want    models.Stage
	}{
		{"we are pre-seed with a working prototype", models.StagePreSeed},
		{"we have an mvp and some early revenue", models.StageSeed},
		{"preparing for a series a round", models.StageSeriesA},
		{"tell me about term sheets", ""},
	}

	for _, tt := range tests {
		criteria := intents.DeriveCriteria(tt.message, "")
		assert.Equal(t, tt.want, criteria.Stage, "message: %q", tt.message)
	}
}

func TestDeriveCriteria_Geography(t *testing.T) {
	intents := NewIntentService()

	assert.Equal(t, models.GeographyUK, intents.DeriveCriteria("we're based in London", "").Geography)
	assert.Equal(t, models.GeographyUSA, intents.DeriveCriteria("we operate in America", "").Geography)
	assert.Equal(t, models.GeographyEurope, intents.DeriveCriteria("expanding across Europe", "").Geography)
}

func TestDeriveCriteria_DeckTextContributesSectorKeywords(t *testing.T) {
	intents := NewIntentService()

	criteria := intents.DeriveCriteria(
		"find investors for my fintech startup",
		"We build fintech infrastructure for climate reporting",
	)

	// "fintech" appears in both sources and is kept twice; "climate"
	// comes from the deck alone.
	count := 0
	for _, kw := range criteria.SectorKeywords {
		if kw == "fintech" {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Contains(t, criteria.SectorKeywords, "climate")
}
