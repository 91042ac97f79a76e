package service

import (
	"sort"
	"strings"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
	"github.com/thefundraisingaccelerator/fundraising-copilot/repository"
)

// DefaultMaxResults caps a match result when the caller does not
const DefaultMaxResults = 20

// Scoring weights per matched dimension
const (
	stageScore     = 3
	sectorScore    = 2
	geographyScore = 2
	typeScore      = 1
)

// stageSignals maps a bucket to the tokens looked up in the query stage
// text, stageTokens to the tokens looked up in the investor's free-text
// stage field. The bucket-to-token lists overlap ("early revenue"
// appears in two buckets); that permissiveness is behavior of record
// and tightening it changes match semantics.
var (
	earlyQuerySignals  = []string{"pre-seed", "preseed", "prototype", "idea"}
	midQuerySignals    = []string{"seed", "early revenue"}
	growthQuerySignals = []string{"series a", "series-a", "scaling"}

	earlyStageTokens  = []string{"prototype", "idea", "early revenue"}
	midStageTokens    = []string{"early revenue", "prototype"}
	growthStageTokens = []string{"scaling", "growth"}
)

// MatcherService scores the static investor collection against derived
// founder attributes. Match is a pure function of the loaded dataset
// and its inputs.
type MatcherService struct {
	investorRepo *repository.InvestorRepository
}

// NewMatcherService creates a new matcher service
func NewMatcherService(investorRepo *repository.InvestorRepository) *MatcherService {
	return &MatcherService{investorRepo: investorRepo}
}

// Match returns investors ranked by score, descending. Ties keep
// dataset order (stable sort). Investors with neither a thesis nor a
// stage field are excluded regardless of score, and only investors
// with score > 0 are returned. The result is truncated to
// criteria.MaxResults (DefaultMaxResults when unset).
func (s *MatcherService) Match(criteria models.SearchCriteria) []models.ScoredInvestor {
	maxResults := criteria.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	matches := make([]models.ScoredInvestor, 0)
	for _, inv := range s.investorRepo.All() {
		score := scoreInvestor(inv, criteria)
		if score > 0 && (inv.Thesis != "" || inv.Stage != "") {
			matches = append(matches, models.ScoredInvestor{Score: score, Investor: inv})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

func scoreInvestor(inv models.Investor, criteria models.SearchCriteria) int {
	score := 0

	if criteria.Stage != "" && inv.Stage != "" {
		invStages := strings.ToLower(inv.Stage)
		queryStage := strings.ToLower(string(criteria.Stage))
		switch {
		case containsAny(queryStage, earlyQuerySignals):
			if containsAny(invStages, earlyStageTokens) {
				score += stageScore
			}
		case containsAny(queryStage, midQuerySignals):
			if containsAny(invStages, midStageTokens) {
				score += stageScore
			}
		case containsAny(queryStage, growthQuerySignals):
			if containsAny(invStages, growthStageTokens) {
				score += stageScore
			}
		}
	}

	// Keywords are not deduplicated: each entry in the list contributes
	// independently, even if repeated.
	if len(criteria.SectorKeywords) > 0 && inv.Thesis != "" {
		thesis := strings.ToLower(inv.Thesis)
		for _, keyword := range criteria.SectorKeywords {
			if strings.Contains(thesis, strings.ToLower(keyword)) {
				score += sectorScore
			}
		}
	}

	// A countries field mentioning "UK" earns the geography bonus no
	// matter what geography was asked for. Quirk of the reference
	// system, preserved deliberately.
	if criteria.Geography != "" && inv.Countries != "" {
		countries := strings.ToLower(inv.Countries)
		if strings.Contains(countries, strings.ToLower(string(criteria.Geography))) || strings.Contains(countries, "uk") {
			score += geographyScore
		}
	}

	if criteria.InvestorType != "" {
		if strings.Contains(strings.ToLower(inv.Type), strings.ToLower(criteria.InvestorType)) {
			score += typeScore
		}
	}

	return score
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
