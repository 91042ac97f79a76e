package models

import (
	"encoding/json"
	"strconv"
)

// Stage represents a founder's fundraising stage
type Stage string

const (
	StagePreSeed Stage = "pre-seed"
	StageSeed    Stage = "seed"
	StageSeriesA Stage = "series-a"
)

// Geography represents a coarse investor geography bucket
type Geography string

const (
	GeographyUK     Geography = "UK"
	GeographyUSA    Geography = "USA"
	GeographyEurope Geography = "Europe"
)

// ChequeAmount holds one bound of an investor's cheque range.
// The dataset mixes numeric and free-text values ("£50k", 50000),
// so both JSON forms decode into the same string representation.
type ChequeAmount string

// UnmarshalJSON accepts a JSON string or number
func (c *ChequeAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ChequeAmount(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ChequeAmount(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Investor represents one record from the static investor dataset.
// The collection is loaded once at startup and never mutated.
type Investor struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Stage     string       `json:"stage,omitempty"`
	Thesis    string       `json:"thesis,omitempty"`
	Countries string       `json:"countries,omitempty"`
	ChequeMin ChequeAmount `json:"cheque_min,omitempty"`
	ChequeMax ChequeAmount `json:"cheque_max,omitempty"`
	Website   string       `json:"website,omitempty"`
}

// SearchCriteria holds the founder attributes derived from one turn.
// Constructed per request, consumed immediately, then discarded.
type SearchCriteria struct {
	Stage          Stage
	SectorKeywords []string
	Geography      Geography
	InvestorType   string
	MaxResults     int
}

// ScoredInvestor pairs an investor with its match score
type ScoredInvestor struct {
	Score    int      `json:"score"`
	Investor Investor `json:"investor"`
}
