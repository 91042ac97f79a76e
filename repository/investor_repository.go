package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

// InvestorRepository holds the static investor dataset. The dataset is
// loaded fully into memory once and treated as read-only afterwards, so
// no locking is needed.
type InvestorRepository struct {
	investors []models.Investor
}

// NewInvestorRepository loads the investor dataset from a JSON file
func NewInvestorRepository(path string) (*InvestorRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read investor dataset: %w", err)
	}

	var investors []models.Investor
	if err := json.Unmarshal(data, &investors); err != nil {
		return nil, fmt.Errorf("failed to parse investor dataset: %w", err)
	}

	return &InvestorRepository{investors: investors}, nil
}

// All returns every investor in dataset order. Callers must not mutate
// the returned slice.
func (r *InvestorRepository) All() []models.Investor {
	return r.investors
}

// Count returns the number of loaded investors
func (r *InvestorRepository) Count() int {
	return len(r.investors)
}
