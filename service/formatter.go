package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

// NoMatchesMessage is returned by FormatInvestorContext for an empty list
const NoMatchesMessage = "No matching investors found in the database."

// Bounds on text included in a model prompt
const (
	maxThesisChars      = 300
	maxGeographyChars   = 100
	maxDeckContextChars = 15000
)

// FormatInvestorContext renders matched investors as bounded text
// blocks for inclusion in a model prompt. Lines whose source field is
// absent are omitted; blocks keep input order.
func FormatInvestorContext(investors []models.Investor) string {
	if len(investors) == 0 {
		return NoMatchesMessage
	}

	blocks := make([]string, 0, len(investors))
	for _, inv := range investors {
		parts := []string{fmt.Sprintf("**%s** (%s)", inv.Name, inv.Type)}
		if inv.Stage != "" {
			parts = append(parts, "  - Stage: "+inv.Stage)
		}
		if inv.Thesis != "" {
			parts = append(parts, "  - Thesis: "+truncateWithEllipsis(inv.Thesis, maxThesisChars))
		}
		if inv.ChequeMin != "" || inv.ChequeMax != "" {
			parts = append(parts, fmt.Sprintf("  - Cheque size: %s - %s",
				chequeBound(inv.ChequeMin), chequeBound(inv.ChequeMax)))
		}
		if inv.Countries != "" {
			parts = append(parts, "  - Geography: "+truncateWithEllipsis(inv.Countries, maxGeographyChars))
		}
		if inv.Website != "" {
			parts = append(parts, "  - Website: "+inv.Website)
		}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// DeckExcerpt bounds extracted deck text before prompt inclusion.
// Truncation is silent: no marker is appended.
func DeckExcerpt(text string) string {
	return truncateRunes(text, maxDeckContextChars)
}

func chequeBound(amount models.ChequeAmount) string {
	if amount == "" {
		return "?"
	}
	return string(amount)
}

func truncateWithEllipsis(s string, max int) string {
	truncated := truncateRunes(s, max)
	if truncated != s {
		return truncated + "..."
	}
	return s
}

// truncateRunes caps a string at max code points, never splitting a
// multibyte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
