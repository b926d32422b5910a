package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Language restricts results by the presence of secondary-language text.
type Language string

const (
	LanguageEnglish   Language = "english"
	LanguageTamil     Language = "tamil"
	LanguageBilingual Language = "bilingual"
)

// IsValid reports whether l is a known language filter.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageTamil, LanguageBilingual:
		return true
	}
	return false
}

// RequiresSecondaryText reports whether the filter selects cases with Tamil text.
// Tamil and bilingual currently select the same set of cases.
func (l Language) RequiresSecondaryText() bool {
	return l == LanguageTamil || l == LanguageBilingual
}

// SearchFilters holds optional search predicates and feature toggles.
// A nil field means no constraint.
type SearchFilters struct {
	Language        *Language  `json:"language,omitempty"`
	CourtType       *string    `json:"courtType,omitempty"`
	Category        *string    `json:"category,omitempty"`
	DateFrom        *time.Time `json:"dateFrom,omitempty"`
	DateTo          *time.Time `json:"dateTo,omitempty"`
	EnableAISummary bool       `json:"enableAISummary,omitempty"`
	EnableRanking   bool       `json:"enableRanking,omitempty"`
}

// Validate checks enum values and the date range ordering.
func (f SearchFilters) Validate() error {
	if f.Language != nil && !f.Language.IsValid() {
		return ErrInvalidLanguage
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return NewDomainError(ErrCodeValidation, "dateFrom must not be after dateTo")
	}
	return nil
}

// Encode serializes the filters for the search history table.
func (f SearchFilters) Encode() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode filters: %w", err)
	}
	return string(b), nil
}

// DecodeFilters reverses SearchFilters.Encode.
func DecodeFilters(s string) (SearchFilters, error) {
	var f SearchFilters
	if s == "" {
		return f, nil
	}
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return SearchFilters{}, fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}

// DateLayout is the calendar-date form used by filters and datasets.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, NewDomainErrorWithCause(ErrCodeValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s), ErrInvalidDate)
	}
	return t, nil
}
