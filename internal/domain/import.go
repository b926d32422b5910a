package domain

import (
	"fmt"
	"strings"
	"time"
)

// ImportRow is one dataset record before it becomes a Case.
type ImportRow struct {
	English        string
	Tamil          *string
	Batch          string
	SentenceNumber *int
	DocID          string
	CourtType      *string
	CaseCategory   *string
	DateDecided    *time.Time
	Title          *string
	Summary        *string

	invalidDate string
}

// SetDateDecided parses s into DateDecided. An unparseable value is kept so
// Validate can reject the row.
func (r *ImportRow) SetDateDecided(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	d, err := ParseDate(s)
	if err != nil {
		r.invalidDate = s
		return
	}
	r.DateDecided = &d
}

// DateDecidedText returns the date as YYYY-MM-DD, or the unparsed input.
func (r ImportRow) DateDecidedText() string {
	if r.DateDecided != nil {
		return r.DateDecided.Format(DateLayout)
	}
	return r.invalidDate
}

// Validate reports the first missing required field or malformed value.
func (r ImportRow) Validate() error {
	switch {
	case strings.TrimSpace(r.English) == "":
		return NewDomainErrorWithCause(ErrCodeValidation, "english is required", ErrMissingRequiredField)
	case strings.TrimSpace(r.Batch) == "":
		return NewDomainErrorWithCause(ErrCodeValidation, "batch is required", ErrMissingRequiredField)
	case r.SentenceNumber == nil:
		return NewDomainErrorWithCause(ErrCodeValidation, "sentence_number is required", ErrMissingRequiredField)
	case strings.TrimSpace(r.DocID) == "":
		return NewDomainErrorWithCause(ErrCodeValidation, "doc_id is required", ErrMissingRequiredField)
	case r.invalidDate != "":
		return NewDomainErrorWithCause(ErrCodeValidation, fmt.Sprintf("date_decided %q is not a date, expected YYYY-MM-DD", r.invalidDate), ErrInvalidDate)
	}
	return nil
}

// ToCase builds a new Case from a validated row.
func (r ImportRow) ToCase(id string) *Case {
	c := NewCase(id, r.English, strings.TrimSpace(r.Batch), *r.SentenceNumber, strings.TrimSpace(r.DocID))
	c.Tamil = blankToNil(r.Tamil)
	c.CourtType = blankToNil(r.CourtType)
	c.CaseCategory = blankToNil(r.CaseCategory)
	c.DateDecided = r.DateDecided
	c.Title = blankToNil(r.Title)
	c.Summary = blankToNil(r.Summary)
	return c
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
