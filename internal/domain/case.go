package domain

import (
	"strings"
	"time"
)

// Relevance score bounds for enriched cases.
const (
	MinRelevanceScore = 0
	MaxRelevanceScore = 100
)

// Case is a single searchable legal-text record.
type Case struct {
	ID             string
	English        string
	Tamil          *string
	Batch          string
	SentenceNumber int
	DocID          string
	CourtType      *string
	CaseCategory   *string
	DateDecided    *time.Time
	Title          *string
	Summary        *string
	AISummary      *string
	RelevanceScore int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCase creates a Case with the required fields set and timestamps initialised.
func NewCase(id, english, batch string, sentenceNumber int, docID string) *Case {
	now := time.Now().UTC()
	return &Case{
		ID:             id,
		English:        english,
		Batch:          batch,
		SentenceNumber: sentenceNumber,
		DocID:          docID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsBilingual reports whether the case carries non-empty Tamil text.
func (c *Case) IsBilingual() bool {
	return c.Tamil != nil && *c.Tamil != ""
}

// HasAISummary reports whether enrichment has already run for the case.
func (c *Case) HasAISummary() bool {
	return c.AISummary != nil
}

// ApplySummary sets the derived summary fields in memory.
func (c *Case) ApplySummary(summary string, score int, at time.Time) {
	c.AISummary = &summary
	c.RelevanceScore = ClampScore(score)
	c.UpdatedAt = at
}

// Validate checks the fields every stored case must carry.
func (c *Case) Validate() error {
	if strings.TrimSpace(c.English) == "" {
		return NewDomainError(ErrCodeValidation, "english text is required")
	}
	if strings.TrimSpace(c.Batch) == "" {
		return NewDomainError(ErrCodeValidation, "batch is required")
	}
	if strings.TrimSpace(c.DocID) == "" {
		return NewDomainError(ErrCodeValidation, "doc_id is required")
	}
	if c.RelevanceScore < MinRelevanceScore || c.RelevanceScore > MaxRelevanceScore {
		return NewDomainError(ErrCodeValidation, "relevance score out of range")
	}
	return nil
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < MinRelevanceScore {
		return MinRelevanceScore
	}
	if score > MaxRelevanceScore {
		return MaxRelevanceScore
	}
	return score
}
