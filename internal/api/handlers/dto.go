package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/dataset"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
)

// CaseResponse is the wire form of a case.
type CaseResponse struct {
	ID             string     `json:"id"`
	English        string     `json:"english"`
	Tamil          *string    `json:"tamil"`
	Batch          string     `json:"batch"`
	SentenceNumber int        `json:"sentenceNumber"`
	DocID          string     `json:"docId"`
	CourtType      *string    `json:"courtType"`
	CaseCategory   *string    `json:"caseCategory"`
	DateDecided    *time.Time `json:"dateDecided"`
	Title          *string    `json:"title"`
	Summary        *string    `json:"summary"`
	AISummary      *string    `json:"aiSummary"`
	RelevanceScore int        `json:"relevanceScore"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func newCaseResponse(c *domain.Case) *CaseResponse {
	return &CaseResponse{
		ID:             c.ID,
		English:        c.English,
		Tamil:          c.Tamil,
		Batch:          c.Batch,
		SentenceNumber: c.SentenceNumber,
		DocID:          c.DocID,
		CourtType:      c.CourtType,
		CaseCategory:   c.CaseCategory,
		DateDecided:    c.DateDecided,
		Title:          c.Title,
		Summary:        c.Summary,
		AISummary:      c.AISummary,
		RelevanceScore: c.RelevanceScore,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type SearchFiltersRequest struct {
	Language        string `json:"language" validate:"omitempty,oneof=english tamil bilingual"`
	CourtType       string `json:"courtType"`
	Category        string `json:"category"`
	DateFrom        string `json:"dateFrom"`
	DateTo          string `json:"dateTo"`
	EnableAISummary bool   `json:"enableAISummary"`
	EnableRanking   bool   `json:"enableRanking"`
}

// toDomain converts the wire filters. Empty strings mean "no constraint".
func (f *SearchFiltersRequest) toDomain() (domain.SearchFilters, error) {
	var out domain.SearchFilters
	if f == nil {
		return out, nil
	}

	if f.Language != "" {
		lang := domain.Language(f.Language)
		out.Language = &lang
	}
	out.CourtType = nonEmpty(f.CourtType)
	out.Category = nonEmpty(f.Category)
	out.EnableAISummary = f.EnableAISummary
	out.EnableRanking = f.EnableRanking

	for _, d := range []struct {
		raw string
		dst **time.Time
	}{
		{f.DateFrom, &out.DateFrom},
		{f.DateTo, &out.DateTo},
	} {
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		t, err := domain.ParseDate(d.raw)
		if err != nil {
			return out, err
		}
		*d.dst = &t
	}
	return out, nil
}

type SearchRequest struct {
	Query   string                `json:"query" validate:"required"`
	Filters *SearchFiltersRequest `json:"filters"`
	Page    *int                  `json:"page" validate:"omitempty,min=1"`
	Limit   *int                  `json:"limit" validate:"omitempty,min=1,max=100"`
}

type SearchResponse struct {
	Cases          []*CaseResponse       `json:"cases"`
	TotalCount     int                   `json:"totalCount"`
	ProcessingTime int64                 `json:"processingTime"`
	QueryAnalysis  *domain.QueryAnalysis `json:"queryAnalysis,omitempty"`
}

type SuggestionsRequest struct {
	Query *string `json:"query" validate:"required"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// flexInt accepts a JSON number or a numeric string. Values that are neither
// decode to nil so the row is rejected by the importer instead of the request.
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.value = dataset.ParseSentenceNumber(s)
		return nil
	}
	f.value = dataset.ParseSentenceNumber(string(b))
	return nil
}

type ImportRowRequest struct {
	English        string  `json:"english"`
	Tamil          *string `json:"tamil"`
	Batch          string  `json:"batch"`
	SentenceNumber flexInt `json:"sentence_number"`
	DocID          string  `json:"doc_id"`
	CourtType      *string `json:"court_type"`
	CaseCategory   *string `json:"case_category"`
	DateDecided    string  `json:"date_decided"`
	Title          *string `json:"title"`
	Summary        *string `json:"summary"`
}

func (r ImportRowRequest) toDomain() domain.ImportRow {
	row := domain.ImportRow{
		English:        r.English,
		Tamil:          r.Tamil,
		Batch:          r.Batch,
		SentenceNumber: r.SentenceNumber.value,
		DocID:          r.DocID,
		CourtType:      r.CourtType,
		CaseCategory:   r.CaseCategory,
		Title:          r.Title,
		Summary:        r.Summary,
	}
	row.SetDateDecided(r.DateDecided)
	return row
}

type ImportRequest struct {
	CSVData []ImportRowRequest `json:"csvData" validate:"required"`
}

type ImportResponse struct {
	Message       string             `json:"message"`
	ImportedCount int                `json:"importedCount"`
	TotalRows     int                `json:"totalRows"`
	Failed        int                `json:"failed"`
	Errors        []service.RowError `json:"errors,omitempty"`
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
