package client

import "time"

// Case mirrors the server's case representation.
type Case struct {
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

type SearchFilters struct {
	Language        string `json:"language,omitempty"`
	CourtType       string `json:"courtType,omitempty"`
	Category        string `json:"category,omitempty"`
	DateFrom        string `json:"dateFrom,omitempty"`
	DateTo          string `json:"dateTo,omitempty"`
	EnableAISummary bool   `json:"enableAISummary,omitempty"`
	EnableRanking   bool   `json:"enableRanking,omitempty"`
}

type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
	Page    int            `json:"page,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

type QueryAnalysis struct {
	Intent     string   `json:"intent"`
	Category   string   `json:"category"`
	Entities   []string `json:"entities"`
	Confidence int      `json:"confidence"`
}

type SearchResponse struct {
	Cases          []Case         `json:"cases"`
	TotalCount     int            `json:"totalCount"`
	ProcessingTime int64          `json:"processingTime"`
	QueryAnalysis  *QueryAnalysis `json:"queryAnalysis,omitempty"`
}

type Stats struct {
	TotalCases         int            `json:"totalCases"`
	LanguagesSupported int            `json:"languagesSupported"`
	CourtJurisdictions int            `json:"courtJurisdictions"`
	LastUpdated        time.Time      `json:"lastUpdated"`
	CategoriesCount    map[string]int `json:"categoriesCount"`
}

// ImportRow uses the dataset's snake_case column names.
type ImportRow struct {
	English        string  `json:"english"`
	Tamil          *string `json:"tamil,omitempty"`
	Batch          string  `json:"batch"`
	SentenceNumber *int    `json:"sentence_number"`
	DocID          string  `json:"doc_id"`
	CourtType      *string `json:"court_type,omitempty"`
	CaseCategory   *string `json:"case_category,omitempty"`
	DateDecided    string  `json:"date_decided,omitempty"`
	Title          *string `json:"title,omitempty"`
	Summary        *string `json:"summary,omitempty"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	DocID  string `json:"docId,omitempty"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Message       string           `json:"message"`
	ImportedCount int              `json:"importedCount"`
	TotalRows     int              `json:"totalRows"`
	Failed        int              `json:"failed"`
	Errors        []ImportRowError `json:"errors,omitempty"`
}
