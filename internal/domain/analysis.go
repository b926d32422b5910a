package domain

// QueryAnalysis is advisory metadata about a search query.
type QueryAnalysis struct {
	Intent     string   `json:"intent"`
	Category   string   `json:"category"`
	Entities   []string `json:"entities"`
	Confidence int      `json:"confidence"`
}

// CaseSummary is the Summarizer output for a single case.
type CaseSummary struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"keyPoints"`
	LegalPrinciples []string `json:"legalPrinciples"`
	RelevanceScore  float64  `json:"relevanceScore"`
}

// UnavailableSummaryText is stored when summarization fails.
const UnavailableSummaryText = "Summary unavailable due to processing error."

// MaxSuggestions caps the number of query suggestions returned.
const MaxSuggestions = 5

// DefaultQueryAnalysis is substituted when query analysis fails.
func DefaultQueryAnalysis() QueryAnalysis {
	return QueryAnalysis{
		Intent:     "General legal case search",
		Category:   "general",
		Entities:   []string{},
		Confidence: 50,
	}
}

// UnavailableSummary is substituted when summarization fails.
func UnavailableSummary() CaseSummary {
	return CaseSummary{
		Summary:         UnavailableSummaryText,
		KeyPoints:       []string{},
		LegalPrinciples: []string{},
		RelevanceScore:  0,
	}
}

// SearchResult is one page of search output.
type SearchResult struct {
	Cases          []*Case
	TotalCount     int
	ProcessingTime int64
	QueryAnalysis  *QueryAnalysis
}
