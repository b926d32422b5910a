package domain

import "time"

// SearchHistoryEntry records one executed search. Entries are never read back.
type SearchHistoryEntry struct {
	ID             string
	Query          string
	Filters        string
	ResultCount    int
	ProcessingTime int64
	CreatedAt      time.Time
}

// DatabaseStats summarizes the case collection.
type DatabaseStats struct {
	TotalCases         int            `json:"totalCases"`
	LanguagesSupported int            `json:"languagesSupported"`
	CourtJurisdictions int            `json:"courtJurisdictions"`
	LastUpdated        time.Time      `json:"lastUpdated"`
	CategoriesCount    map[string]int `json:"categoriesCount"`
}

// UncategorizedBucket collects cases without a category in stats.
const UncategorizedBucket = "uncategorized"
