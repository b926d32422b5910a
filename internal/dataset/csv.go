// Package dataset decodes bilingual case datasets and opens them from local
// files or S3.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cloo-solutions/lexsearch/internal/domain"
)

// Column names recognised in a dataset header. Matching ignores case and
// surrounding whitespace.
const (
	ColEnglish        = "english"
	ColTamil          = "tamil"
	ColBatch          = "batch"
	ColSentenceNumber = "sentence_number"
	ColDocID          = "doc_id"
	ColCourtType      = "court_type"
	ColCaseCategory   = "case_category"
	ColDateDecided    = "date_decided"
	ColTitle          = "title"
	ColSummary        = "summary"
)

var requiredColumns = []string{ColEnglish, ColBatch, ColSentenceNumber, ColDocID}

const utf8BOM = "\ufeff"

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("dataset is missing a required column")

// DecodeCSV reads every record of a headed CSV dataset. Records that cannot be
// parsed still produce a row; fields that fail to parse are left empty so the
// importer counts them as invalid.
func DecodeCSV(r io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ImportRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	index := headerIndex(header)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	rows := []domain.ImportRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset line %d: %w", len(rows)+2, err)
		}
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, buildRow(index, record))
	}
	return rows, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func buildRow(index map[string]int, record []string) domain.ImportRow {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := domain.ImportRow{
		English:      get(ColEnglish),
		Tamil:        optional(get(ColTamil)),
		Batch:        get(ColBatch),
		DocID:        get(ColDocID),
		CourtType:    optional(get(ColCourtType)),
		CaseCategory: optional(get(ColCaseCategory)),
		Title:        optional(get(ColTitle)),
		Summary:      optional(get(ColSummary)),
	}
	row.SentenceNumber = ParseSentenceNumber(get(ColSentenceNumber))
	row.SetDateDecided(get(ColDateDecided))
	return row
}

// ParseSentenceNumber accepts integral values, including "12.0" exports from
// spreadsheets. Anything else yields nil.
func ParseSentenceNumber(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return nil
	}
	n := int(f)
	return &n
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
