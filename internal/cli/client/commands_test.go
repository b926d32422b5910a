package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(cmds ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "lexsearch", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool("output", false, "")
	root.PersistentFlags().String("api-url", "", "")
	root.PersistentFlags().String("admin-token", "", "")
	root.AddCommand(cmds...)
	return root
}

func run(t *testing.T, srv *httptest.Server, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envAdminToken, "")

	root := newTestRoot(cmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--api-url", srv.URL))
	err := root.Execute()
	return out.String(), err
}

func TestSearchCmd(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"cases":[{"id":"c1","english":"The appeal is allowed.","docId":"D-1","relevanceScore":80}],"totalCount":1,"processingTime":12}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, SearchCmd(), "search", "land", "dispute", "--language", "tamil", "--ranking", "-n", "5")
	require.NoError(t, err)

	assert.Equal(t, "land dispute", got["query"])
	assert.Equal(t, float64(5), got["limit"])
	assert.Equal(t, map[string]any{"language": "tamil", "enableRanking": true}, got["filters"])

	assert.Contains(t, out, "Found 1 cases (page 1, 12ms)")
	assert.Contains(t, out, "1. D-1 (80)")
	assert.Contains(t, out, "The appeal is allowed.")
	assert.Contains(t, out, "ID: c1")
}

func TestSearchCmd_NoFiltersOmitted(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"cases":[],"totalCount":0,"processingTime":1}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, SearchCmd(), "search", "nothing")
	require.NoError(t, err)
	assert.NotContains(t, got, "filters")
	assert.Contains(t, out, "No cases found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cases":[],"totalCount":0,"processingTime":3,"queryAnalysis":{"intent":"search","category":"civil","entities":[],"confidence":70}}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, SearchCmd(), "search", "q", "--output")
	require.NoError(t, err)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.QueryAnalysis)
	assert.Equal(t, "civil", resp.QueryAnalysis.Category)
}

func TestSearchCmd_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation_error","message":"limit must be at most 100"}`))
	}))
	defer srv.Close()

	_, err := run(t, srv, SearchCmd(), "search", "q", "-n", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be at most 100")
}

func TestSuggestCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/suggestions", r.URL.Path)
		w.Write([]byte(`{"suggestions":["land acquisition","land revenue"]}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, SuggestCmd(), "suggest", "land")
	require.NoError(t, err)
	assert.Equal(t, "land acquisition\nland revenue\n", out)
}

func TestCaseCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/abc", r.URL.Path)
		w.Write([]byte(`{"id":"abc","english":"Petition dismissed.","tamil":"மனு தள்ளுபடி.","batch":"b1","sentenceNumber":3,"docId":"D-9","courtType":"High Court","dateDecided":"2021-03-04T00:00:00Z","aiSummary":"Dismissed.","relevanceScore":55}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, CaseCmd(), "case", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Document: D-9 (batch b1, sentence 3)")
	assert.Contains(t, out, "Court:    High Court")
	assert.Contains(t, out, "Decided:  2021-03-04")
	assert.Contains(t, out, "மனு தள்ளுபடி.")
	assert.Contains(t, out, "AI summary (relevance 55):\nDismissed.")
}

func TestStatsCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalCases":3,"languagesSupported":2,"courtJurisdictions":1,"lastUpdated":"2024-01-01T10:00:00Z","categoriesCount":{"property":2,"criminal":1}}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, StatsCmd(), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total cases:         3")
	assert.Contains(t, out, "Last updated:        2024-01-01 10:00")
	assert.Less(t, bytes.Index([]byte(out), []byte("criminal")), bytes.Index([]byte(out), []byte("property")))
}

func TestImportCmd(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"english,tamil,batch,sentence_number,doc_id,date_decided\n"+
			"Appeal allowed.,,b1,1,D-1,2020-05-06\n"+
			"Missing doc.,,b1,2,,\n"), 0o600))

	var payload struct {
		CSVData []map[string]any `json:"csvData"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/import-dataset", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{"message":"Successfully imported 1 out of 2 cases","importedCount":1,"totalRows":2,"failed":1,"errors":[{"row":2,"reason":"doc_id is required"}]}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, ImportCmd(), "import", csvPath, "--admin-token", "tok")
	require.NoError(t, err)

	require.Len(t, payload.CSVData, 2)
	assert.Equal(t, "D-1", payload.CSVData[0]["doc_id"])
	assert.Equal(t, float64(1), payload.CSVData[0]["sentence_number"])
	assert.Equal(t, "2020-05-06", payload.CSVData[0]["date_decided"])
	assert.NotContains(t, payload.CSVData[0], "tamil")

	assert.Contains(t, out, "Successfully imported 1 out of 2 cases")
	assert.Contains(t, out, "row 2: doc_id is required")
}

func TestImportCmd_MissingFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := run(t, srv, ImportCmd(), "import", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open dataset")
}
