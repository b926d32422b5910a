//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/api/handlers"
	"github.com/cloo-solutions/lexsearch/internal/repository"
	"github.com/cloo-solutions/lexsearch/internal/server"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/cloo-solutions/lexsearch/internal/storage"
	"github.com/cloo-solutions/lexsearch/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	adminToken  = "e2e-admin-token"
	s3Creds     = "rustfsadmin"
	s3Bucket    = "e2e-datasets"
	maxBodySize = 10 << 20
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	RustFSC      *testutil.RustFSContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	S3Client     *storage.S3Client
	BinaryDir    string
	HTTPClient   *http.Client
}

// SetupE2EEnv starts PostgreSQL, RustFS and an API server without LLM features.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	s3C := testutil.NewRustFSContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC)

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        s3C.Endpoint(),
		Region:          "us-east-1",
		AccessKeyID:     s3Creds,
		SecretAccessKey: s3Creds,
		Bucket:          s3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 client: %v", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		RustFSC:      s3C,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		S3Client:     s3Client,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.RustFSC != nil {
		e.RustFSC.Terminate(e.Ctx)
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// Reset empties every table between subtests.
func (e *E2ETestEnv) Reset() {
	if err := testutil.TruncateAll(e.Ctx, e.Pool); err != nil {
		e.T.Fatalf("failed to reset database: %v", err)
	}
}

// Import posts rows to the admin import endpoint and fails the test on error.
func (e *E2ETestEnv) Import(rows ...map[string]any) ImportResult {
	var out ImportResult
	status, err := e.Do(http.MethodPost, "/admin/import-dataset", map[string]any{"csvData": rows}, adminToken, &out)
	if err != nil {
		e.T.Fatalf("import failed: %v", err)
	}
	if status != http.StatusOK {
		e.T.Fatalf("import returned %d", status)
	}
	return out
}

// BuildBinaries builds the lexsearch and lexsearchd binaries
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "lexsearch-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	for _, name := range []string{"lexsearchd", "lexsearch"} {
		cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, name), "./cmd/"+name)
		cmd.Dir = "../.."
		if out, err := cmd.CombinedOutput(); err != nil {
			e.T.Fatalf("failed to build %s: %v\n%s", name, err, out)
		}
	}
}

// RunLexsearch runs the client CLI against the test server.
func (e *E2ETestEnv) RunLexsearch(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "lexsearch"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"LEXSEARCH_API_URL="+e.ServerURL,
		"LEXSEARCH_ADMIN_TOKEN="+adminToken,
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// RunLexsearchd runs the daemon CLI against the test containers.
func (e *E2ETestEnv) RunLexsearchd(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "lexsearchd"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"LEXSEARCH_DATABASE_URL="+e.PostgresC.ConnectionString(),
		"LEXSEARCH_ENVIRONMENT=test",
		"LEXSEARCH_LOG_LEVEL=error",
		"LEXSEARCH_LLM_API_KEY=",
		"LEXSEARCH_S3_ENDPOINT="+e.RustFSC.Endpoint(),
		"LEXSEARCH_S3_ACCESS_KEY_ID="+s3Creds,
		"LEXSEARCH_S3_SECRET_ACCESS_KEY="+s3Creds,
		"LEXSEARCH_S3_BUCKET="+s3Bucket,
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Do performs a JSON request and decodes the response body into out.
// Non-2xx responses are returned as a status without error.
func (e *E2ETestEnv) Do(method, path string, body any, token string, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)
		}
	}
	return resp.StatusCode, nil
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string, out any) (int, error) {
	return e.Do(http.MethodGet, path, nil, "", out)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body, out any) (int, error) {
	return e.Do(http.MethodPost, path, body, "", out)
}

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CaseBody struct {
	ID             string  `json:"id"`
	English        string  `json:"english"`
	Tamil          *string `json:"tamil"`
	DocID          string  `json:"docId"`
	CourtType      *string `json:"courtType"`
	CaseCategory   *string `json:"caseCategory"`
	AISummary      *string `json:"aiSummary"`
	RelevanceScore int     `json:"relevanceScore"`
}

type SearchBody struct {
	Cases          []CaseBody `json:"cases"`
	TotalCount     int        `json:"totalCount"`
	ProcessingTime int64      `json:"processingTime"`
	QueryAnalysis  *struct {
		Intent     string `json:"intent"`
		Category   string `json:"category"`
		Confidence int    `json:"confidence"`
	} `json:"queryAnalysis"`
}

type ImportResult struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount"`
	TotalRows     int    `json:"totalRows"`
	Failed        int    `json:"failed"`
	Errors        []struct {
		Row    int    `json:"row"`
		Reason string `json:"reason"`
	} `json:"errors"`
}

func startServer(t *testing.T, pool *pgxpool.Pool, port int) (string, func()) {
	logger := zap.NewNop()

	caseRepo := repository.NewCaseRepository(pool)
	historyRepo := repository.NewSearchHistoryRepository(pool)

	router := server.NewRouter(server.RouterConfig{
		Logger:        logger,
		DB:            pool,
		AdminToken:    adminToken,
		MaxBodyBytes:  maxBodySize,
		SearchHandler: handlers.NewSearchHandler(service.NewSearchService(caseRepo, historyRepo, nil, nil, nil, logger)),
		CaseHandler:   handlers.NewCaseHandler(service.NewCaseService(caseRepo, nil, logger)),
		AdminHandler:  handlers.NewAdminHandler(service.NewImportService(caseRepo, logger)),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
