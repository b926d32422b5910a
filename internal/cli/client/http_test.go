package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_PostDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search/suggestions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"suggestions":["land dispute"]}`))
	}))
	defer srv.Close()

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	err := NewAPIClientWithConfig(srv.URL+"/", "").Post(context.Background(), "/search/suggestions", map[string]string{"query": "land"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"land dispute"}, out.Suggestions)
}

func TestAPIClient_SendsAdminToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := NewAPIClientWithConfig(srv.URL, "s3cret").Get(context.Background(), "/stats", nil)
	require.NoError(t, err)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not_found","message":"case not found"}`))
	}))
	defer srv.Close()

	err := NewAPIClientWithConfig(srv.URL, "").Get(context.Background(), "/cases/x", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "case not found", apiErr.Message)
	assert.Equal(t, "API error (404 not_found): case not found", apiErr.Error())
}

func TestAPIClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewAPIClientWithConfig(srv.URL, "").Get(context.Background(), "/stats", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestNewAPIClientWithCmd_Cascade(t *testing.T) {
	t.Setenv(envAPIURL, "http://env:9000")
	t.Setenv(envAdminToken, "env-token")

	c := NewAPIClientWithCmd(nil)
	assert.Equal(t, "http://env:9000", c.baseURL)
	assert.Equal(t, "env-token", c.adminToken)

	cmd := &cobra.Command{Use: "stats"}
	cmd.Flags().String("api-url", "", "")
	cmd.Flags().String("admin-token", "", "")
	require.NoError(t, cmd.Flags().Set("api-url", "http://flag:1"))
	c = NewAPIClientWithCmd(cmd)
	assert.Equal(t, "http://flag:1", c.baseURL)
	assert.Equal(t, "env-token", c.adminToken)
}

func TestNewAPIClientWithCmd_Default(t *testing.T) {
	t.Setenv(envAPIURL, "")
	t.Setenv(envAdminToken, "")

	c := NewAPIClientWithCmd(nil)
	assert.Equal(t, defaultAPIURL, c.baseURL)
	assert.Empty(t, c.adminToken)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "நீதிமன்...", truncate("நீதிமன்றம் தீர்ப்பு", 10))
}
