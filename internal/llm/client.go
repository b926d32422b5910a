package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/metrics"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

const (
	DefaultSummaryModel  = "gemini-2.5-pro"
	DefaultAnalysisModel = "gemini-2.5-flash"
	DefaultTimeout       = 30 * time.Second
)

const (
	opSummarize = "summarize"
	opAnalyze   = "analyze"
	opSuggest   = "suggest"
)

type Config struct {
	APIKey        string
	BaseURL       string
	SummaryModel  string
	AnalysisModel string
	Timeout       time.Duration
}

// Client turns chat completions into domain values.
type Client struct {
	api           ChatAPI
	summaryModel  string
	analysisModel string
	timeout       time.Duration
	logger        *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return newClient(NewOpenAIAdapter(cfg.APIKey, cfg.BaseURL), cfg, logger), nil
}

func newClient(api ChatAPI, cfg Config, logger *zap.Logger) *Client {
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = DefaultSummaryModel
	}
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = DefaultAnalysisModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:           api,
		summaryModel:  cfg.SummaryModel,
		analysisModel: cfg.AnalysisModel,
		timeout:       cfg.Timeout,
		logger:        logger.Named("llm"),
	}
}

// Summarize returns a structured summary of a case, or the unavailable
// sentinel when the model cannot be reached or answers with invalid JSON.
func (c *Client) Summarize(ctx context.Context, english string, tamil *string) domain.CaseSummary {
	var out domain.CaseSummary
	if err := c.complete(ctx, opSummarize, c.summaryModel, summarizeSystemPrompt, summarizePrompt(english, tamil), &out); err != nil {
		return domain.UnavailableSummary()
	}

	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	if out.LegalPrinciples == nil {
		out.LegalPrinciples = []string{}
	}
	out.RelevanceScore = clamp(out.RelevanceScore)
	return out
}

// analysis mirrors domain.QueryAnalysis with a fractional confidence, which
// models sometimes return.
type analysis struct {
	Intent     string   `json:"intent"`
	Category   string   `json:"category"`
	Entities   []string `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// AnalyzeQuery classifies a search query. Failures yield the default analysis.
func (c *Client) AnalyzeQuery(ctx context.Context, q string) domain.QueryAnalysis {
	var out analysis
	if err := c.complete(ctx, opAnalyze, c.analysisModel, analyzeSystemPrompt, q, &out); err != nil {
		return domain.DefaultQueryAnalysis()
	}

	result := domain.DefaultQueryAnalysis()
	if s := strings.TrimSpace(out.Intent); s != "" {
		result.Intent = s
	}
	if s := strings.TrimSpace(out.Category); s != "" {
		result.Category = s
	}
	if out.Entities != nil {
		result.Entities = out.Entities
	}
	result.Confidence = int(math.Round(clamp(out.Confidence)))
	return result
}

type suggestions struct {
	Suggestions []string `json:"suggestions"`
}

// UnmarshalJSON also accepts a bare array, which some models return despite
// the requested object shape.
func (s *suggestions) UnmarshalJSON(b []byte) error {
	if trimmed := strings.TrimSpace(string(b)); strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(b, &s.Suggestions)
	}
	type plain suggestions
	return json.Unmarshal(b, (*plain)(s))
}

// Suggest proposes up to five complete queries for a partial one.
// Failures yield an empty slice.
func (c *Client) Suggest(ctx context.Context, partial string) []string {
	var out suggestions
	if err := c.complete(ctx, opSuggest, c.analysisModel, suggestSystemPrompt, suggestPrompt(partial), &out); err != nil {
		return []string{}
	}

	result := make([]string, 0, domain.MaxSuggestions)
	for _, s := range out.Suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		result = append(result, s)
		if len(result) == domain.MaxSuggestions {
			break
		}
	}
	return result
}

func (c *Client) complete(ctx context.Context, op, model, system, prompt string, out any) error {
	ctx, span := telemetry.StartSpan(ctx, "llm."+op, telemetry.SpanAttributes{Model: model, Operation: op})
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	content, err := c.api.CompleteJSON(ctx, model, system, prompt)
	metrics.LLMRequestDuration.WithLabelValues(op, model).Observe(time.Since(start).Seconds())

	if err == nil {
		err = decodeJSON(content, out)
	}
	if err != nil {
		reason := failureReason(err)
		metrics.LLMRequestsTotal.WithLabelValues(op, model, "error").Inc()
		metrics.LLMDegradedTotal.WithLabelValues(op, reason).Inc()
		telemetry.AddBreadcrumb(ctx, "llm", fmt.Sprintf("%s degraded: %s", op, reason))
		c.logger.Warn("llm call failed, using fallback",
			zap.String("operation", op),
			zap.String("model", model),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return err
	}

	metrics.LLMRequestsTotal.WithLabelValues(op, model, "ok").Inc()
	return nil
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "invalid model output: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// decodeJSON tolerates a Markdown code fence around the payload.
func decodeJSON(content string, out any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if content == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &decodeError{err: err}
	}
	return nil
}

func failureReason(err error) string {
	var de *decodeError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	case errors.As(err, &de):
		return "malformed"
	default:
		return "transport"
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < domain.MinRelevanceScore {
		return domain.MinRelevanceScore
	}
	if v > domain.MaxRelevanceScore {
		return domain.MaxRelevanceScore
	}
	return v
}
