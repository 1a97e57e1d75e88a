// Package textgen drafts short texts (work descriptions, follow-up notes and
// the daily insight) with a model served by Ollama.
//
// Every call degrades to a fixed fallback string; callers never see an error.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/asservice/shiftboard/internal/api/metrics"
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
)

const (
	defaultModel     = "llama3.2"
	defaultTimeout   = 20 * time.Second
	defaultPerMinute = 30
)

// Fallback texts.
const (
	DescribeUnconfigured = "Please configure API Key to generate description."
	DescribeFailed       = "Failed to generate description."
	FollowUpUnconfigured = ""
	FollowUpFailed       = "Message generation failed."
	InsightUnconfigured  = "System ready."
	InsightFailed        = "Insights currently unavailable."
)

var errEmptyResponse = errors.New("empty model response")

// Config captures the Ollama endpoint and call limits. An empty BaseURL
// leaves the generator unconfigured.
type Config struct {
	BaseURL       string
	Model         string
	Timeout       time.Duration
	RatePerMinute int
}

// Generator implements ports.TextGenerator.
type Generator struct {
	api     *api.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	log     zerolog.Logger
}

var _ ports.TextGenerator = (*Generator)(nil)

// New builds a Generator. httpClient may be nil.
func New(cfg Config, httpClient *http.Client, log zerolog.Logger) (*Generator, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = defaultPerMinute
	}

	g := &Generator{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), 1),
		log:     log,
	}
	if cfg.BaseURL == "" {
		log.Warn().Msg("textgen: no Ollama URL configured, generated texts are disabled")
		return g, nil
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	g.api = api.NewClient(u, httpClient)
	return g, nil
}

// Configured reports whether a model endpoint is set.
func (g *Generator) Configured() bool {
	return g.api != nil
}

func (g *Generator) Describe(ctx context.Context, title, place string, slot domain.TimeSlot) string {
	prompt := fmt.Sprintf("Write a professional, concise (max 2 sentences) work description for a job titled %q taking place at %q during the %q shift. Focus on duties.",
		title, place, string(slot))
	return g.generate(ctx, "describe", prompt, DescribeUnconfigured, DescribeFailed)
}

func (g *Generator) FollowUp(ctx context.Context, workTitle, workerName string, interested bool) string {
	var prompt string
	if interested {
		prompt = fmt.Sprintf("Draft a short, encouraging confirmation message to employee %s who just expressed interest in the shift %q. Include a reminder to be on time.",
			workerName, workTitle)
	} else {
		prompt = fmt.Sprintf("Draft a short, polite acknowledgement message to employee %s who is not interested in the shift %q. Keep it professional.",
			workerName, workTitle)
	}
	return g.generate(ctx, "followup", prompt, FollowUpUnconfigured, FollowUpFailed)
}

func (g *Generator) Insight(ctx context.Context, activeWork, interested, notInterested int) string {
	prompt := fmt.Sprintf("You are a workforce manager assistant. Provide a 1-sentence strategic insight based on: %d active shifts, %d interested workers, and %d not interested workers today.",
		activeWork, interested, notInterested)
	return g.generate(ctx, "insight", prompt, InsightUnconfigured, InsightFailed)
}

func (g *Generator) generate(ctx context.Context, kind, prompt, unconfigured, failed string) string {
	if g.api == nil {
		metrics.TextGenRequestsTotal.WithLabelValues(kind, "unconfigured").Inc()
		return unconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.complete(ctx, prompt)
	if err != nil {
		metrics.TextGenRequestsTotal.WithLabelValues(kind, "fallback").Inc()
		g.log.Warn().Err(err).Str("kind", kind).Str("model", g.model).Msg("text generation failed")
		return failed
	}
	metrics.TextGenRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return text
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	stream := false
	req := &api.GenerateRequest{Model: g.model, Prompt: prompt, Stream: &stream}

	var b strings.Builder
	err := g.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		b.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
