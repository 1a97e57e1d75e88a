package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/asservice/shiftboard/internal/core/domain"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newGenerator(t *testing.T, srv *httptest.Server) *Generator {
	t.Helper()
	g, err := New(Config{BaseURL: srv.URL, Model: "m", Timeout: 2 * time.Second, RatePerMinute: 6000}, srv.Client(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGenerator_Unconfigured(t *testing.T) {
	g, err := New(Config{}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if g.Configured() {
		t.Fatalf("expected unconfigured generator")
	}
	if got := g.Describe(ctx, "a", "b", domain.SlotNoon); got != DescribeUnconfigured {
		t.Fatalf("unexpected describe: %q", got)
	}
	if got := g.FollowUp(ctx, "a", "b", true); got != "" {
		t.Fatalf("unexpected follow-up: %q", got)
	}
	if got := g.Insight(ctx, 1, 2, 3); got != InsightUnconfigured {
		t.Fatalf("unexpected insight: %q", got)
	}
}

func TestGenerator_Describe(t *testing.T) {
	var prompt string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		prompt = body.Prompt
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"model": body.Model, "response": "  Set up tables.  ", "done": true})
	})

	got := newGenerator(t, srv).Describe(context.Background(), "Setup", "Hall", domain.SlotMorning)
	if got != "Set up tables." {
		t.Fatalf("unexpected text: %q", got)
	}
	if !strings.Contains(prompt, `job titled "Setup" taking place at "Hall" during the "Morning" shift`) {
		t.Fatalf("unexpected prompt: %s", prompt)
	}
}

func TestGenerator_FallbackOnServerError(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	g := newGenerator(t, srv)
	ctx := context.Background()

	if got := g.FollowUp(ctx, "Setup", "Jane", false); got != FollowUpFailed {
		t.Fatalf("unexpected follow-up: %q", got)
	}
	if got := g.Insight(ctx, 2, 1, 0); got != InsightFailed {
		t.Fatalf("unexpected insight: %q", got)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestGenerator_FallbackOnEmptyResponse(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "   ", "done": true})
	})

	if got := newGenerator(t, srv).Describe(context.Background(), "a", "b", domain.SlotNight); got != DescribeFailed {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "not a url"}, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for invalid url")
	}
}
