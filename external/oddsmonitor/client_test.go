package oddsmonitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
	"github.com/robokrystal/stgmonitoradar/internal/platform/resilience"
	"github.com/robokrystal/stgmonitoradar/internal/usecase"
)

const sampleGames = `[
	{
		"key": "Flamengo x Palmeiras",
		"match": {"team1": "Flamengo", "team2": "Palmeiras", "date": "2026-08-29", "kickoff_display": "21:30", "competition": "Brasil - Serie A"},
		"best": {"1": {"odd": 2.1, "bookmakers": ["bet365"]}, "X": {"odd": 3.2, "bookmakers": ["superbet"]}, "2": {"odd": 4.0, "bookmakers": ["betano"]}},
		"books": [{"bookmaker": "bet365", "odd1": 2.1, "oddX": 3.0, "odd2": 4.0, "isBest1": true}]
	}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		AnonKey:    "test-anon-key",
		Origin:     "https://origin.test",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
	return client, server
}

func TestFetchGames_BareArrayAndHeaders(t *testing.T) {
	t.Parallel()

	var sawHeaders atomic.Bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost &&
			r.Header.Get("apikey") == "test-anon-key" &&
			r.Header.Get("Authorization") == "Bearer test-anon-key" &&
			r.Header.Get("Origin") == "https://origin.test" {
			sawHeaders.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleGames))
	}, 0)

	games, err := client.FetchGames(context.Background())
	if err != nil {
		t.Fatalf("fetch games: %v", err)
	}
	if !sawHeaders.Load() {
		t.Fatalf("expected the supabase auth headers on the request")
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Key != "Flamengo x Palmeiras" {
		t.Fatalf("unexpected key %q", games[0].Key)
	}
	if games[0].Match == nil || games[0].Match.Team1 != "Flamengo" {
		t.Fatalf("unexpected match section: %+v", games[0].Match)
	}
	if len(games[0].Best) != 3 {
		t.Fatalf("expected 3 best slots, got %d", len(games[0].Best))
	}
}

func TestFetchGames_NestedEnvelopes(t *testing.T) {
	t.Parallel()

	envelopes := []string{
		`{"data": {"items": ` + sampleGames + `}}`,
		`{"items": ` + sampleGames + `}`,
	}
	for _, payload := range envelopes {
		payload := payload
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(payload))
		}, 0)

		games, err := client.FetchGames(context.Background())
		if err != nil {
			t.Fatalf("fetch games with envelope: %v", err)
		}
		if len(games) != 1 {
			t.Fatalf("expected 1 game from envelope, got %d", len(games))
		}
	}
}

func TestFetchGames_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleGames))
	}, 1)

	games, err := client.FetchGames(context.Background())
	if err != nil {
		t.Fatalf("fetch games: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game after retry, got %d", len(games))
	}
}

func TestFetchGames_ClientErrorFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "bad key"}`))
	}, 2)

	_, err := client.FetchGames(context.Background())
	if err == nil {
		t.Fatalf("expected an error for status 401")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries on a client error, got %d calls", calls.Load())
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("expected the status in the error, got %v", err)
	}
}

func TestFetchGames_CircuitBreakerRejectsWhenOpen(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		AnonKey: "test-anon-key",
		Timeout: 5 * time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchGames(context.Background()); err == nil {
		t.Fatalf("expected the first fetch to fail")
	}

	_, err := client.FetchGames(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from an open breaker, got %v", err)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	out := sanitizeSensitiveText("dial failed for key secret-token", "secret-token")
	if strings.Contains(out, "secret-token") {
		t.Fatalf("expected the key to be redacted, got %q", out)
	}
	if !strings.Contains(out, "[redacted]") {
		t.Fatalf("expected the redaction marker, got %q", out)
	}
}

func TestDecodeGames_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := decodeGames([]byte("not json")); err == nil {
		t.Fatalf("expected a decode error")
	}
}
