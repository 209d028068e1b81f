package oddsmonitor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
	"github.com/robokrystal/stgmonitoradar/internal/platform/resilience"
	"github.com/robokrystal/stgmonitoradar/internal/usecase"
)

const (
	defaultBaseURL = "https://hpurabsdrshnmvsndqlo.supabase.co/rest/v1/rpc/get_latest_games"
	defaultOrigin  = "https://oddsmonitor.com.br"

	maxResponseBytes = 6 << 20
)

var errOddsMonitorTransient = crerr.New("oddsmonitor transient failure")

// RawMatchInfo is the nested `match` object of one provider item.
type RawMatchInfo struct {
	Team1          string `json:"team1"`
	Team2          string `json:"team2"`
	Date           string `json:"date"`
	KickoffDisplay string `json:"kickoff_display"`
	Competition    string `json:"competition"`
}

// RawSlot is one best-odds entry as the provider ships it.
type RawSlot struct {
	Odd        float64  `json:"odd"`
	Bookmakers []string `json:"bookmakers"`
}

// RawBook is one bookmaker's line for one game.
type RawBook struct {
	Bookmaker string  `json:"bookmaker"`
	Odd1      float64 `json:"odd1"`
	OddX      float64 `json:"oddX"`
	Odd2      float64 `json:"odd2"`
	IsBest1   bool    `json:"isBest1"`
	IsBestX   bool    `json:"isBestX"`
	IsBest2   bool    `json:"isBest2"`
	Href      string  `json:"href"`
	UpdatedAt string  `json:"updated_at"`
}

// RawGame is one game as returned by the provider RPC. The `best`
// section key style varies between "1"/"X"/"2" and
// "odd1"/"oddX"/"odd2"; resolution happens in the normalizer.
type RawGame struct {
	Key   string             `json:"key"`
	Match *RawMatchInfo      `json:"match"`
	Best  map[string]RawSlot `json:"best"`
	Books []RawBook          `json:"books"`
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AnonKey        string
	Origin         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the OddsMonitor Supabase RPC endpoint. Transport
// failures are tagged transient so the caller can keep serving cached
// data; concurrent fetches collapse into one upstream call.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	anonKey        string
	origin         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	origin := strings.TrimSpace(cfg.Origin)
	if origin == "" {
		origin = defaultOrigin
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		origin:         origin,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchGames returns the raw game list for the current cycle.
func (c *Client) FetchGames(ctx context.Context) ([]RawGame, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "oddsmonitor circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do("fetch-games", func() (any, error) {
		raw, reqErr := c.executeRequest(ctx)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errOddsMonitorTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	games, err := decodeGames(raw)
	if err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return games, nil
}

func (c *Client) executeRequest(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader([]byte("{}")))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("authorization", "Bearer "+c.anonKey)
		req.Header.Set("content-type", "application/json")
		req.Header.Set("origin", c.origin)
		req.Header.Set("referer", c.origin+"/")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errOddsMonitorTransient, sanitizeSensitiveText(err.Error(), c.anonKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOddsMonitorTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsMonitorTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

// decodeGames accepts the three envelope shapes the provider has been
// observed to return: a bare array, {"data": {"items": [...]}} and
// {"items": [...]}.
func decodeGames(raw []byte) ([]RawGame, error) {
	var games []RawGame
	if err := sonic.Unmarshal(raw, &games); err == nil {
		return games, nil
	}

	var envelope struct {
		Data struct {
			Items []RawGame `json:"items"`
		} `json:"data"`
		Items []RawGame `json:"items"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data.Items) > 0 {
		return envelope.Data.Items, nil
	}
	return envelope.Items, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func sanitizeSensitiveText(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "[redacted]")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
