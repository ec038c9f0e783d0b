package scorefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
	"github.com/riskibarqy/survivor-league/internal/platform/resilience"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

const defaultBaseURL = "https://api.scorefeed.example.com/v1"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errScoreFeedTransient = crerr.New("score feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the hosted score feed and maps its payloads into domain
// games. It satisfies usecase.ScoreFeed.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.ScoreFeed = (*Client)(nil)

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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type weekEnvelope struct {
	Data []feedGame `json:"data"`
}

type feedGame struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	KickoffAt    string       `json:"kickoff_at"`
	Home         feedTeamSide `json:"home"`
	Away         feedTeamSide `json:"away"`
	WinnerTeamID string       `json:"winner_team_id"`
}

type feedTeamSide struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Score  *int   `json:"score"`
}

// FetchWeek pulls one week of games for a competition season. Rows missing a
// feed id are dropped; everything else is mapped as-is and left to the
// ingestion layer to merge.
func (c *Client) FetchWeek(ctx context.Context, competitionCode, season string, week int) ([]game.Game, error) {
	competitionCode = strings.TrimSpace(competitionCode)
	season = strings.TrimSpace(season)
	if competitionCode == "" {
		return nil, fmt.Errorf("competition code is required")
	}
	if week < 1 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	path := fmt.Sprintf("/competitions/%s/games", url.PathEscape(competitionCode))
	query := map[string]string{
		"week": fmt.Sprintf("%d", week),
	}
	if season != "" {
		query["season"] = season
	}

	var envelope weekEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch week competition=%s week=%d: %w", competitionCode, week, err)
	}

	out := make([]game.Game, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		out = append(out, mapFeedGame(item, week))
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].StartTime, out[j].StartTime
		if left != nil && right != nil && !left.Equal(*right) {
			return left.Before(*right)
		}
		if (left == nil) != (right == nil) {
			return right == nil
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func mapFeedGame(item feedGame, week int) game.Game {
	mapped := game.Game{
		ID:           strings.TrimSpace(item.ID),
		Week:         week,
		HomeTeam:     strings.TrimSpace(item.Home.Name),
		AwayTeam:     strings.TrimSpace(item.Away.Name),
		HomeTeamID:   strings.TrimSpace(item.Home.TeamID),
		AwayTeamID:   strings.TrimSpace(item.Away.TeamID),
		HomeScore:    item.Home.Score,
		AwayScore:    item.Away.Score,
		Status:       mapFeedStatus(item.Status),
		WinnerTeamID: strings.TrimSpace(item.WinnerTeamID),
	}
	if parsed := parseFeedTime(item.KickoffAt); parsed != nil {
		mapped.StartTime = parsed
	}
	return mapped
}

// mapFeedStatus folds the feed's state vocabulary into the three stored
// statuses. Unknown states are treated as not started; time-based display
// logic covers games the feed is slow to flip.
func mapFeedStatus(raw string) game.Status {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "live", value == "in_play", value == "in_progress",
		strings.Contains(value, "half"), value == "ht", value == "paused":
		return game.StatusInProgress
	case value == "finished", value == "full_time", value == "ft",
		value == "completed", value == "aet", strings.Contains(value, "pen"):
		return game.StatusCompleted
	default:
		return game.StatusNotStarted
	}
}

func parseFeedTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.token != "" {
		values.Set("api_token", c.token)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScoreFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errScoreFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errScoreFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errScoreFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "score feed request failed", "url", redactFeedURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactFeedURL(fullURL string) string {
	return apiTokenParamRegex.ReplaceAllString(fullURL, "api_token=REDACTED")
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return statusCode >= 500
	}
}

func abbreviateBody(raw []byte) string {
	value := strings.TrimSpace(string(raw))
	if len(value) > 256 {
		return value[:256] + "..."
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
