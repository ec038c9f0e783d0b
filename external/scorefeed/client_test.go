package scorefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
}

func TestFetchWeek_MapsFeedGames(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"epl-w1-mci-che","status":"FT","kickoff_at":"2026-03-07T15:00:00Z",
			 "home":{"team_id":"eng-mci","name":"Manchester City","score":2},
			 "away":{"team_id":"eng-che","name":"Chelsea","score":0},
			 "winner_team_id":"eng-mci"},
			{"id":"epl-w1-ars-liv","status":"scheduled","kickoff_at":"2026-03-07T12:00:00Z",
			 "home":{"team_id":"eng-ars","name":"Arsenal"},
			 "away":{"team_id":"eng-liv","name":"Liverpool"}},
			{"id":"","status":"live"}
		]}`))
	})

	games, err := client.FetchWeek(context.Background(), "epl", "2025/2026", 1)
	if err != nil {
		t.Fatalf("fetch week: %v", err)
	}
	if gotPath != "/competitions/epl/games" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery == "" || gotQuery == "week=1" {
		t.Fatalf("expected season and token in query, got %q", gotQuery)
	}

	if len(games) != 2 {
		t.Fatalf("expected 2 games (row without id dropped), got %d", len(games))
	}

	first := games[0]
	if first.ID != "epl-w1-ars-liv" {
		t.Fatalf("expected earliest kickoff first, got %q", first.ID)
	}
	if first.Status != game.StatusNotStarted {
		t.Fatalf("expected scheduled mapped to not_started, got %q", first.Status)
	}
	if first.StartTime == nil || !first.StartTime.Equal(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff %v", first.StartTime)
	}

	second := games[1]
	if second.Status != game.StatusCompleted {
		t.Fatalf("expected FT mapped to completed, got %q", second.Status)
	}
	if second.HomeScore == nil || *second.HomeScore != 2 || second.AwayScore == nil || *second.AwayScore != 0 {
		t.Fatalf("unexpected scores %v %v", second.HomeScore, second.AwayScore)
	}
	if second.WinnerTeamID != "eng-mci" || second.HomeTeamID != "eng-mci" || second.AwayTeam != "Chelsea" {
		t.Fatalf("unexpected team mapping: %+v", second)
	}
}

func TestFetchWeek_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"unknown competition"}`, http.StatusNotFound)
	})

	_, err := client.FetchWeek(context.Background(), "nope", "2025/2026", 1)
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if calls != 1 {
		t.Fatalf("expected no retries on 404, got %d calls", calls)
	}
}

func TestFetchWeek_InvalidInput(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})

	if _, err := client.FetchWeek(context.Background(), " ", "2025/2026", 1); err == nil {
		t.Fatalf("expected error for blank competition code")
	}
	if _, err := client.FetchWeek(context.Background(), "epl", "2025/2026", 0); err == nil {
		t.Fatalf("expected error for week 0")
	}
}

func TestSanitizeSensitiveText_RedactsToken(t *testing.T) {
	t.Parallel()

	in := `dial failed for https://feed/v1/games?api_token=secret-token&week=1: secret-token rejected`
	out := sanitizeSensitiveText(in, "secret-token")
	if out != `dial failed for https://feed/v1/games?api_token=REDACTED&week=1: REDACTED rejected` {
		t.Fatalf("token not redacted: %q", out)
	}
}
