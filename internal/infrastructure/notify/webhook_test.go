package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/survivor-league/internal/platform/logging"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

func TestWebhookNotifier_WeekSettled(t *testing.T) {
	var gotSecret string
	var gotEvent usecase.WeekSettledEvent

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Webhook-Secret")
		raw, _ := io.ReadAll(r.Body)
		if err := sonic.Unmarshal(raw, &gotEvent); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(WebhookConfig{
		URL:    server.URL,
		Secret: "hook-secret",
	}, logging.NewNop())

	err := notifier.WeekSettled(t.Context(), usecase.WeekSettledEvent{
		LeagueID:   "league-1",
		LeagueName: "Office Survivor",
		Week:       3,
		Survivors:  5,
		Eliminated: []string{"user-7"},
	})
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if gotSecret != "hook-secret" {
		t.Fatalf("expected secret header, got %q", gotSecret)
	}
	if gotEvent.Week != 3 || gotEvent.LeagueID != "league-1" {
		t.Fatalf("unexpected event: %+v", gotEvent)
	}
}

func TestWebhookNotifier_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(WebhookConfig{URL: server.URL}, logging.NewNop())

	if err := notifier.WeekSettled(t.Context(), usecase.WeekSettledEvent{Week: 1}); err == nil {
		t.Fatal("expected delivery error on 500")
	}
}

func TestWebhookNotifier_InvalidURL(t *testing.T) {
	notifier := NewWebhookNotifier(WebhookConfig{URL: "ftp://nowhere"}, logging.NewNop())

	if err := notifier.WeekSettled(t.Context(), usecase.WeekSettledEvent{Week: 1}); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
