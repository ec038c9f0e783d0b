package game

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func statusPtr(s Status) *Status { return &s }

func TestEffectiveStatus_TimeWindows(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"one second before kickoff", time.Date(2025, 1, 1, 11, 59, 59, 0, time.UTC), StatusNotStarted},
		{"exactly at kickoff", kickoff, StatusInProgress},
		{"inside the match window", time.Date(2025, 1, 1, 14, 29, 59, 0, time.UTC), StatusInProgress},
		{"exactly at buffer boundary", kickoff.Add(DefaultCompletionBuffer), StatusInProgress},
		{"one second past the buffer", time.Date(2025, 1, 1, 14, 30, 1, 0, time.UTC), StatusCompleted},
	}

	for _, tc := range cases {
		if got := g.EffectiveStatus(tc.now); got != tc.want {
			t.Fatalf("%s: effective status = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestEffectiveStatus_ExactlyAtKickoffIsInProgress(t *testing.T) {
	kickoff := time.Date(2025, 6, 10, 19, 45, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	if got := g.EffectiveStatus(kickoff); got != StatusInProgress {
		t.Fatalf("at kickoff instant: got %s, want %s", got, StatusInProgress)
	}
}

func TestEffectiveStatus_ManualOverrideWinsUnconditionally(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	longAgo := kickoff.Add(-48 * time.Hour)
	farFuture := kickoff.Add(48 * time.Hour)

	g := Game{
		Status:         StatusNotStarted,
		StartTime:      timePtr(kickoff),
		ManualOverride: statusPtr(StatusCompleted),
	}
	if got := g.EffectiveStatus(longAgo); got != StatusCompleted {
		t.Fatalf("override before kickoff: got %s, want completed", got)
	}

	// Override may also move a game backwards: the admin correction path is
	// the only transition allowed to violate monotonicity.
	g = Game{
		Status:         StatusCompleted,
		StartTime:      timePtr(kickoff),
		ManualOverride: statusPtr(StatusNotStarted),
	}
	if got := g.EffectiveStatus(farFuture); got != StatusNotStarted {
		t.Fatalf("backwards override: got %s, want not_started", got)
	}
}

func TestEffectiveStatus_StoredCompletedIsTrusted(t *testing.T) {
	futureKickoff := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusCompleted, StartTime: timePtr(futureKickoff)}

	// Even with a kickoff in the future the stored final result stands.
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := g.EffectiveStatus(now); got != StatusCompleted {
		t.Fatalf("stored completed with future kickoff: got %s, want completed", got)
	}

	g.StartTime = nil
	g.Date = nil
	if got := g.EffectiveStatus(now); got != StatusCompleted {
		t.Fatalf("stored completed with no time data: got %s, want completed", got)
	}
}

func TestEffectiveStatus_NoTimeDataFallsBackToStoredStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	g := Game{Status: StatusInProgress}
	if got := g.EffectiveStatus(now); got != StatusInProgress {
		t.Fatalf("no time data: got %s, want stored in_progress", got)
	}

	g = Game{}
	if got := g.EffectiveStatus(now); got != StatusNotStarted {
		t.Fatalf("empty game: got %s, want default not_started", got)
	}
}

func TestEffectiveStatus_DateFallbackWhenStartTimeMissing(t *testing.T) {
	date := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, Date: timePtr(date)}

	if got := g.EffectiveStatus(date.Add(-time.Minute)); got != StatusNotStarted {
		t.Fatalf("before date fallback: got %s, want not_started", got)
	}
	if got := g.EffectiveStatus(date.Add(time.Minute)); got != StatusInProgress {
		t.Fatalf("after date fallback: got %s, want in_progress", got)
	}
}

func TestEffectiveStatus_Idempotent(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := kickoff.Add(30 * time.Minute)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	first := g.EffectiveStatus(now)
	second := g.EffectiveStatus(now)
	if first != second {
		t.Fatalf("same inputs gave %s then %s", first, second)
	}
}

func TestEffectiveStatusWithBuffer_PerCompetitionOverride(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	// A four-hour NFL buffer keeps the game in progress past the default cut.
	now := kickoff.Add(3 * time.Hour)
	if got := g.EffectiveStatusWithBuffer(now, 4*time.Hour); got != StatusInProgress {
		t.Fatalf("custom buffer: got %s, want in_progress", got)
	}
	if got := g.EffectiveStatus(now); got != StatusCompleted {
		t.Fatalf("default buffer: got %s, want completed", got)
	}
}

func TestCanPick(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	if !g.CanPick(kickoff.Add(-time.Hour)) {
		t.Fatal("expected pickable before kickoff")
	}
	if g.CanPick(kickoff) {
		t.Fatal("expected not pickable at kickoff")
	}
	if g.CanPick(kickoff.Add(5 * time.Hour)) {
		t.Fatal("expected not pickable after completion")
	}

	g.ManualOverride = statusPtr(StatusInProgress)
	if g.CanPick(kickoff.Add(-time.Hour)) {
		t.Fatal("expected override to block picking")
	}
}

func TestCanChangePick(t *testing.T) {
	kickoff := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := Game{Status: StatusNotStarted, StartTime: timePtr(kickoff)}

	if !g.CanChangePick(kickoff.Add(-time.Second)) {
		t.Fatal("expected changeable before kickoff")
	}
	if !g.CanChangePick(kickoff) {
		t.Fatal("expected changeable exactly at kickoff")
	}
	if g.CanChangePick(kickoff.Add(time.Second)) {
		t.Fatal("expected locked after kickoff")
	}

	// Status noise on the old game must not matter: the check is time-only.
	g.ManualOverride = statusPtr(StatusCompleted)
	if !g.CanChangePick(kickoff.Add(-time.Minute)) {
		t.Fatal("expected override to be ignored for change checks")
	}

	// No time data fails open.
	g = Game{Status: StatusInProgress}
	if !g.CanChangePick(kickoff) {
		t.Fatal("expected changeable when the game has no time data")
	}
}

func TestOutcome(t *testing.T) {
	two, one := 2, 1
	g := Game{HomeScore: &two, AwayScore: &one}
	if got := g.Outcome(); got != OutcomeHomeWin {
		t.Fatalf("got %q, want home win", got)
	}

	g = Game{HomeScore: &one, AwayScore: &two}
	if got := g.Outcome(); got != OutcomeAwayWin {
		t.Fatalf("got %q, want away win", got)
	}

	g = Game{HomeScore: &one, AwayScore: &one}
	if got := g.Outcome(); got != OutcomeDraw {
		t.Fatalf("got %q, want draw", got)
	}

	g = Game{HomeScore: &one}
	if got := g.Outcome(); got != OutcomeUnknown {
		t.Fatalf("got %q, want unknown", got)
	}
}
