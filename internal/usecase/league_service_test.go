package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/memory"
)

func newLeagueService(f *leagueFixture) *LeagueService {
	return NewLeagueService(
		f.leagueRepo,
		f.competitionRepo,
		f.membershipRepo,
		f.standingRepo,
		&seqIDGenerator{prefix: "league"},
	)
}

func TestLeagueService_Create(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newLeagueService(f)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.Create(t.Context(), CreateLeagueInput{
		OwnerUserID:   "user-3",
		CompetitionID: memory.CompetitionIDPremierLeague,
		Name:          "Pub Quiz Survivors",
		MaxStrikes:    2,
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	if created.CurrentPickWeek != 1 || created.CurrentGameWeek != 0 {
		t.Fatalf("expected fresh week pointers 1/0, got %d/%d", created.CurrentPickWeek, created.CurrentGameWeek)
	}
	if len(created.InviteCode) != inviteCodeLength {
		t.Fatalf("expected %d character invite code, got %q", inviteCodeLength, created.InviteCode)
	}
	if created.Season != "2025/2026" {
		t.Fatalf("expected season inherited from competition, got %s", created.Season)
	}

	m, exists, err := f.membershipRepo.Get(t.Context(), created.ID, "user-3")
	if err != nil || !exists {
		t.Fatalf("expected owner membership, exists=%v err=%v", exists, err)
	}
	if !m.IsLeagueAdmin() {
		t.Fatalf("expected owner to be league admin, got role %s", m.Role)
	}

	if _, exists, _ := f.standingRepo.Get(t.Context(), created.ID, "user-3"); !exists {
		t.Fatal("expected owner standing to be created")
	}
}

func TestLeagueService_Create_UnknownCompetition(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newLeagueService(f)

	_, err := service.Create(t.Context(), CreateLeagueInput{
		OwnerUserID:   "user-3",
		CompetitionID: "no-such-competition",
		Name:          "Nowhere League",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_GameweekFlow(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newLeagueService(f)
	service.now = func() time.Time { return kickoffDay.Add(12 * time.Hour) }

	// Picks are open for week 1; advancing before the gameweek starts is a
	// conflict.
	if _, err := service.AdvancePickWeek(t.Context(), "league-1", "user-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before gameweek start, got %v", err)
	}

	l, err := service.BeginGameweek(t.Context(), "league-1", "user-1")
	if err != nil {
		t.Fatalf("begin gameweek failed: %v", err)
	}
	if l.CurrentGameWeek != 1 || !l.GameweekStarted() {
		t.Fatalf("expected gameweek 1 started, got %d/%d", l.CurrentPickWeek, l.CurrentGameWeek)
	}

	if _, err := service.BeginGameweek(t.Context(), "league-1", "user-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on double begin, got %v", err)
	}

	l, err = service.AdvancePickWeek(t.Context(), "league-1", "user-1")
	if err != nil {
		t.Fatalf("advance pick week failed: %v", err)
	}
	if l.CurrentPickWeek != 2 || l.CurrentGameWeek != 1 {
		t.Fatalf("expected week pointers 2/1, got %d/%d", l.CurrentPickWeek, l.CurrentGameWeek)
	}
	if l.GameweekStarted() {
		t.Fatal("expected new pick week to be unlocked")
	}
}

func TestLeagueService_AdminOnlyOperations(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newLeagueService(f)

	if _, err := service.BeginGameweek(t.Context(), "league-1", "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin begin, got %v", err)
	}

	_, err := service.UpdateSettings(t.Context(), UpdateLeagueSettingsInput{
		LeagueID:    "league-1",
		AdminUserID: "user-2",
		Name:        "Renamed",
		MaxStrikes:  3,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin settings update, got %v", err)
	}

	updated, err := service.UpdateSettings(t.Context(), UpdateLeagueSettingsInput{
		LeagueID:         "league-1",
		AdminUserID:      "user-1",
		Name:             "Renamed",
		MaxStrikes:       3,
		DrawCountsAsLoss: true,
	})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if updated.Name != "Renamed" || updated.MaxStrikes != 3 || !updated.DrawCountsAsLoss {
		t.Fatalf("expected settings applied, got %+v", updated)
	}
}

func TestLeagueService_ListMine(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newLeagueService(f)

	leagues, err := service.ListMine(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(leagues) != 1 || leagues[0].ID != "league-1" {
		t.Fatalf("expected single league league-1, got %+v", leagues)
	}

	leagues, err = service.ListMine(t.Context(), "user-9")
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(leagues) != 0 {
		t.Fatalf("expected no leagues for outsider, got %+v", leagues)
	}
}
