package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
)

type fakeScoreFeed struct {
	games map[int][]game.Game
	err   error
}

func (f *fakeScoreFeed) FetchWeek(_ context.Context, _, _ string, week int) ([]game.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.games[week], nil
}

func intPtr(v int) *int { return &v }

func TestIngestionService_SyncWeek(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)

	feed := &fakeScoreFeed{games: map[int][]game.Game{
		1: {
			{ID: "feed-100", HomeTeamID: "eng-ars", HomeTeam: "Arsenal", AwayTeamID: "eng-liv", AwayTeam: "Liverpool", Status: "scheduled"},
			{ID: "feed-101", HomeTeamID: "eng-mci", HomeTeam: "Manchester City", AwayTeamID: "eng-che", AwayTeam: "Chelsea", Status: game.StatusInProgress},
		},
	}}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	run, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1)
	if err != nil {
		t.Fatalf("sync week failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected a run id")
	}
	if run.Fetched != 2 || run.Created != 2 || run.Updated != 0 {
		t.Fatalf("unexpected run counters: %+v", run)
	}

	stored, exists, err := gameRepo.GetByID(t.Context(), "feed-100")
	if err != nil || !exists {
		t.Fatalf("expected feed-100 stored, exists=%v err=%v", exists, err)
	}
	if stored.CompetitionID != memory.CompetitionIDPremierLeague || stored.Week != 1 {
		t.Fatalf("expected competition and week stamped, got %+v", stored)
	}
	if stored.Status != game.StatusNotStarted {
		t.Fatalf("expected alias status normalized to not_started, got %s", stored.Status)
	}

	// Second pass updates in place.
	feed.games[1][0].Status = game.StatusCompleted
	feed.games[1][0].HomeScore = intPtr(2)
	feed.games[1][0].AwayScore = intPtr(0)
	feed.games[1][0].WinnerTeamID = "eng-ars"

	run, err = service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if run.Created != 0 || run.Updated != 2 {
		t.Fatalf("unexpected run counters on resync: %+v", run)
	}

	stored, _, err = gameRepo.GetByID(t.Context(), "feed-100")
	if err != nil {
		t.Fatalf("get game failed: %v", err)
	}
	if stored.Status != game.StatusCompleted || stored.HomeScore == nil || *stored.HomeScore != 2 {
		t.Fatalf("expected completed with scores, got %+v", stored)
	}
}

func TestIngestionService_SyncWeek_CompletedNeverRegresses(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)

	feed := &fakeScoreFeed{games: map[int][]game.Game{
		1: {{
			ID: "feed-100", HomeTeamID: "eng-ars", AwayTeamID: "eng-liv",
			Status: game.StatusCompleted, HomeScore: intPtr(1), AwayScore: intPtr(0), WinnerTeamID: "eng-ars",
		}},
	}}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	if _, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1); err != nil {
		t.Fatalf("sync week failed: %v", err)
	}

	// The feed glitches back to in_progress with no scores.
	feed.games[1][0].Status = game.StatusInProgress
	feed.games[1][0].HomeScore = nil
	feed.games[1][0].AwayScore = nil
	feed.games[1][0].WinnerTeamID = ""

	run, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1)
	if err != nil {
		t.Fatalf("sync week failed: %v", err)
	}
	if run.SkippedRegressions != 1 {
		t.Fatalf("expected one skipped regression, got %+v", run)
	}

	stored, _, err := gameRepo.GetByID(t.Context(), "feed-100")
	if err != nil {
		t.Fatalf("get game failed: %v", err)
	}
	if stored.Status != game.StatusCompleted {
		t.Fatalf("expected stored game to stay completed, got %s", stored.Status)
	}
	if stored.HomeScore == nil || *stored.HomeScore != 1 || stored.WinnerTeamID != "eng-ars" {
		t.Fatalf("expected final score preserved, got %+v", stored)
	}
}

func TestIngestionService_SyncWeek_PreservesManualOverride(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)

	feed := &fakeScoreFeed{games: map[int][]game.Game{
		1: {{ID: "feed-100", HomeTeamID: "eng-ars", AwayTeamID: "eng-liv", Status: game.StatusNotStarted}},
	}}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	if _, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1); err != nil {
		t.Fatalf("sync week failed: %v", err)
	}

	override := game.StatusCompleted
	if err := gameRepo.SetManualOverride(t.Context(), "feed-100", &override); err != nil {
		t.Fatalf("set override failed: %v", err)
	}

	if _, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1); err != nil {
		t.Fatalf("resync failed: %v", err)
	}

	stored, _, err := gameRepo.GetByID(t.Context(), "feed-100")
	if err != nil {
		t.Fatalf("get game failed: %v", err)
	}
	if stored.ManualOverride == nil || *stored.ManualOverride != game.StatusCompleted {
		t.Fatalf("expected manual override to survive resync, got %+v", stored.ManualOverride)
	}
}

func TestIngestionService_SyncWeek_FeedDown(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)
	feed := &fakeScoreFeed{err: errors.New("upstream 503")}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	_, err := service.SyncWeek(t.Context(), memory.CompetitionIDPremierLeague, 1)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

// routingScoreFeed answers per competition code so the fan-out pass can mix
// healthy and broken feeds.
type routingScoreFeed struct {
	games map[string][]game.Game
	errs  map[string]error
}

func (f *routingScoreFeed) FetchWeek(_ context.Context, competitionCode, _ string, _ int) ([]game.Game, error) {
	if err := f.errs[competitionCode]; err != nil {
		return nil, err
	}
	return f.games[competitionCode], nil
}

func TestIngestionService_SyncAllCompetitions(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)

	feed := &routingScoreFeed{
		games: map[string][]game.Game{
			"epl": {{ID: "feed-100", HomeTeamID: "eng-ars", AwayTeamID: "eng-liv", Status: game.StatusNotStarted}},
		},
		errs: map[string]error{
			"nfl": errors.New("upstream 503"),
		},
	}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	result, err := service.SyncAllCompetitions(t.Context(), 1)
	if err != nil {
		t.Fatalf("sync all failed: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 1 {
		t.Fatalf("expected one success and one failure, got %+v", result)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected a row per competition, got %d", len(result.Results))
	}

	// Rows come back sorted by competition id.
	first, second := result.Results[0], result.Results[1]
	if first.CompetitionID != memory.CompetitionIDPremierLeague || second.CompetitionID != memory.CompetitionIDNFL {
		t.Fatalf("unexpected row order: %s, %s", first.CompetitionID, second.CompetitionID)
	}
	if first.Error != "" || first.Run.Created != 1 {
		t.Fatalf("expected premier league row to succeed, got %+v", first)
	}
	if second.Error == "" {
		t.Fatalf("expected nfl row to carry the feed error, got %+v", second)
	}

	if _, exists, _ := gameRepo.GetByID(t.Context(), "feed-100"); !exists {
		t.Fatal("expected synced game stored")
	}

	if _, err := service.SyncAllCompetitions(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 0, got %v", err)
	}
}

func TestIngestionService_SyncWeeks_StopsOnError(t *testing.T) {
	f := newLeagueFixture(1, 0)
	gameRepo := memory.NewGameRepository(nil)

	feed := &fakeScoreFeed{games: map[int][]game.Game{
		1: {{ID: "feed-100", HomeTeamID: "eng-ars", AwayTeamID: "eng-liv", Status: game.StatusNotStarted}},
	}}

	service := NewIngestionService(f.competitionRepo, gameRepo, feed, logging.NewNop())

	runs, err := service.SyncWeeks(t.Context(), memory.CompetitionIDPremierLeague, 1, 2)
	if err != nil {
		t.Fatalf("sync weeks failed: %v", err)
	}
	if len(runs) != 2 || runs[1].Fetched != 0 {
		t.Fatalf("expected two runs with an empty second week, got %+v", runs)
	}

	feed.err = errors.New("upstream 503")
	runs, err = service.SyncWeeks(t.Context(), memory.CompetitionIDPremierLeague, 1, 3)
	if err == nil {
		t.Fatal("expected error when the feed goes down")
	}
	if len(runs) != 0 {
		t.Fatalf("expected no completed runs after immediate failure, got %d", len(runs))
	}
}
