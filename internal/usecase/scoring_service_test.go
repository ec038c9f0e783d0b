package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
)

type recordingNotifier struct {
	events []WeekSettledEvent
}

func (n *recordingNotifier) WeekSettled(_ context.Context, event WeekSettledEvent) error {
	n.events = append(n.events, event)
	return nil
}

func newScoringService(f *leagueFixture, notifier Notifier) *ScoringService {
	return NewScoringService(
		f.leagueRepo,
		f.competitionRepo,
		f.membershipRepo,
		f.standingRepo,
		f.gameRepo,
		f.pickRepo,
		notifier,
		logging.NewNop(),
	)
}

func completeGame(t *testing.T, f *leagueFixture, gameID string, homeScore, awayScore int) {
	t.Helper()

	g, exists, err := f.gameRepo.GetByID(context.Background(), gameID)
	if err != nil || !exists {
		t.Fatalf("seed game %s missing: exists=%v err=%v", gameID, exists, err)
	}

	g.Status = game.StatusCompleted
	g.HomeScore = &homeScore
	g.AwayScore = &awayScore
	switch {
	case homeScore > awayScore:
		g.WinnerTeamID = g.HomeTeamID
	case awayScore > homeScore:
		g.WinnerTeamID = g.AwayTeamID
	}
	if err := f.gameRepo.Upsert(context.Background(), g); err != nil {
		t.Fatalf("complete game failed: %v", err)
	}
}

func TestScoringService_SettleWeek(t *testing.T) {
	f := newLeagueFixture(2, 1)
	f.addMember("user-3", "member")

	seedPick(t, f, "user-1", 1, "epl-w1-ars-liv", "eng-ars")
	seedPick(t, f, "user-2", 1, "epl-w1-mci-che", "eng-che")
	// user-3 never picks.

	completeGame(t, f, "epl-w1-ars-liv", 2, 0)
	completeGame(t, f, "epl-w1-mci-che", 1, 1)
	completeGame(t, f, "epl-w1-tot-mun", 0, 1)

	notifier := &recordingNotifier{}
	service := newScoringService(f, notifier)
	service.now = func() time.Time { return kickoffDay.AddDate(0, 0, 3) }

	settlement, err := service.SettleWeek(t.Context(), "league-1", 1)
	if err != nil {
		t.Fatalf("settle week failed: %v", err)
	}

	if settlement.Members != 3 || settlement.Wins != 1 || settlement.Draws != 1 || settlement.MissedPicks != 1 {
		t.Fatalf("unexpected settlement counters: %+v", settlement)
	}

	winner, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-1")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if winner.Points != 1 || winner.Strikes != 0 || winner.Eliminated {
		t.Fatalf("expected winner 1 point 0 strikes, got %+v", winner)
	}

	// Draws do not count as losses unless the league says so.
	drawer, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-2")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if drawer.Points != 0 || drawer.Strikes != 0 {
		t.Fatalf("expected drawer untouched, got %+v", drawer)
	}

	missed, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-3")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if missed.Strikes != 1 || missed.Eliminated {
		t.Fatalf("expected one strike for missed pick, got %+v", missed)
	}

	picks, err := f.pickRepo.ListByWeek(t.Context(), "league-1", 1)
	if err != nil {
		t.Fatalf("list picks failed: %v", err)
	}
	for _, p := range picks {
		switch p.UserID {
		case "user-1":
			if p.Result != "win" {
				t.Fatalf("expected win result for user-1, got %s", p.Result)
			}
		case "user-2":
			if p.Result != "draw" {
				t.Fatalf("expected draw result for user-2, got %s", p.Result)
			}
		}
	}

	if len(notifier.events) != 1 {
		t.Fatalf("expected one settlement notification, got %d", len(notifier.events))
	}
	if notifier.events[0].Week != 1 || notifier.events[0].Survivors != 3 {
		t.Fatalf("unexpected notification: %+v", notifier.events[0])
	}
}

func TestScoringService_SettleWeek_DrawCountsAsLoss(t *testing.T) {
	f := newLeagueFixture(2, 1)
	f.league.DrawCountsAsLoss = true
	f.league.MaxStrikes = 1
	if err := f.leagueRepo.Update(t.Context(), f.league); err != nil {
		t.Fatalf("update league failed: %v", err)
	}

	seedPick(t, f, "user-1", 1, "epl-w1-mci-che", "eng-mci")
	seedPick(t, f, "user-2", 1, "epl-w1-ars-liv", "eng-liv")

	completeGame(t, f, "epl-w1-ars-liv", 2, 0)
	completeGame(t, f, "epl-w1-mci-che", 1, 1)
	completeGame(t, f, "epl-w1-tot-mun", 0, 1)

	service := newScoringService(f, nil)
	service.now = func() time.Time { return kickoffDay.AddDate(0, 0, 3) }

	settlement, err := service.SettleWeek(t.Context(), "league-1", 1)
	if err != nil {
		t.Fatalf("settle week failed: %v", err)
	}
	if settlement.Eliminated != 2 {
		t.Fatalf("expected both members eliminated, got %+v", settlement)
	}

	drawer, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-1")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if drawer.Strikes != 1 || !drawer.Eliminated {
		t.Fatalf("expected drawer eliminated at max strikes 1, got %+v", drawer)
	}
}

func TestScoringService_SettleWeek_RefusesWhileInPlay(t *testing.T) {
	f := newLeagueFixture(2, 1)
	service := newScoringService(f, nil)

	// Saturday 13:00: the first game is in progress.
	service.now = func() time.Time { return kickoffDay.Add(13 * time.Hour) }

	_, err := service.SettleWeek(t.Context(), "league-1", 1)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict while games are in play, got %v", err)
	}
}

func TestScoringService_SettleWeek_FutureWeekRejected(t *testing.T) {
	f := newLeagueFixture(2, 1)
	service := newScoringService(f, nil)

	_, err := service.SettleWeek(t.Context(), "league-1", 2)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a week not yet in play, got %v", err)
	}
}

func TestScoringService_SettleWeek_SkipsEliminatedMembers(t *testing.T) {
	f := newLeagueFixture(2, 1)
	f.league.MaxStrikes = 1
	if err := f.leagueRepo.Update(t.Context(), f.league); err != nil {
		t.Fatalf("update league failed: %v", err)
	}

	seedPick(t, f, "user-1", 1, "epl-w1-ars-liv", "eng-ars")

	completeGame(t, f, "epl-w1-ars-liv", 2, 0)
	completeGame(t, f, "epl-w1-mci-che", 1, 0)
	completeGame(t, f, "epl-w1-tot-mun", 0, 1)

	service := newScoringService(f, nil)
	service.now = func() time.Time { return kickoffDay.AddDate(0, 0, 3) }

	// First settlement knocks out user-2 for missing a pick.
	if _, err := service.SettleWeek(t.Context(), "league-1", 1); err != nil {
		t.Fatalf("settle week failed: %v", err)
	}

	eliminated, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-2")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if !eliminated.Eliminated {
		t.Fatalf("expected user-2 eliminated, got %+v", eliminated)
	}

	// A rerun does not pile more strikes onto an already-eliminated member.
	if _, err := service.SettleWeek(t.Context(), "league-1", 1); err != nil {
		t.Fatalf("resettle week failed: %v", err)
	}

	after, _, err := f.standingRepo.Get(t.Context(), "league-1", "user-2")
	if err != nil {
		t.Fatalf("get standing failed: %v", err)
	}
	if after.Strikes != eliminated.Strikes {
		t.Fatalf("expected strikes unchanged on rerun, got %d vs %d", after.Strikes, eliminated.Strikes)
	}
}

func TestScoringService_Standings(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newScoringService(f, nil)

	standings, err := service.Standings(t.Context(), "league-1", "user-2")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected two standings, got %d", len(standings))
	}

	if _, err := service.Standings(t.Context(), "league-1", "user-9"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
}
