package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/pick"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
)

const settleWorkers = 8

// WeekSettledEvent is pushed to the league's webhook once a week has been
// scored.
type WeekSettledEvent struct {
	LeagueID   string   `json:"leagueId"`
	LeagueName string   `json:"leagueName"`
	Week       int      `json:"week"`
	Survivors  int      `json:"survivors"`
	Eliminated []string `json:"eliminated"`
}

// Notifier delivers settlement events to whatever the league has hooked up.
type Notifier interface {
	WeekSettled(ctx context.Context, event WeekSettledEvent) error
}

type WeekSettlement struct {
	LeagueID    string `json:"leagueId"`
	Week        int    `json:"week"`
	Members     int    `json:"members"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	MissedPicks int    `json:"missedPicks"`
	Eliminated  int    `json:"eliminated"`
}

type ScoringService struct {
	leagueRepo      league.Repository
	competitionRepo competition.Repository
	membershipRepo  membership.Repository
	standingRepo    standing.Repository
	gameRepo        game.Repository
	pickRepo        pick.Repository
	notifier        Notifier
	logger          *logging.Logger
	now             func() time.Time
}

func NewScoringService(
	leagueRepo league.Repository,
	competitionRepo competition.Repository,
	membershipRepo membership.Repository,
	standingRepo standing.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	notifier Notifier,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		leagueRepo:      leagueRepo,
		competitionRepo: competitionRepo,
		membershipRepo:  membershipRepo,
		standingRepo:    standingRepo,
		gameRepo:        gameRepo,
		pickRepo:        pickRepo,
		notifier:        notifier,
		logger:          logger,
		now:             time.Now,
	}
}

// SettleWeek scores one finished week of a league: every member's pick is
// graded against the game outcome, missed picks count as losses, and
// standings roll forward. Refuses to run while any game of the week is not
// yet effectively completed, so a delayed kickoff can never be graded early.
func (s *ScoringService) SettleWeek(ctx context.Context, leagueID string, week int) (WeekSettlement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SettleWeek")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return WeekSettlement{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return WeekSettlement{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return WeekSettlement{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	if week == 0 {
		week = l.CurrentGameWeek
	}
	annotateLeagueWeekSpan(span, leagueID, week)
	if week < 1 || week > l.CurrentGameWeek {
		return WeekSettlement{}, fmt.Errorf("%w: week %d is not settleable yet", ErrConflict, week)
	}

	outcomes, err := s.weekOutcomes(ctx, l, week)
	if err != nil {
		return WeekSettlement{}, err
	}

	members, err := s.membershipRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return WeekSettlement{}, fmt.Errorf("list members: %w", err)
	}

	picks, err := s.pickRepo.ListByWeek(ctx, l.ID, week)
	if err != nil {
		return WeekSettlement{}, fmt.Errorf("list week picks: %w", err)
	}
	pickByUser := make(map[string]pick.Pick, len(picks))
	for _, p := range picks {
		pickByUser[p.UserID] = p
	}

	var (
		wins, losses, draws, missed, eliminated atomic.Int64

		mu          sync.Mutex
		knockedOut  []string
		survivorCnt int
	)

	workers := pool.New().WithErrors().WithMaxGoroutines(settleWorkers)
	for _, m := range members {
		workers.Go(func() error {
			st, _, err := s.standingRepo.Get(ctx, l.ID, m.UserID)
			if err != nil {
				return fmt.Errorf("get standing for %s: %w", m.UserID, err)
			}
			if st.Eliminated {
				return nil
			}

			won, lost, result, err := s.gradePick(ctx, l, pickByUser, outcomes, m.UserID, week)
			if err != nil {
				return err
			}

			switch result {
			case pick.ResultWin:
				wins.Add(1)
			case pick.ResultDraw:
				draws.Add(1)
				if lost {
					losses.Add(1)
				}
			case pick.ResultLoss:
				losses.Add(1)
			case pick.ResultUnset:
				missed.Add(1)
			}

			next := st.ApplyResult(won, lost, l.MaxStrikes)
			next.LeagueID = l.ID
			next.UserID = m.UserID
			next.UpdatedAt = s.now().UTC()
			if err := s.standingRepo.Upsert(ctx, next); err != nil {
				return fmt.Errorf("save standing for %s: %w", m.UserID, err)
			}

			mu.Lock()
			if next.Eliminated {
				knockedOut = append(knockedOut, m.UserID)
			} else {
				survivorCnt++
			}
			mu.Unlock()
			if next.Eliminated && !st.Eliminated {
				eliminated.Add(1)
			}
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return WeekSettlement{}, fmt.Errorf("settle week %d: %w", week, err)
	}

	settlement := WeekSettlement{
		LeagueID:    l.ID,
		Week:        week,
		Members:     len(members),
		Wins:        int(wins.Load()),
		Losses:      int(losses.Load()),
		Draws:       int(draws.Load()),
		MissedPicks: int(missed.Load()),
		Eliminated:  int(eliminated.Load()),
	}

	s.logger.InfoContext(ctx, "week settled",
		"league_id", l.ID,
		"week", week,
		"members", settlement.Members,
		"eliminated", settlement.Eliminated,
	)

	s.notify(ctx, WeekSettledEvent{
		LeagueID:   l.ID,
		LeagueName: l.Name,
		Week:       week,
		Survivors:  survivorCnt,
		Eliminated: knockedOut,
	})

	return settlement, nil
}

func (s *ScoringService) Standings(ctx context.Context, leagueID, userID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Standings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return nil, fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	_, exists, err := s.membershipRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: not a league member", ErrForbidden)
	}

	standings, err := s.standingRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	return standings, nil
}

// weekOutcomes loads the week's games and insists every one of them is
// effectively completed before returning the outcome map.
func (s *ScoringService) weekOutcomes(ctx context.Context, l league.League, week int) (map[string]game.Game, error) {
	games, err := s.gameRepo.ListByCompetitionAndWeek(ctx, l.CompetitionID, week)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no games scheduled for week %d", ErrConflict, week)
	}

	buffer := game.DefaultCompletionBuffer
	if comp, exists, err := s.competitionRepo.GetByID(ctx, l.CompetitionID); err == nil && exists {
		buffer = comp.CompletionBuffer()
	}

	now := s.now().UTC()
	outcomes := make(map[string]game.Game, len(games))
	for _, g := range games {
		if g.EffectiveStatusWithBuffer(now, buffer) != game.StatusCompleted {
			return nil, fmt.Errorf("%w: game %s is still in play", ErrConflict, g.ID)
		}
		outcomes[g.ID] = g
	}

	return outcomes, nil
}

func (s *ScoringService) gradePick(
	ctx context.Context,
	l league.League,
	pickByUser map[string]pick.Pick,
	outcomes map[string]game.Game,
	userID string,
	week int,
) (won, lost bool, result pick.Result, err error) {
	p, hasPick := pickByUser[userID]
	if !hasPick {
		// No pick before lock is an automatic strike.
		return false, true, pick.ResultUnset, nil
	}

	g, ok := outcomes[p.GameID]
	if !ok {
		return false, false, pick.ResultUnset, fmt.Errorf("%w: pick %s references game outside week %d", ErrConflict, p.ID, week)
	}

	switch g.Outcome() {
	case game.OutcomeHomeWin:
		won = p.TeamID == g.HomeTeamID
	case game.OutcomeAwayWin:
		won = p.TeamID == g.AwayTeamID
	case game.OutcomeDraw:
		result = pick.ResultDraw
		lost = l.DrawCountsAsLoss
	default:
		return false, false, pick.ResultUnset, fmt.Errorf("%w: game %s completed without scores", ErrConflict, g.ID)
	}

	if result == "" {
		if won {
			result = pick.ResultWin
		} else {
			result = pick.ResultLoss
			lost = true
		}
	}

	if err := s.pickRepo.SetResult(ctx, p.ID, result); err != nil {
		return false, false, result, fmt.Errorf("save pick result for %s: %w", userID, err)
	}

	return won, lost, result, nil
}

func (s *ScoringService) notify(ctx context.Context, event WeekSettledEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.WeekSettled(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "settlement notification failed",
			"league_id", event.LeagueID,
			"week", event.Week,
			"error", err,
		)
	}
}
