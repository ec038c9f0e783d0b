package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/pick"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	idgen "github.com/riskibarqy/survivor-league/internal/platform/id"
)

type MakePickInput struct {
	LeagueID string
	UserID   string
	GameID   string
	TeamID   string
}

// PickState is the presentation view of a member's pick surface for the
// active week: the pick itself plus every lock flag the UI needs.
type PickState struct {
	Week            int
	Pick            pick.Pick
	HasPick         bool
	GameweekStarted bool
	Locked          bool
	ChangesDisabled bool
	FirstPickOpen   bool
}

type PickService struct {
	leagueRepo      league.Repository
	competitionRepo competition.Repository
	membershipRepo  membership.Repository
	standingRepo    standing.Repository
	gameRepo        game.Repository
	pickRepo        pick.Repository
	idGen           idgen.Generator
	now             func() time.Time
}

func NewPickService(
	leagueRepo league.Repository,
	competitionRepo competition.Repository,
	membershipRepo membership.Repository,
	standingRepo standing.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	idGen idgen.Generator,
) *PickService {
	return &PickService{
		leagueRepo:      leagueRepo,
		competitionRepo: competitionRepo,
		membershipRepo:  membershipRepo,
		standingRepo:    standingRepo,
		gameRepo:        gameRepo,
		pickRepo:        pickRepo,
		idGen:           idGen,
		now:             time.Now,
	}
}

// MakePick creates or replaces the caller's pick for the league's current
// pick week. Every gate here is a straight application of the eligibility
// rules; the ordering matters only for which rejection the user sees first.
func (s *PickService) MakePick(ctx context.Context, input MakePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.MakePick")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.GameID = strings.TrimSpace(input.GameID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.LeagueID == "" || input.UserID == "" || input.GameID == "" || input.TeamID == "" {
		return pick.Pick{}, fmt.Errorf("%w: league, user, game and team ids are required", ErrInvalidInput)
	}

	l, err := s.requireActiveMember(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return pick.Pick{}, err
	}
	annotateLeagueWeekSpan(span, input.LeagueID, l.CurrentPickWeek)

	week := l.CurrentPickWeek
	if week < 1 {
		return pick.Pick{}, fmt.Errorf("%w: no pick week is open", ErrConflict)
	}

	now := s.now().UTC()
	existing, hasPick, err := s.pickRepo.GetByUserAndWeek(ctx, l.ID, input.UserID, week)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get current pick: %w", err)
	}

	started := l.GameweekStarted()
	if pick.Locked(started, hasPick) {
		return pick.Pick{}, fmt.Errorf("%w: week=%d", ErrPicksLocked, week)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return pick.Pick{}, fmt.Errorf("%w: game=%s", ErrNotFound, input.GameID)
	}
	if g.CompetitionID != l.CompetitionID || g.Week != week {
		return pick.Pick{}, fmt.Errorf("%w: game does not belong to week %d of this league", ErrInvalidInput, week)
	}

	teamName, ok := teamInGame(g, input.TeamID)
	if !ok {
		return pick.Pick{}, fmt.Errorf("%w: team is not playing in this game", ErrInvalidInput)
	}

	if !g.CanPickWithBuffer(now, s.completionBuffer(ctx, l.CompetitionID)) {
		return pick.Pick{}, fmt.Errorf("%w: game=%s", ErrGameUnavailable, g.ID)
	}

	if hasPick {
		// Changing an existing pick is gated by the originally picked game's
		// kickoff, never by its (possibly overridden) status.
		oldGame, exists, err := s.gameRepo.GetByID(ctx, existing.GameID)
		if err != nil {
			return pick.Pick{}, fmt.Errorf("get original pick game: %w", err)
		}
		if exists && !oldGame.CanChangePick(now) {
			return pick.Pick{}, fmt.Errorf("%w: original pick already kicked off", ErrPicksLocked)
		}
	}

	if err := s.rejectReusedTeam(ctx, l.ID, input.UserID, input.TeamID, week); err != nil {
		return pick.Pick{}, err
	}

	p := pick.Pick{
		ID:        existing.ID,
		LeagueID:  l.ID,
		UserID:    input.UserID,
		Week:      week,
		GameID:    g.ID,
		TeamID:    input.TeamID,
		TeamName:  teamName,
		Result:    pick.ResultUnset,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now,
	}
	if !hasPick {
		pickID, err := s.idGen.NewID()
		if err != nil {
			return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
		}
		p.ID = pickID
		p.CreatedAt = now
	}

	if err := s.pickRepo.Upsert(ctx, p); err != nil {
		return pick.Pick{}, fmt.Errorf("save pick: %w", err)
	}

	return p, nil
}

// GetMyPickState returns the caller's pick and lock flags for the active
// pick week.
func (s *PickService) GetMyPickState(ctx context.Context, leagueID, userID string) (PickState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetMyPickState")
	defer span.End()

	l, err := s.requireMember(ctx, leagueID, userID)
	if err != nil {
		return PickState{}, err
	}

	week := l.CurrentPickWeek
	state := PickState{Week: week, GameweekStarted: l.GameweekStarted()}
	if week < 1 {
		return state, nil
	}

	p, hasPick, err := s.pickRepo.GetByUserAndWeek(ctx, l.ID, userID, week)
	if err != nil {
		return PickState{}, fmt.Errorf("get pick: %w", err)
	}

	state.Pick = p
	state.HasPick = hasPick
	state.Locked = pick.Locked(state.GameweekStarted, hasPick)
	state.ChangesDisabled = pick.ChangesDisabled(state.GameweekStarted, hasPick)
	state.FirstPickOpen = pick.FirstPickAllowed(state.GameweekStarted, hasPick)

	return state, nil
}

func (s *PickService) ListMyPicks(ctx context.Context, leagueID, userID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMyPicks")
	defer span.End()

	if _, err := s.requireMember(ctx, leagueID, userID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByUser(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return picks, nil
}

// ListWeekPicks reveals every member's pick for a week, but only once that
// week is locked in play or already finished. Upcoming weeks stay hidden so
// members cannot scout each other before kickoff.
func (s *PickService) ListWeekPicks(ctx context.Context, leagueID, userID string, week int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListWeekPicks")
	defer span.End()

	l, err := s.requireMember(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if l.CurrentGameWeek < 1 || week > l.CurrentGameWeek {
		return nil, fmt.Errorf("%w: picks become visible once the gameweek starts", ErrForbidden)
	}

	picks, err := s.pickRepo.ListByWeek(ctx, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("list week picks: %w", err)
	}

	return picks, nil
}

func (s *PickService) requireMember(ctx context.Context, leagueID, userID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return league.League{}, fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	_, exists, err = s.membershipRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: not a league member", ErrForbidden)
	}

	return l, nil
}

func (s *PickService) requireActiveMember(ctx context.Context, leagueID, userID string) (league.League, error) {
	l, err := s.requireMember(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, err
	}

	st, exists, err := s.standingRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, fmt.Errorf("get standing: %w", err)
	}
	if exists && st.Eliminated {
		return league.League{}, fmt.Errorf("%w: user=%s", ErrEliminated, userID)
	}

	return l, nil
}

// rejectReusedTeam enforces the survivor rule: one team per user per season.
func (s *PickService) rejectReusedTeam(ctx context.Context, leagueID, userID, teamID string, currentWeek int) error {
	picks, err := s.pickRepo.ListByUser(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("list picks for team reuse check: %w", err)
	}

	for _, p := range picks {
		if p.Week != currentWeek && p.TeamID == teamID {
			return fmt.Errorf("%w: team=%s week=%d", ErrTeamAlreadyUsed, teamID, p.Week)
		}
	}

	return nil
}

func (s *PickService) completionBuffer(ctx context.Context, competitionID string) time.Duration {
	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil || !exists {
		return game.DefaultCompletionBuffer
	}
	return comp.CompletionBuffer()
}

func teamInGame(g game.Game, teamID string) (string, bool) {
	switch teamID {
	case g.HomeTeamID:
		return g.HomeTeam, true
	case g.AwayTeamID:
		return g.AwayTeam, true
	default:
		return "", false
	}
}
