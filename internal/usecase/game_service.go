package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/domain/user"
	"github.com/riskibarqy/survivor-league/internal/platform/cache"
)

// GameView is a game decorated with the status the clock says it is in
// right now, as opposed to the last status the feed stored.
type GameView struct {
	game.Game
	EffectiveStatus game.Status `json:"effectiveStatus"`
	CanPick         bool        `json:"canPick"`
}

type GameService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	cache           *cache.Store
	now             func() time.Time
}

func NewGameService(competitionRepo competition.Repository, gameRepo game.Repository, cacheStore *cache.Store) *GameService {
	return &GameService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		cache:           cacheStore,
		now:             time.Now,
	}
}

func (s *GameService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListCompetitions")
	defer span.End()

	comps, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	return comps, nil
}

// ListWeekGames returns the week's schedule with effective statuses stamped
// at call time. Only the repository read is cached; statuses are recomputed
// on every call because they move with the clock.
func (s *GameService) ListWeekGames(ctx context.Context, competitionID string, week int) ([]GameView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListWeekGames")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	games, err := s.loadWeekGames(ctx, competitionID, week)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	buffer := comp.CompletionBuffer()
	views := make([]GameView, 0, len(games))
	for _, g := range games {
		views = append(views, GameView{
			Game:            g,
			EffectiveStatus: g.EffectiveStatusWithBuffer(now, buffer),
			CanPick:         g.CanPickWithBuffer(now, buffer),
		})
	}

	return views, nil
}

func (s *GameService) GetGame(ctx context.Context, gameID string) (GameView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return GameView{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return GameView{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return GameView{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	now := s.now().UTC()
	buffer := s.bufferFor(ctx, g.CompetitionID)

	return GameView{
		Game:            g,
		EffectiveStatus: g.EffectiveStatusWithBuffer(now, buffer),
		CanPick:         g.CanPickWithBuffer(now, buffer),
	}, nil
}

// SetStatusOverride pins a game to the given status regardless of what the
// clock or the feed says. Site admins only.
func (s *GameService) SetStatusOverride(ctx context.Context, actor user.Principal, gameID string, status game.Status) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SetStatusOverride")
	defer span.End()

	if !actor.IsSiteAdmin() {
		return game.Game{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	if !game.IsValidStatus(string(status)) {
		return game.Game{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	status = game.NormalizeStatus(string(status))

	return s.applyOverride(ctx, gameID, &status)
}

// ClearStatusOverride removes a pinned status so the game falls back to
// stored-status and clock rules.
func (s *GameService) ClearStatusOverride(ctx context.Context, actor user.Principal, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ClearStatusOverride")
	defer span.End()

	if !actor.IsSiteAdmin() {
		return game.Game{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	return s.applyOverride(ctx, gameID, nil)
}

func (s *GameService) applyOverride(ctx context.Context, gameID string, status *game.Status) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	if err := s.gameRepo.SetManualOverride(ctx, gameID, status); err != nil {
		return game.Game{}, fmt.Errorf("set status override: %w", err)
	}
	g.ManualOverride = status

	s.invalidateWeek(ctx, g.CompetitionID, g.Week)

	return g, nil
}

func (s *GameService) loadWeekGames(ctx context.Context, competitionID string, week int) ([]game.Game, error) {
	key := weekGamesCacheKey(competitionID, week)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.gameRepo.ListByCompetitionAndWeek(ctx, competitionID, week)
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	games, ok := value.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("list games: unexpected cache entry for %s", key)
	}

	return games, nil
}

func (s *GameService) invalidateWeek(ctx context.Context, competitionID string, week int) {
	s.cache.Delete(ctx, weekGamesCacheKey(competitionID, week))
}

func (s *GameService) bufferFor(ctx context.Context, competitionID string) time.Duration {
	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil || !exists {
		return game.DefaultCompletionBuffer
	}
	return comp.CompletionBuffer()
}

func weekGamesCacheKey(competitionID string, week int) string {
	return fmt.Sprintf("games:%s:%d", competitionID, week)
}
