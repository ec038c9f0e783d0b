package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, item := range games {
		items[item.ID] = item
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) GetByID(_ context.Context, id string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[id]
	return g, ok, nil
}

func (r *GameRepository) ListByCompetitionAndWeek(_ context.Context, competitionID string, week int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.CompetitionID == competitionID && g.Week == week {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListByIDs(_ context.Context, ids []string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.items[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[g.ID] = g
	return nil
}

func (r *GameRepository) SetManualOverride(_ context.Context, id string, override *game.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok {
		return nil
	}
	if override == nil {
		g.ManualOverride = nil
	} else {
		value := *override
		g.ManualOverride = &value
	}
	r.items[id] = g
	return nil
}

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		left, right := games[i], games[j]
		if left.StartTime != nil && right.StartTime != nil && !left.StartTime.Equal(*right.StartTime) {
			return left.StartTime.Before(*right.StartTime)
		}
		return left.ID < right.ID
	})
}
