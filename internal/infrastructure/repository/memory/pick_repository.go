package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) GetByUserAndWeek(_ context.Context, leagueID, userID string, week int) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.LeagueID == leagueID && p.UserID == userID && p.Week == week {
			return p, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *PickRepository) ListByUser(_ context.Context, leagueID, userID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.UserID == userID {
			out = append(out, p)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByWeek(_ context.Context, leagueID string, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.Week == week {
			out = append(out, p)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) Upsert(_ context.Context, p pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	return nil
}

func (r *PickRepository) SetResult(_ context.Context, id string, result pick.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil
	}
	p.Result = result
	r.items[id] = p
	return nil
}

func sortPicks(picks []pick.Pick) {
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		return picks[i].UserID < picks[j].UserID
	})
}
