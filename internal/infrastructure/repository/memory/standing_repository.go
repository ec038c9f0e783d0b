package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	items map[string]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{items: make(map[string]standing.Standing)}
}

func (r *StandingRepository) Get(_ context.Context, leagueID, userID string) (standing.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[membershipKey(leagueID, userID)]
	return s, ok, nil
}

func (r *StandingRepository) ListByLeague(_ context.Context, leagueID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, s := range r.items {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Strikes != out[j].Strikes {
			return out[i].Strikes < out[j].Strikes
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *StandingRepository) Upsert(_ context.Context, s standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[membershipKey(s.LeagueID, s.UserID)] = s
	return nil
}
