package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[string]competition.Competition
}

func NewCompetitionRepository(comps []competition.Competition) *CompetitionRepository {
	items := make(map[string]competition.Competition, len(comps))
	for _, item := range comps {
		items[item.ID] = item
	}

	return &CompetitionRepository{items: items}
}

func (r *CompetitionRepository) GetByID(_ context.Context, id string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	return c, ok, nil
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
