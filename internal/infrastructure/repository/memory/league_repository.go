package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/league"
)

type LeagueRepository struct {
	mu           sync.RWMutex
	items        map[string]league.League
	byInviteCode map[string]string

	// memberships lets ListByUser resolve which leagues a user belongs to
	// without a join table of its own.
	memberships *MembershipRepository
}

func NewLeagueRepository(memberships *MembershipRepository) *LeagueRepository {
	return &LeagueRepository{
		items:        make(map[string]league.League),
		byInviteCode: make(map[string]string),
		memberships:  memberships,
	}
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[id]
	return l, ok, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byInviteCode[strings.ToUpper(code)]
	if !ok {
		return league.League{}, false, nil
	}

	l, ok := r.items[id]
	return l, ok, nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	ids, err := r.memberships.leagueIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.items[id]; ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[l.ID] = l
	r.byInviteCode[strings.ToUpper(l.InviteCode)] = l.ID
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.items[l.ID]; ok && previous.InviteCode != l.InviteCode {
		delete(r.byInviteCode, strings.ToUpper(previous.InviteCode))
		r.byInviteCode[strings.ToUpper(l.InviteCode)] = l.ID
	}
	r.items[l.ID] = l
	return nil
}
