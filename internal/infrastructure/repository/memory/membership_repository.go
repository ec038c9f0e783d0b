package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/membership"
)

type MembershipRepository struct {
	mu       sync.RWMutex
	items    map[string]membership.Membership
	requests map[string]membership.JoinRequest
}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{
		items:    make(map[string]membership.Membership),
		requests: make(map[string]membership.JoinRequest),
	}
}

func (r *MembershipRepository) Get(_ context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[membershipKey(leagueID, userID)]
	return m, ok, nil
}

func (r *MembershipRepository) ListByLeague(_ context.Context, leagueID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0)
	for _, m := range r.items {
		if m.LeagueID == leagueID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *MembershipRepository) Create(_ context.Context, m membership.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[membershipKey(m.LeagueID, m.UserID)] = m
	return nil
}

func (r *MembershipRepository) Delete(_ context.Context, leagueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, membershipKey(leagueID, userID))
	return nil
}

func (r *MembershipRepository) GetRequest(_ context.Context, leagueID, userID string) (membership.JoinRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[membershipKey(leagueID, userID)]
	return req, ok, nil
}

func (r *MembershipRepository) ListPendingRequests(_ context.Context, leagueID string) ([]membership.JoinRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.JoinRequest, 0)
	for _, req := range r.requests {
		if req.LeagueID == leagueID && req.Status == membership.RequestPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *MembershipRepository) UpsertRequest(_ context.Context, req membership.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[membershipKey(req.LeagueID, req.UserID)] = req
	return nil
}

func (r *MembershipRepository) leagueIDsForUser(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, m := range r.items {
		if m.UserID == userID {
			out = append(out, m.LeagueID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func membershipKey(leagueID, userID string) string {
	return leagueID + "::" + userID
}
