package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

// MembershipRepository stores league memberships plus the join-request queue
// used by approval-gated leagues.
type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Get(ctx context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return mapMembershipRow(row), true, nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, leagueID string) ([]membership.Membership, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMembershipRow(row))
	}
	return out, nil
}

func (r *MembershipRepository) Create(ctx context.Context, m membership.Membership) error {
	model := membershipTableModel{
		LeagueID:  m.LeagueID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		JoinedAt:  m.JoinedAt,
		UpdatedAt: m.UpdatedAt,
	}
	query, args, err := qb.InsertModel("memberships", model, "")
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, leagueID, userID string) error {
	query, args, err := qb.DeleteFrom("memberships").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) GetRequest(ctx context.Context, leagueID, userID string) (membership.JoinRequest, bool, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return membership.JoinRequest{}, false, fmt.Errorf("build get join request query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.JoinRequest{}, false, nil
		}
		return membership.JoinRequest{}, false, fmt.Errorf("get join request: %w", err)
	}

	return mapJoinRequestRow(row), true, nil
}

func (r *MembershipRepository) ListPendingRequests(ctx context.Context, leagueID string) ([]membership.JoinRequest, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", string(membership.RequestPending)),
		).
		OrderBy("created_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending join requests query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending join requests: %w", err)
	}

	out := make([]membership.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapJoinRequestRow(row))
	}
	return out, nil
}

func (r *MembershipRepository) UpsertRequest(ctx context.Context, req membership.JoinRequest) error {
	model := joinRequestTableModel{
		LeagueID:  req.LeagueID,
		UserID:    req.UserID,
		Status:    string(req.Status),
		DecidedBy: req.DecidedBy,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	query, args, err := qb.InsertModel("join_requests", model, `ON CONFLICT (league_id, user_id)
DO UPDATE SET
    status = EXCLUDED.status,
    decided_by = EXCLUDED.decided_by,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert join request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert join request: %w", err)
	}
	return nil
}

func mapMembershipRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		LeagueID:  row.LeagueID,
		UserID:    row.UserID,
		Role:      membership.Role(row.Role),
		JoinedAt:  row.JoinedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapJoinRequestRow(row joinRequestTableModel) membership.JoinRequest {
	return membership.JoinRequest{
		LeagueID:  row.LeagueID,
		UserID:    row.UserID,
		Status:    membership.RequestStatus(row.Status),
		DecidedBy: row.DecidedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
