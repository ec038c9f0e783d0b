package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return mapLeagueRow(row), true, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Expr("UPPER(invite_code) = UPPER(?)", code)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by invite code query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by invite code: %w", err)
	}

	return mapLeagueRow(row), true, nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Expr("id IN (SELECT league_id FROM memberships WHERE user_id = ?)", userID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by user query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLeagueRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	query, args, err := qb.InsertModel("leagues", mapLeagueModel(l), "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", l.Name).
		Set("invite_code", l.InviteCode).
		Set("current_pick_week", l.CurrentPickWeek).
		Set("current_game_week", l.CurrentGameWeek).
		Set("max_strikes", l.MaxStrikes).
		Set("draw_counts_as_loss", l.DrawCountsAsLoss).
		Set("require_approval", l.RequireApproval).
		Set("updated_at", l.UpdatedAt).
		Where(qb.Eq("id", l.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	return nil
}

func mapLeagueModel(l league.League) leagueTableModel {
	return leagueTableModel{
		ID:               l.ID,
		CompetitionID:    l.CompetitionID,
		Season:           l.Season,
		Name:             l.Name,
		OwnerUserID:      l.OwnerUserID,
		InviteCode:       l.InviteCode,
		CurrentPickWeek:  l.CurrentPickWeek,
		CurrentGameWeek:  l.CurrentGameWeek,
		MaxStrikes:       l.MaxStrikes,
		DrawCountsAsLoss: l.DrawCountsAsLoss,
		RequireApproval:  l.RequireApproval,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func mapLeagueRow(row leagueTableModel) league.League {
	return league.League{
		ID:               row.ID,
		CompetitionID:    row.CompetitionID,
		Season:           row.Season,
		Name:             row.Name,
		OwnerUserID:      row.OwnerUserID,
		InviteCode:       row.InviteCode,
		CurrentPickWeek:  row.CurrentPickWeek,
		CurrentGameWeek:  row.CurrentGameWeek,
		MaxStrikes:       row.MaxStrikes,
		DrawCountsAsLoss: row.DrawCountsAsLoss,
		RequireApproval:  row.RequireApproval,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
