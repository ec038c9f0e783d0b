package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/pick"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetByUserAndWeek(ctx context.Context, leagueID, userID string, week int) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("user_id", userID),
			qb.Eq("week", week),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return mapPickRow(row), true, nil
}

func (r *PickRepository) ListByUser(ctx context.Context, leagueID, userID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		OrderBy("week", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by user query: %w", err)
	}

	return r.selectPicks(ctx, query, args)
}

func (r *PickRepository) ListByWeek(ctx context.Context, leagueID string, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("week", week)).
		OrderBy("week", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by week query: %w", err)
	}

	return r.selectPicks(ctx, query, args)
}

func (r *PickRepository) selectPicks(ctx context.Context, query string, args []any) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPickRow(row))
	}
	return out, nil
}

func (r *PickRepository) Upsert(ctx context.Context, p pick.Pick) error {
	model := pickTableModel{
		ID:        p.ID,
		LeagueID:  p.LeagueID,
		UserID:    p.UserID,
		Week:      p.Week,
		GameID:    p.GameID,
		TeamID:    p.TeamID,
		TeamName:  p.TeamName,
		Result:    string(p.Result),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	query, args, err := qb.InsertModel("picks", model, `ON CONFLICT (league_id, user_id, week)
DO UPDATE SET
    game_id = EXCLUDED.game_id,
    team_id = EXCLUDED.team_id,
    team_name = EXCLUDED.team_name,
    result = EXCLUDED.result,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) SetResult(ctx context.Context, id string, result pick.Result) error {
	query, args, err := qb.Update("picks").
		Set("result", string(result)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set pick result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set pick result: %w", err)
	}
	return nil
}

func mapPickRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		UserID:    row.UserID,
		Week:      row.Week,
		GameID:    row.GameID,
		TeamID:    row.TeamID,
		TeamName:  row.TeamName,
		Result:    pick.Result(row.Result),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
