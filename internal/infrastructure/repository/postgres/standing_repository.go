package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) Get(ctx context.Context, leagueID, userID string) (standing.Standing, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("get standing: %w", err)
	}

	return mapStandingRow(row), true, nil
}

func (r *StandingRepository) ListByLeague(ctx context.Context, leagueID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("points DESC", "strikes", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapStandingRow(row))
	}
	return out, nil
}

func (r *StandingRepository) Upsert(ctx context.Context, s standing.Standing) error {
	model := standingTableModel{
		LeagueID:   s.LeagueID,
		UserID:     s.UserID,
		Points:     s.Points,
		Strikes:    s.Strikes,
		Eliminated: s.Eliminated,
		UpdatedAt:  s.UpdatedAt,
	}
	query, args, err := qb.InsertModel("standings", model, `ON CONFLICT (league_id, user_id)
DO UPDATE SET
    points = EXCLUDED.points,
    strikes = EXCLUDED.strikes,
    eliminated = EXCLUDED.eliminated,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standing: %w", err)
	}
	return nil
}

func mapStandingRow(row standingTableModel) standing.Standing {
	return standing.Standing{
		LeagueID:   row.LeagueID,
		UserID:     row.UserID,
		Points:     row.Points,
		Strikes:    row.Strikes,
		Eliminated: row.Eliminated,
		UpdatedAt:  row.UpdatedAt,
	}
}
