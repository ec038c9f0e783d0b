package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	return mapGameRow(row), true, nil
}

func (r *GameRepository) ListByCompetitionAndWeek(ctx context.Context, competitionID string, week int) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("week", week),
		).
		OrderBy("start_time NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out, nil
}

func (r *GameRepository) ListByIDs(ctx context.Context, ids []string) ([]game.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("games").
		Where(qb.In("id", values)).
		OrderBy("start_time NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by ids query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by ids: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, g game.Game) error {
	var override *string
	if g.ManualOverride != nil {
		v := string(*g.ManualOverride)
		override = &v
	}

	model := gameTableModel{
		ID:             g.ID,
		CompetitionID:  g.CompetitionID,
		Season:         g.Season,
		Week:           g.Week,
		HomeTeam:       g.HomeTeam,
		AwayTeam:       g.AwayTeam,
		HomeTeamID:     g.HomeTeamID,
		AwayTeamID:     g.AwayTeamID,
		HomeScore:      ptrToNullInt(g.HomeScore),
		AwayScore:      ptrToNullInt(g.AwayScore),
		Status:         string(g.Status),
		ManualOverride: ptrToNullString(override),
		StartTime:      ptrToNullTime(g.StartTime),
		GameDate:       ptrToNullTime(g.Date),
		WinnerTeamID:   g.WinnerTeamID,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}

	query, args, err := qb.InsertModel("games", model, `ON CONFLICT (id)
DO UPDATE SET
    competition_id = EXCLUDED.competition_id,
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    manual_override = EXCLUDED.manual_override,
    start_time = EXCLUDED.start_time,
    game_date = EXCLUDED.game_date,
    winner_team_id = EXCLUDED.winner_team_id,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}

func (r *GameRepository) SetManualOverride(ctx context.Context, id string, override *game.Status) error {
	var value *string
	if override != nil {
		v := string(*override)
		value = &v
	}

	query, args, err := qb.Update("games").
		Set("manual_override", ptrToNullString(value)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set game override query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set game override: %w", err)
	}
	return nil
}

func mapGameRow(row gameTableModel) game.Game {
	var override *game.Status
	if raw := nullStringToPtr(row.ManualOverride); raw != nil {
		v := game.Status(*raw)
		override = &v
	}

	return game.Game{
		ID:             row.ID,
		CompetitionID:  row.CompetitionID,
		Season:         row.Season,
		Week:           row.Week,
		HomeTeam:       row.HomeTeam,
		AwayTeam:       row.AwayTeam,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		HomeScore:      nullIntToPtr(row.HomeScore),
		AwayScore:      nullIntToPtr(row.AwayScore),
		Status:         game.Status(row.Status),
		ManualOverride: override,
		StartTime:      nullTimeToPtr(row.StartTime),
		Date:           nullTimeToPtr(row.GameDate),
		WinnerTeamID:   row.WinnerTeamID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
