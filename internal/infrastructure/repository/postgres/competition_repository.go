package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	return mapCompetitionRow(row), true, nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCompetitionRow(row))
	}
	return out, nil
}

func mapCompetitionRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:                      row.ID,
		Name:                    row.Name,
		Sport:                   row.Sport,
		Season:                  row.Season,
		Code:                    row.Code,
		CompletionBufferMinutes: row.CompletionBufferMinutes,
		CreatedAt:               row.CreatedAt,
		UpdatedAt:               row.UpdatedAt,
	}
}
