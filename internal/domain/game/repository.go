package game

import "context"

// Repository exposes game read/write operations. Writes happen only on the
// ingestion and admin-override paths.
type Repository interface {
	GetByID(ctx context.Context, id string) (Game, bool, error)
	ListByCompetitionAndWeek(ctx context.Context, competitionID string, week int) ([]Game, error)
	ListByIDs(ctx context.Context, ids []string) ([]Game, error)
	Upsert(ctx context.Context, g Game) error
	SetManualOverride(ctx context.Context, id string, override *Status) error
}
