package pick

import "context"

type Repository interface {
	GetByUserAndWeek(ctx context.Context, leagueID, userID string, week int) (Pick, bool, error)
	ListByUser(ctx context.Context, leagueID, userID string) ([]Pick, error)
	ListByWeek(ctx context.Context, leagueID string, week int) ([]Pick, error)
	Upsert(ctx context.Context, p Pick) error
	SetResult(ctx context.Context, id string, result Result) error
}
