package standing

import "context"

type Repository interface {
	Get(ctx context.Context, leagueID, userID string) (Standing, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Standing, error)
	Upsert(ctx context.Context, s Standing) error
}
