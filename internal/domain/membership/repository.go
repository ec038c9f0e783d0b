package membership

import "context"

type Repository interface {
	Get(ctx context.Context, leagueID, userID string) (Membership, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Membership, error)
	Create(ctx context.Context, m Membership) error
	Delete(ctx context.Context, leagueID, userID string) error

	GetRequest(ctx context.Context, leagueID, userID string) (JoinRequest, bool, error)
	ListPendingRequests(ctx context.Context, leagueID string) ([]JoinRequest, error)
	UpsertRequest(ctx context.Context, r JoinRequest) error
}
