package league

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (League, bool, error)
	GetByInviteCode(ctx context.Context, code string) (League, bool, error)
	ListByUser(ctx context.Context, userID string) ([]League, error)
	Create(ctx context.Context, l League) error
	Update(ctx context.Context, l League) error
}
