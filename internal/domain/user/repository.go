package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	Create(ctx context.Context, u User) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
