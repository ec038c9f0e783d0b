package competition

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Competition, bool, error)
	List(ctx context.Context) ([]Competition, error)
}
