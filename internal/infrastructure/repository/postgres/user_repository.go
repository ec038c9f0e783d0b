package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/domain/user"
	qb "github.com/riskibarqy/survivor-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return mapUserRow(row), true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Expr("LOWER(email) = LOWER(?)", email)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by email query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}

	return mapUserRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	model := userTableModel{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	query, args, err := qb.InsertModel("users", model, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query, args, err := qb.Update("users").
		Set("password_hash", passwordHash).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user password query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func mapUserRow(row userTableModel) user.User {
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
		Role:         user.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
