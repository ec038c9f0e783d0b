package postgres

import "time"

type membershipTableModel struct {
	LeagueID  string    `db:"league_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type joinRequestTableModel struct {
	LeagueID  string    `db:"league_id"`
	UserID    string    `db:"user_id"`
	Status    string    `db:"status"`
	DecidedBy string    `db:"decided_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
