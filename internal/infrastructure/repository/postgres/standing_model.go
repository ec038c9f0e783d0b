package postgres

import "time"

type standingTableModel struct {
	LeagueID   string    `db:"league_id"`
	UserID     string    `db:"user_id"`
	Points     int       `db:"points"`
	Strikes    int       `db:"strikes"`
	Eliminated bool      `db:"eliminated"`
	UpdatedAt  time.Time `db:"updated_at"`
}
