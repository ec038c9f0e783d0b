package postgres

import "time"

type pickTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	UserID    string    `db:"user_id"`
	Week      int       `db:"week"`
	GameID    string    `db:"game_id"`
	TeamID    string    `db:"team_id"`
	TeamName  string    `db:"team_name"`
	Result    string    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
