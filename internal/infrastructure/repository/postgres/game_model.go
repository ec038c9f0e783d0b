package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID             string         `db:"id"`
	CompetitionID  string         `db:"competition_id"`
	Season         string         `db:"season"`
	Week           int            `db:"week"`
	HomeTeam       string         `db:"home_team"`
	AwayTeam       string         `db:"away_team"`
	HomeTeamID     string         `db:"home_team_id"`
	AwayTeamID     string         `db:"away_team_id"`
	HomeScore      sql.NullInt64  `db:"home_score"`
	AwayScore      sql.NullInt64  `db:"away_score"`
	Status         string         `db:"status"`
	ManualOverride sql.NullString `db:"manual_override"`
	StartTime      sql.NullTime   `db:"start_time"`
	GameDate       sql.NullTime   `db:"game_date"`
	WinnerTeamID   string         `db:"winner_team_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
