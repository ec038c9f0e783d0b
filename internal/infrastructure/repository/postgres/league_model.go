package postgres

import "time"

type leagueTableModel struct {
	ID               string    `db:"id"`
	CompetitionID    string    `db:"competition_id"`
	Season           string    `db:"season"`
	Name             string    `db:"name"`
	OwnerUserID      string    `db:"owner_user_id"`
	InviteCode       string    `db:"invite_code"`
	CurrentPickWeek  int       `db:"current_pick_week"`
	CurrentGameWeek  int       `db:"current_game_week"`
	MaxStrikes       int       `db:"max_strikes"`
	DrawCountsAsLoss bool      `db:"draw_counts_as_loss"`
	RequireApproval  bool      `db:"require_approval"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
