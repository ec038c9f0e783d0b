package pick

import "time"

// Result is the settled outcome of a weekly pick.
type Result string

const (
	ResultUnset Result = "unset"
	ResultWin   Result = "win"
	ResultLoss  Result = "loss"
	ResultDraw  Result = "draw"
)

// Pick is one user's team selection for one week inside a league.
type Pick struct {
	ID        string
	LeagueID  string
	UserID    string
	Week      int
	GameID    string
	TeamID    string
	TeamName  string
	Result    Result
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether a user's picks for the active week can no longer be
// touched: the gameweek has started and the user already holds a pick.
func Locked(gameweekStarted, hasPick bool) bool {
	return gameweekStarted && hasPick
}

// FirstPickAllowed is the late-joiner carve-out: a user with no pick yet may
// still make a first selection after the gameweek starts, constrained by the
// chosen game itself not having kicked off.
func FirstPickAllowed(gameweekStarted, hasPick bool) bool {
	return gameweekStarted && !hasPick
}

// ChangesDisabled mirrors Locked for call sites that gate the change flow
// rather than the whole pick surface.
func ChangesDisabled(gameweekStarted, hasPick bool) bool {
	return Locked(gameweekStarted, hasPick)
}
