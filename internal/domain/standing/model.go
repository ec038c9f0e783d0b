package standing

import "time"

// Standing is one member's running score inside a league: survival points,
// strikes accrued on losing picks, and the elimination flag.
type Standing struct {
	LeagueID   string
	UserID     string
	Points     int
	Strikes    int
	Eliminated bool
	UpdatedAt  time.Time
}

// ApplyResult folds one settled pick outcome into the standing.
// A win scores a point; a loss (or a draw when the league counts draws as
// losses) adds a strike, eliminating the member once maxStrikes is reached.
func (s Standing) ApplyResult(won, lost bool, maxStrikes int) Standing {
	switch {
	case won:
		s.Points++
	case lost:
		s.Strikes++
		if maxStrikes > 0 && s.Strikes >= maxStrikes {
			s.Eliminated = true
		}
	}
	return s
}
