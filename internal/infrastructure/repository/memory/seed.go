package memory

import (
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
)

const (
	CompetitionIDPremierLeague = "eng-premier-league-2025"
	CompetitionIDNFL           = "usa-nfl-2025"
)

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:     CompetitionIDPremierLeague,
			Name:   "Premier League",
			Sport:  "football",
			Season: "2025/2026",
			Code:   "epl",
		},
		{
			ID:     CompetitionIDNFL,
			Name:   "NFL",
			Sport:  "american-football",
			Season: "2025",
			Code:   "nfl",
			// NFL finals confirm slowly, so give the feed a wider window.
			CompletionBufferMinutes: 240,
		},
	}
}

// SeedGames returns two weeks of Premier League fixtures anchored on the
// given kickoff day. Week 1 kicks off on day zero, week 2 seven days later.
func SeedGames(kickoffDay time.Time) []game.Game {
	kickoffDay = kickoffDay.UTC().Truncate(24 * time.Hour)
	at := func(day int, hour, minute int) *time.Time {
		t := kickoffDay.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		return &t
	}

	return []game.Game{
		{
			ID: "epl-w1-ars-liv", CompetitionID: CompetitionIDPremierLeague, Season: "2025/2026", Week: 1,
			HomeTeamID: "eng-ars", HomeTeam: "Arsenal", AwayTeamID: "eng-liv", AwayTeam: "Liverpool",
			Status: game.StatusNotStarted, StartTime: at(0, 12, 0),
		},
		{
			ID: "epl-w1-mci-che", CompetitionID: CompetitionIDPremierLeague, Season: "2025/2026", Week: 1,
			HomeTeamID: "eng-mci", HomeTeam: "Manchester City", AwayTeamID: "eng-che", AwayTeam: "Chelsea",
			Status: game.StatusNotStarted, StartTime: at(0, 15, 0),
		},
		{
			ID: "epl-w1-tot-mun", CompetitionID: CompetitionIDPremierLeague, Season: "2025/2026", Week: 1,
			HomeTeamID: "eng-tot", HomeTeam: "Tottenham", AwayTeamID: "eng-mun", AwayTeam: "Manchester United",
			Status: game.StatusNotStarted, StartTime: at(1, 14, 0),
		},
		{
			ID: "epl-w2-liv-mci", CompetitionID: CompetitionIDPremierLeague, Season: "2025/2026", Week: 2,
			HomeTeamID: "eng-liv", HomeTeam: "Liverpool", AwayTeamID: "eng-mci", AwayTeam: "Manchester City",
			Status: game.StatusNotStarted, StartTime: at(7, 12, 0),
		},
		{
			ID: "epl-w2-che-ars", CompetitionID: CompetitionIDPremierLeague, Season: "2025/2026", Week: 2,
			HomeTeamID: "eng-che", HomeTeam: "Chelsea", AwayTeamID: "eng-ars", AwayTeam: "Arsenal",
			Status: game.StatusNotStarted, StartTime: at(7, 15, 0),
		},
	}
}
