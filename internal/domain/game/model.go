package game

import (
	"strings"
	"time"
)

// Status is a game's lifecycle status as stored and as displayed.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ResultDraw et al. describe the outcome of a pick against a finished game.
const (
	OutcomeHomeWin = "home"
	OutcomeAwayWin = "away"
	OutcomeDraw    = "draw"
	OutcomeUnknown = ""
)

// Game is one scheduled match inside a competition week. Schedule and score
// fields are owned by the ingestion path; the rest of the system reads them.
type Game struct {
	ID             string
	CompetitionID  string
	Season         string
	Week           int
	HomeTeam       string
	AwayTeam       string
	HomeTeamID     string
	AwayTeamID     string
	HomeScore      *int
	AwayScore      *int
	Status         Status
	ManualOverride *Status
	StartTime      *time.Time
	Date           *time.Time
	WinnerTeamID   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NormalizeStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusInProgress:
		return StatusInProgress
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

func IsValidStatus(value string) bool {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// kickoff returns the instant used for time-based status decisions.
// StartTime wins; Date is the secondary field kept for older schedule rows.
func (g Game) kickoff() *time.Time {
	if g.StartTime != nil {
		return g.StartTime
	}
	return g.Date
}

// Outcome resolves the final result of a game from its scores. It only means
// anything for games whose effective status is completed.
func (g Game) Outcome() string {
	if g.HomeScore == nil || g.AwayScore == nil {
		return OutcomeUnknown
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return OutcomeHomeWin
	case *g.AwayScore > *g.HomeScore:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}
