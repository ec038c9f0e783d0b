package league

import (
	"fmt"
	"time"
)

// League is one survivor pool, scoped to a competition season. The two week
// pointers drive pick locking: CurrentPickWeek is the week open for picking,
// CurrentGameWeek is the week being played.
type League struct {
	ID               string
	CompetitionID    string
	Season           string
	Name             string
	OwnerUserID      string
	InviteCode       string
	CurrentPickWeek  int
	CurrentGameWeek  int
	MaxStrikes       int
	DrawCountsAsLoss bool
	RequireApproval  bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.CompetitionID == "" {
		return fmt.Errorf("league competition id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.OwnerUserID == "" {
		return fmt.Errorf("league owner is required")
	}
	if l.MaxStrikes < 1 {
		return fmt.Errorf("league max strikes must be >= 1")
	}
	if l.CurrentPickWeek < 0 || l.CurrentGameWeek < 0 {
		return fmt.Errorf("league week pointers cannot be negative")
	}

	return nil
}

// GameweekStarted reports whether the week open for picking is the week
// currently being played. A zero pointer means no week is configured yet and
// never counts as started.
func (l League) GameweekStarted() bool {
	return l.CurrentPickWeek > 0 && l.CurrentPickWeek == l.CurrentGameWeek
}
