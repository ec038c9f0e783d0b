package competition

import (
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/game"
)

// Competition is a real-world competition season games are scheduled under
// (EPL 2025/26, NFL 2025, ...).
type Competition struct {
	ID     string
	Name   string
	Sport  string
	Season string
	// Code is the identifier the score feed knows this competition by.
	Code string
	// CompletionBufferMinutes overrides the default post-kickoff window used
	// when the feed has not confirmed a final score. Zero means default.
	CompletionBufferMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// CompletionBuffer resolves the effective buffer for status computation.
func (c Competition) CompletionBuffer() time.Duration {
	if c.CompletionBufferMinutes <= 0 {
		return game.DefaultCompletionBuffer
	}
	return time.Duration(c.CompletionBufferMinutes) * time.Minute
}
