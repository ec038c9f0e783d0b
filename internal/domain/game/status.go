package game

import "time"

// DefaultCompletionBuffer is how long after kickoff a game is still shown as
// in progress when the feed has not confirmed a final score. Competitions may
// override it per sport (an NFL game runs longer than a football match).
const DefaultCompletionBuffer = 150 * time.Minute

// EffectiveStatus computes the status a game should present at the given
// instant, using the default completion buffer.
func (g Game) EffectiveStatus(now time.Time) Status {
	return g.EffectiveStatusWithBuffer(now, DefaultCompletionBuffer)
}

// EffectiveStatusWithBuffer is EffectiveStatus with an explicit completion
// buffer. Precedence:
//
//  1. A manual override wins unconditionally, in either direction.
//  2. A stored completed status is trusted as-is. A confirmed final result
//     must never be reopened, even when the kickoff time was since cleared
//     or still sits in the future (stale feed data).
//  3. With no time information at all, fall back to the stored status.
//  4. Otherwise the wall clock decides: past kickoff+buffer is completed,
//     past kickoff is in progress, anything else has not started.
//
// Exactly at kickoff the game is in progress; exactly at kickoff+buffer it is
// still in progress. Both flips require the clock to strictly pass the mark.
func (g Game) EffectiveStatusWithBuffer(now time.Time, buffer time.Duration) Status {
	if g.ManualOverride != nil {
		return *g.ManualOverride
	}
	if g.Status == StatusCompleted {
		return StatusCompleted
	}

	kickoff := g.kickoff()
	if kickoff == nil {
		if g.Status == "" {
			return StatusNotStarted
		}
		return g.Status
	}

	if buffer <= 0 {
		buffer = DefaultCompletionBuffer
	}
	switch {
	case now.After(kickoff.Add(buffer)):
		return StatusCompleted
	case !now.Before(*kickoff):
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// CanPick reports whether a team may be selected from this game: only games
// that have not started are pickable.
func (g Game) CanPick(now time.Time) bool {
	return g.EffectiveStatus(now) == StatusNotStarted
}

// CanPickWithBuffer is CanPick under a competition-specific completion buffer.
func (g Game) CanPickWithBuffer(now time.Time, buffer time.Duration) bool {
	return g.EffectiveStatusWithBuffer(now, buffer) == StatusNotStarted
}

// CanChangePick reports whether an existing pick referencing this game may
// still be swapped out. The check is purely time-based against the originally
// picked game's kickoff, not status-based, so a manual override or a stale
// stored status on the old game cannot trap a user. Missing time data fails
// open: a broken schedule must not lock anyone out.
func (g Game) CanChangePick(now time.Time) bool {
	kickoff := g.kickoff()
	if kickoff == nil {
		return true
	}
	return !now.After(*kickoff)
}
