package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Pick-flow rejections. Handlers map these to user-facing messages; the
// eligibility rules themselves only ever return booleans.
var (
	ErrPicksLocked     = errors.New("picks are locked for the current gameweek")
	ErrGameUnavailable = errors.New("game is no longer open for picking")
	ErrTeamAlreadyUsed = errors.New("team was already used this season")
	ErrEliminated      = errors.New("member is eliminated")
)
