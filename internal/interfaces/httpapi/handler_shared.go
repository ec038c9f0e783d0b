package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/pick"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	"github.com/riskibarqy/survivor-league/internal/domain/user"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type userDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type sessionDTO struct {
	User         userDTO `json:"user"`
	Token        string  `json:"token"`
	ExpiresAtUTC string  `json:"expiresAtUtc"`
}

type competitionDTO struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Sport                   string `json:"sport"`
	Season                  string `json:"season"`
	Code                    string `json:"code"`
	CompletionBufferMinutes int    `json:"completionBufferMinutes"`
}

type leagueDTO struct {
	ID               string `json:"id"`
	CompetitionID    string `json:"competitionId"`
	Season           string `json:"season"`
	Name             string `json:"name"`
	OwnerUserID      string `json:"ownerUserId"`
	InviteCode       string `json:"inviteCode"`
	CurrentPickWeek  int    `json:"currentPickWeek"`
	CurrentGameWeek  int    `json:"currentGameWeek"`
	MaxStrikes       int    `json:"maxStrikes"`
	DrawCountsAsLoss bool   `json:"drawCountsAsLoss"`
	RequireApproval  bool   `json:"requireApproval"`
	GameweekStarted  bool   `json:"gameweekStarted"`
	CreatedAtUTC     string `json:"createdAtUtc"`
}

type membershipDTO struct {
	LeagueID    string `json:"leagueId"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	JoinedAtUTC string `json:"joinedAtUtc"`
}

type joinRequestDTO struct {
	LeagueID     string `json:"leagueId"`
	UserID       string `json:"userId"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type gameDTO struct {
	ID             string  `json:"id"`
	CompetitionID  string  `json:"competitionId"`
	Season         string  `json:"season"`
	Week           int     `json:"week"`
	HomeTeam       string  `json:"homeTeam"`
	AwayTeam       string  `json:"awayTeam"`
	HomeTeamID     string  `json:"homeTeamId"`
	AwayTeamID     string  `json:"awayTeamId"`
	HomeScore      *int    `json:"homeScore"`
	AwayScore      *int    `json:"awayScore"`
	Status         string  `json:"status"`
	StoredStatus   string  `json:"storedStatus"`
	ManualOverride *string `json:"manualOverride"`
	KickoffAtUTC   string  `json:"kickoffAtUtc"`
	WinnerTeamID   string  `json:"winnerTeamId"`
	CanPick        bool    `json:"canPick"`
}

type pickDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"leagueId"`
	UserID       string `json:"userId"`
	Week         int    `json:"week"`
	GameID       string `json:"gameId"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Result       string `json:"result"`
	UpdatedAtUTC string `json:"updatedAtUtc"`
}

type pickStateDTO struct {
	Week            int      `json:"week"`
	Pick            *pickDTO `json:"pick"`
	GameweekStarted bool     `json:"gameweekStarted"`
	Locked          bool     `json:"locked"`
	ChangesDisabled bool     `json:"changesDisabled"`
	FirstPickOpen   bool     `json:"firstPickOpen"`
}

type standingDTO struct {
	LeagueID   string `json:"leagueId"`
	UserID     string `json:"userId"`
	Points     int    `json:"points"`
	Strikes    int    `json:"strikes"`
	Eliminated bool   `json:"eliminated"`
}

func userToDTO(ctx context.Context, v user.User) userDTO {
	ctx, span := startSpan(ctx, "httpapi.userToDTO")
	defer span.End()

	return userDTO{
		ID:           v.ID,
		Email:        v.Email,
		DisplayName:  v.DisplayName,
		Role:         string(v.Role),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func competitionToDTO(ctx context.Context, v competition.Competition) competitionDTO {
	ctx, span := startSpan(ctx, "httpapi.competitionToDTO")
	defer span.End()

	return competitionDTO{
		ID:                      v.ID,
		Name:                    v.Name,
		Sport:                   v.Sport,
		Season:                  v.Season,
		Code:                    v.Code,
		CompletionBufferMinutes: v.CompletionBufferMinutes,
	}
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:               v.ID,
		CompetitionID:    v.CompetitionID,
		Season:           v.Season,
		Name:             v.Name,
		OwnerUserID:      v.OwnerUserID,
		InviteCode:       v.InviteCode,
		CurrentPickWeek:  v.CurrentPickWeek,
		CurrentGameWeek:  v.CurrentGameWeek,
		MaxStrikes:       v.MaxStrikes,
		DrawCountsAsLoss: v.DrawCountsAsLoss,
		RequireApproval:  v.RequireApproval,
		GameweekStarted:  v.GameweekStarted(),
		CreatedAtUTC:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func membershipToDTO(ctx context.Context, v membership.Membership) membershipDTO {
	ctx, span := startSpan(ctx, "httpapi.membershipToDTO")
	defer span.End()

	return membershipDTO{
		LeagueID:    v.LeagueID,
		UserID:      v.UserID,
		Role:        string(v.Role),
		JoinedAtUTC: v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func joinRequestToDTO(ctx context.Context, v membership.JoinRequest) joinRequestDTO {
	ctx, span := startSpan(ctx, "httpapi.joinRequestToDTO")
	defer span.End()

	return joinRequestDTO{
		LeagueID:     v.LeagueID,
		UserID:       v.UserID,
		Status:       string(v.Status),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func gameViewToDTO(ctx context.Context, v usecase.GameView) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameViewToDTO")
	defer span.End()

	kickoff := ""
	if v.StartTime != nil {
		kickoff = v.StartTime.UTC().Format(time.RFC3339)
	} else if v.Date != nil {
		kickoff = v.Date.UTC().Format(time.RFC3339)
	}

	var override *string
	if v.ManualOverride != nil {
		value := string(*v.ManualOverride)
		override = &value
	}

	return gameDTO{
		ID:             v.ID,
		CompetitionID:  v.CompetitionID,
		Season:         v.Season,
		Week:           v.Week,
		HomeTeam:       v.HomeTeam,
		AwayTeam:       v.AwayTeam,
		HomeTeamID:     v.HomeTeamID,
		AwayTeamID:     v.AwayTeamID,
		HomeScore:      v.HomeScore,
		AwayScore:      v.AwayScore,
		Status:         string(v.EffectiveStatus),
		StoredStatus:   string(v.Game.Status),
		ManualOverride: override,
		KickoffAtUTC:   kickoff,
		WinnerTeamID:   v.WinnerTeamID,
		CanPick:        v.CanPick,
	}
}

func pickToDTO(ctx context.Context, v pick.Pick) pickDTO {
	ctx, span := startSpan(ctx, "httpapi.pickToDTO")
	defer span.End()

	return pickDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		UserID:       v.UserID,
		Week:         v.Week,
		GameID:       v.GameID,
		TeamID:       v.TeamID,
		TeamName:     v.TeamName,
		Result:       string(v.Result),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func pickStateToDTO(ctx context.Context, v usecase.PickState) pickStateDTO {
	ctx, span := startSpan(ctx, "httpapi.pickStateToDTO")
	defer span.End()

	dto := pickStateDTO{
		Week:            v.Week,
		GameweekStarted: v.GameweekStarted,
		Locked:          v.Locked,
		ChangesDisabled: v.ChangesDisabled,
		FirstPickOpen:   v.FirstPickOpen,
	}
	if v.HasPick {
		item := pickToDTO(ctx, v.Pick)
		dto.Pick = &item
	}

	return dto
}

func standingToDTO(ctx context.Context, v standing.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		LeagueID:   v.LeagueID,
		UserID:     v.UserID,
		Points:     v.Points,
		Strikes:    v.Strikes,
		Eliminated: v.Eliminated,
	}
}
