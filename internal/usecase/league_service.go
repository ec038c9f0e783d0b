package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	idgen "github.com/riskibarqy/survivor-league/internal/platform/id"
)

const inviteCodeLength = 8

type CreateLeagueInput struct {
	OwnerUserID      string
	CompetitionID    string
	Name             string
	MaxStrikes       int
	DrawCountsAsLoss bool
	RequireApproval  bool
}

type UpdateLeagueSettingsInput struct {
	LeagueID         string
	AdminUserID      string
	Name             string
	MaxStrikes       int
	DrawCountsAsLoss bool
	RequireApproval  bool
}

type LeagueService struct {
	leagueRepo      league.Repository
	competitionRepo competition.Repository
	membershipRepo  membership.Repository
	standingRepo    standing.Repository
	idGen           idgen.Generator
	now             func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	competitionRepo competition.Repository,
	membershipRepo membership.Repository,
	standingRepo standing.Repository,
	idGen idgen.Generator,
) *LeagueService {
	return &LeagueService{
		leagueRepo:      leagueRepo,
		competitionRepo: competitionRepo,
		membershipRepo:  membershipRepo,
		standingRepo:    standingRepo,
		idGen:           idGen,
		now:             time.Now,
	}
}

func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	input.OwnerUserID = strings.TrimSpace(input.OwnerUserID)
	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerUserID == "" {
		return league.League{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.MaxStrikes < 1 {
		input.MaxStrikes = 1
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, input.CompetitionID)
	if err != nil {
		return league.League{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: competition=%s", ErrNotFound, input.CompetitionID)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := s.idGen.NewShortCode(inviteCodeLength)
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:               leagueID,
		CompetitionID:    comp.ID,
		Season:           comp.Season,
		Name:             input.Name,
		OwnerUserID:      input.OwnerUserID,
		InviteCode:       inviteCode,
		CurrentPickWeek:  1,
		CurrentGameWeek:  0,
		MaxStrikes:       input.MaxStrikes,
		DrawCountsAsLoss: input.DrawCountsAsLoss,
		RequireApproval:  input.RequireApproval,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	// The owner joins as league admin with an empty standing.
	if err := s.membershipRepo.Create(ctx, membership.Membership{
		LeagueID:  l.ID,
		UserID:    input.OwnerUserID,
		Role:      membership.RoleAdmin,
		JoinedAt:  now,
		UpdatedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("create owner membership: %w", err)
	}
	if err := s.standingRepo.Upsert(ctx, standing.Standing{
		LeagueID:  l.ID,
		UserID:    input.OwnerUserID,
		UpdatedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("create owner standing: %w", err)
	}

	return l, nil
}

func (s *LeagueService) GetForMember(ctx context.Context, leagueID, userID string) (league.League, membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetForMember")
	defer span.End()

	l, m, err := s.requireMembership(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, membership.Membership{}, err
	}

	return l, m, nil
}

func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	leagues, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) UpdateSettings(ctx context.Context, input UpdateLeagueSettingsInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateSettings")
	defer span.End()

	l, err := s.requireLeagueAdmin(ctx, input.LeagueID, input.AdminUserID)
	if err != nil {
		return league.League{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name != "" {
		l.Name = name
	}
	if input.MaxStrikes >= 1 {
		l.MaxStrikes = input.MaxStrikes
	}
	l.DrawCountsAsLoss = input.DrawCountsAsLoss
	l.RequireApproval = input.RequireApproval
	l.UpdatedAt = s.now().UTC()

	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Update(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return l, nil
}

// AdvancePickWeek opens the next week for picking. Only allowed once the
// current gameweek has started; otherwise the pick pointer would run two
// weeks ahead of play.
func (s *LeagueService) AdvancePickWeek(ctx context.Context, leagueID, adminUserID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AdvancePickWeek")
	defer span.End()

	l, err := s.requireLeagueAdmin(ctx, leagueID, adminUserID)
	if err != nil {
		return league.League{}, err
	}

	if !l.GameweekStarted() {
		return league.League{}, fmt.Errorf("%w: current gameweek has not started yet", ErrConflict)
	}

	l.CurrentPickWeek++
	l.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return l, nil
}

// BeginGameweek marks the pick week as the week now being played, which locks
// existing picks (first-time pickers keep their carve-out).
func (s *LeagueService) BeginGameweek(ctx context.Context, leagueID, adminUserID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.BeginGameweek")
	defer span.End()

	l, err := s.requireLeagueAdmin(ctx, leagueID, adminUserID)
	if err != nil {
		return league.League{}, err
	}

	if l.CurrentPickWeek < 1 {
		return league.League{}, fmt.Errorf("%w: no pick week is open", ErrConflict)
	}
	if l.GameweekStarted() {
		return league.League{}, fmt.Errorf("%w: gameweek already started", ErrConflict)
	}

	l.CurrentGameWeek = l.CurrentPickWeek
	l.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return l, nil
}

func (s *LeagueService) requireMembership(ctx context.Context, leagueID, userID string) (league.League, membership.Membership, error) {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return league.League{}, membership.Membership{}, fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, membership.Membership{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, membership.Membership{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	m, exists, err := s.membershipRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, membership.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return league.League{}, membership.Membership{}, fmt.Errorf("%w: not a league member", ErrForbidden)
	}

	return l, m, nil
}

func (s *LeagueService) requireLeagueAdmin(ctx context.Context, leagueID, userID string) (league.League, error) {
	l, m, err := s.requireMembership(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, err
	}
	if !m.IsLeagueAdmin() {
		return league.League{}, fmt.Errorf("%w: league admin required", ErrForbidden)
	}

	return l, nil
}
