package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
)

type JoinLeagueInput struct {
	UserID     string
	InviteCode string
}

type JoinLeagueResult struct {
	League  league.League
	Joined  bool
	Pending bool
}

type MembershipService struct {
	leagueRepo     league.Repository
	membershipRepo membership.Repository
	standingRepo   standing.Repository
	now            func() time.Time
}

func NewMembershipService(
	leagueRepo league.Repository,
	membershipRepo membership.Repository,
	standingRepo standing.Repository,
) *MembershipService {
	return &MembershipService{
		leagueRepo:     leagueRepo,
		membershipRepo: membershipRepo,
		standingRepo:   standingRepo,
		now:            time.Now,
	}
}

// JoinByInviteCode joins a league directly, or files a pending request when
// the league requires admin approval.
func (s *MembershipService) JoinByInviteCode(ctx context.Context, input JoinLeagueInput) (JoinLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.JoinByInviteCode")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteCode = strings.ToUpper(strings.TrimSpace(input.InviteCode))
	if input.UserID == "" || input.InviteCode == "" {
		return JoinLeagueResult{}, fmt.Errorf("%w: user id and invite code are required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return JoinLeagueResult{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return JoinLeagueResult{}, fmt.Errorf("%w: invite code not recognised", ErrNotFound)
	}

	_, alreadyMember, err := s.membershipRepo.Get(ctx, l.ID, input.UserID)
	if err != nil {
		return JoinLeagueResult{}, fmt.Errorf("get membership: %w", err)
	}
	if alreadyMember {
		return JoinLeagueResult{}, fmt.Errorf("%w: already a member", ErrConflict)
	}

	now := s.now().UTC()
	if l.RequireApproval {
		req, exists, err := s.membershipRepo.GetRequest(ctx, l.ID, input.UserID)
		if err != nil {
			return JoinLeagueResult{}, fmt.Errorf("get join request: %w", err)
		}
		if exists && req.Status == membership.RequestPending {
			return JoinLeagueResult{}, fmt.Errorf("%w: join request already pending", ErrConflict)
		}

		if err := s.membershipRepo.UpsertRequest(ctx, membership.JoinRequest{
			LeagueID:  l.ID,
			UserID:    input.UserID,
			Status:    membership.RequestPending,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return JoinLeagueResult{}, fmt.Errorf("create join request: %w", err)
		}

		return JoinLeagueResult{League: l, Pending: true}, nil
	}

	if err := s.admit(ctx, l.ID, input.UserID, now); err != nil {
		return JoinLeagueResult{}, err
	}

	return JoinLeagueResult{League: l, Joined: true}, nil
}

func (s *MembershipService) ListPendingRequests(ctx context.Context, leagueID, adminUserID string) ([]membership.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ListPendingRequests")
	defer span.End()

	if err := s.requireLeagueAdmin(ctx, leagueID, adminUserID); err != nil {
		return nil, err
	}

	requests, err := s.membershipRepo.ListPendingRequests(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	return requests, nil
}

func (s *MembershipService) ApproveRequest(ctx context.Context, leagueID, adminUserID, applicantUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ApproveRequest")
	defer span.End()

	req, err := s.pendingRequestForDecision(ctx, leagueID, adminUserID, applicantUserID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	req.Status = membership.RequestApproved
	req.DecidedBy = adminUserID
	req.UpdatedAt = now
	if err := s.membershipRepo.UpsertRequest(ctx, req); err != nil {
		return fmt.Errorf("update join request: %w", err)
	}

	return s.admit(ctx, leagueID, applicantUserID, now)
}

func (s *MembershipService) RejectRequest(ctx context.Context, leagueID, adminUserID, applicantUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.RejectRequest")
	defer span.End()

	req, err := s.pendingRequestForDecision(ctx, leagueID, adminUserID, applicantUserID)
	if err != nil {
		return err
	}

	req.Status = membership.RequestRejected
	req.DecidedBy = adminUserID
	req.UpdatedAt = s.now().UTC()
	if err := s.membershipRepo.UpsertRequest(ctx, req); err != nil {
		return fmt.Errorf("update join request: %w", err)
	}

	return nil
}

func (s *MembershipService) ListMembers(ctx context.Context, leagueID, userID string) ([]membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ListMembers")
	defer span.End()

	_, exists, err := s.membershipRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: not a league member", ErrForbidden)
	}

	members, err := s.membershipRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

func (s *MembershipService) RemoveMember(ctx context.Context, leagueID, adminUserID, memberUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.RemoveMember")
	defer span.End()

	if err := s.requireLeagueAdmin(ctx, leagueID, adminUserID); err != nil {
		return err
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if l.OwnerUserID == memberUserID {
		return fmt.Errorf("%w: the league owner cannot be removed", ErrConflict)
	}

	_, exists, err = s.membershipRepo.Get(ctx, leagueID, memberUserID)
	if err != nil {
		return fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: member=%s", ErrNotFound, memberUserID)
	}

	if err := s.membershipRepo.Delete(ctx, leagueID, memberUserID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	return nil
}

func (s *MembershipService) admit(ctx context.Context, leagueID, userID string, now time.Time) error {
	if err := s.membershipRepo.Create(ctx, membership.Membership{
		LeagueID:  leagueID,
		UserID:    userID,
		Role:      membership.RoleMember,
		JoinedAt:  now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}

	if err := s.standingRepo.Upsert(ctx, standing.Standing{
		LeagueID:  leagueID,
		UserID:    userID,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("create standing: %w", err)
	}

	return nil
}

func (s *MembershipService) pendingRequestForDecision(ctx context.Context, leagueID, adminUserID, applicantUserID string) (membership.JoinRequest, error) {
	if err := s.requireLeagueAdmin(ctx, leagueID, adminUserID); err != nil {
		return membership.JoinRequest{}, err
	}

	req, exists, err := s.membershipRepo.GetRequest(ctx, leagueID, applicantUserID)
	if err != nil {
		return membership.JoinRequest{}, fmt.Errorf("get join request: %w", err)
	}
	if !exists {
		return membership.JoinRequest{}, fmt.Errorf("%w: no join request for user=%s", ErrNotFound, applicantUserID)
	}
	if req.Status != membership.RequestPending {
		return membership.JoinRequest{}, fmt.Errorf("%w: request already decided", ErrConflict)
	}

	return req, nil
}

func (s *MembershipService) requireLeagueAdmin(ctx context.Context, leagueID, userID string) error {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	m, exists, err := s.membershipRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !exists || !m.IsLeagueAdmin() {
		return fmt.Errorf("%w: league admin required", ErrForbidden)
	}

	return nil
}
