package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/survivor-league/internal/domain/membership"
)

func newMembershipService(f *leagueFixture) *MembershipService {
	return NewMembershipService(f.leagueRepo, f.membershipRepo, f.standingRepo)
}

func TestMembershipService_JoinByInviteCode(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newMembershipService(f)

	result, err := service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "survive1", // case-insensitive
	})
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !result.Joined || result.Pending {
		t.Fatalf("expected direct join, got %+v", result)
	}

	m, exists, err := f.membershipRepo.Get(t.Context(), "league-1", "user-3")
	if err != nil || !exists {
		t.Fatalf("expected membership, exists=%v err=%v", exists, err)
	}
	if m.Role != membership.RoleMember {
		t.Fatalf("expected member role, got %s", m.Role)
	}
	if _, exists, _ := f.standingRepo.Get(t.Context(), "league-1", "user-3"); !exists {
		t.Fatal("expected standing created on join")
	}

	_, err = service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "SURVIVE1",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on rejoin, got %v", err)
	}

	_, err = service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-4",
		InviteCode: "WRONGCOD",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad code, got %v", err)
	}
}

func TestMembershipService_ApprovalFlow(t *testing.T) {
	f := newLeagueFixture(1, 0)
	f.league.RequireApproval = true
	if err := f.leagueRepo.Update(t.Context(), f.league); err != nil {
		t.Fatalf("update league failed: %v", err)
	}

	service := newMembershipService(f)

	result, err := service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "SURVIVE1",
	})
	if err != nil {
		t.Fatalf("join request failed: %v", err)
	}
	if !result.Pending || result.Joined {
		t.Fatalf("expected pending request, got %+v", result)
	}

	// Second attempt while pending is a conflict.
	if _, err := service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "SURVIVE1",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate request, got %v", err)
	}

	pending, err := service.ListPendingRequests(t.Context(), "league-1", "user-1")
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].UserID != "user-3" {
		t.Fatalf("expected one pending request from user-3, got %+v", pending)
	}

	if _, err := service.ListPendingRequests(t.Context(), "league-1", "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	if err := service.ApproveRequest(t.Context(), "league-1", "user-1", "user-3"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, exists, _ := f.membershipRepo.Get(t.Context(), "league-1", "user-3"); !exists {
		t.Fatal("expected membership after approval")
	}

	req, _, err := f.membershipRepo.GetRequest(t.Context(), "league-1", "user-3")
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if req.Status != membership.RequestApproved || req.DecidedBy != "user-1" {
		t.Fatalf("expected approved request decided by user-1, got %+v", req)
	}
}

func TestMembershipService_RejectRequest(t *testing.T) {
	f := newLeagueFixture(1, 0)
	f.league.RequireApproval = true
	if err := f.leagueRepo.Update(t.Context(), f.league); err != nil {
		t.Fatalf("update league failed: %v", err)
	}

	service := newMembershipService(f)

	if _, err := service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "SURVIVE1",
	}); err != nil {
		t.Fatalf("join request failed: %v", err)
	}

	if err := service.RejectRequest(t.Context(), "league-1", "user-1", "user-3"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, exists, _ := f.membershipRepo.Get(t.Context(), "league-1", "user-3"); exists {
		t.Fatal("expected no membership after rejection")
	}

	// A rejected applicant may apply again.
	if _, err := service.JoinByInviteCode(t.Context(), JoinLeagueInput{
		UserID:     "user-3",
		InviteCode: "SURVIVE1",
	}); err != nil {
		t.Fatalf("reapply after rejection failed: %v", err)
	}
}

func TestMembershipService_RemoveMember(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newMembershipService(f)

	if err := service.RemoveMember(t.Context(), "league-1", "user-2", "user-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	if err := service.RemoveMember(t.Context(), "league-1", "user-1", "user-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict removing the owner, got %v", err)
	}

	if err := service.RemoveMember(t.Context(), "league-1", "user-1", "user-2"); err != nil {
		t.Fatalf("remove member failed: %v", err)
	}
	if _, exists, _ := f.membershipRepo.Get(t.Context(), "league-1", "user-2"); exists {
		t.Fatal("expected membership removed")
	}
}

func TestMembershipService_ListMembers(t *testing.T) {
	f := newLeagueFixture(1, 0)
	service := newMembershipService(f)

	members, err := service.ListMembers(t.Context(), "league-1", "user-2")
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected two members, got %d", len(members))
	}

	if _, err := service.ListMembers(t.Context(), "league-1", "user-9"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
}
