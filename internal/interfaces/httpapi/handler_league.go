package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type createLeagueRequest struct {
	CompetitionID    string `json:"competitionId" validate:"required"`
	Name             string `json:"name" validate:"required,max=100"`
	MaxStrikes       int    `json:"maxStrikes" validate:"required,min=1,max=10"`
	DrawCountsAsLoss bool   `json:"drawCountsAsLoss"`
	RequireApproval  bool   `json:"requireApproval"`
}

type updateLeagueSettingsRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	MaxStrikes       int    `json:"maxStrikes" validate:"required,min=1,max=10"`
	DrawCountsAsLoss bool   `json:"drawCountsAsLoss"`
	RequireApproval  bool   `json:"requireApproval"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,max=32"`
}

type joinLeagueDTO struct {
	League  leagueDTO `json:"league"`
	Joined  bool      `json:"joined"`
	Pending bool      `json:"pending"`
}

type leagueForMemberDTO struct {
	League     leagueDTO     `json:"league"`
	Membership membershipDTO `json:"membership"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagueService.Create(ctx, usecase.CreateLeagueInput{
		OwnerUserID:      principal.UserID,
		CompetitionID:    req.CompetitionID,
		Name:             req.Name,
		MaxStrikes:       req.MaxStrikes,
		DrawCountsAsLoss: req.DrawCountsAsLoss,
		RequireApproval:  req.RequireApproval,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(ctx, created))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagues, err := h.leagueService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	item, member, err := h.leagueService.GetForMember(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueForMemberDTO{
		League:     leagueToDTO(ctx, item),
		Membership: membershipToDTO(ctx, member),
	})
}

func (h *Handler) UpdateLeagueSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeagueSettings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	var req updateLeagueSettingsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.UpdateSettings(ctx, usecase.UpdateLeagueSettingsInput{
		LeagueID:         leagueID,
		AdminUserID:      principal.UserID,
		Name:             req.Name,
		MaxStrikes:       req.MaxStrikes,
		DrawCountsAsLoss: req.DrawCountsAsLoss,
		RequireApproval:  req.RequireApproval,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update league settings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, updated))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinLeagueRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.membershipService.JoinByInviteCode(ctx, usecase.JoinLeagueInput{
		UserID:     principal.UserID,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinLeagueDTO{
		League:  leagueToDTO(ctx, result.League),
		Joined:  result.Joined,
		Pending: result.Pending,
	})
}

func (h *Handler) ListLeagueMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMembers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	members, err := h.membershipService.ListMembers(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list members failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]membershipDTO, 0, len(members))
	for _, m := range members {
		items = append(items, membershipToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RemoveLeagueMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLeagueMember")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	memberUserID := r.PathValue("userID")
	if err := h.membershipService.RemoveMember(ctx, leagueID, principal.UserID, memberUserID); err != nil {
		h.logger.WarnContext(ctx, "remove member failed",
			"league_id", leagueID, "member_user_id", memberUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJoinRequests")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	requests, err := h.membershipService.ListPendingRequests(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list join requests failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]joinRequestDTO, 0, len(requests))
	for _, jr := range requests {
		items = append(items, joinRequestToDTO(ctx, jr))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	applicantUserID := r.PathValue("userID")
	if err := h.membershipService.ApproveRequest(ctx, leagueID, principal.UserID, applicantUserID); err != nil {
		h.logger.WarnContext(ctx, "approve join request failed",
			"league_id", leagueID, "applicant_user_id", applicantUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *Handler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	applicantUserID := r.PathValue("userID")
	if err := h.membershipService.RejectRequest(ctx, leagueID, principal.UserID, applicantUserID); err != nil {
		h.logger.WarnContext(ctx, "reject join request failed",
			"league_id", leagueID, "applicant_user_id", applicantUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *Handler) AdvancePickWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvancePickWeek")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	updated, err := h.leagueService.AdvancePickWeek(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "advance pick week failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, updated))
}

func (h *Handler) BeginGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginGameweek")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	updated, err := h.leagueService.BeginGameweek(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "begin gameweek failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, updated))
}
