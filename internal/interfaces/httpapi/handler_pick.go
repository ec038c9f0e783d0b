package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type makePickRequest struct {
	GameID string `json:"gameId" validate:"required"`
	TeamID string `json:"teamId" validate:"required"`
}

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	annotateLeagueSpan(span, leagueID, 0)
	var req makePickRequest
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

	saved, err := h.pickService.MakePick(ctx, usecase.MakePickInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
		GameID:   req.GameID,
		TeamID:   req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "make pick failed",
			"league_id", leagueID, "user_id", principal.UserID, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(ctx, saved))
}

func (h *Handler) GetMyPickState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPickState")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	state, err := h.pickService.GetMyPickState(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pick state failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickStateToDTO(ctx, state))
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	picks, err := h.pickService.ListMyPicks(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my picks failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	week, err := parseWeekPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	annotateLeagueSpan(span, leagueID, week)

	picks, err := h.pickService.ListWeekPicks(ctx, leagueID, principal.UserID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week picks failed", "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseWeekPathValue(r *http.Request) (int, error) {
	raw := r.PathValue("week")
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return week, nil
}
