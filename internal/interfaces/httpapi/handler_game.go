package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type statusOverrideRequest struct {
	Status string `json:"status" validate:"required,oneof=not_started in_progress completed"`
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.gameService.ListCompetitions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, competitionToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListWeekGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekGames")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	week, err := parseWeekPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListWeekGames(ctx, competitionID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week games failed",
			"competition_id", competitionID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameViewToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	view, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameViewToDTO(ctx, view))
}

func (h *Handler) SetGameStatusOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameStatusOverride")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	gameID := r.PathValue("gameID")
	var req statusOverrideRequest
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

	if _, err := h.gameService.SetStatusOverride(ctx, principal, gameID, game.Status(req.Status)); err != nil {
		h.logger.WarnContext(ctx, "set status override failed",
			"game_id", gameID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameViewToDTO(ctx, view))
}

func (h *Handler) ClearGameStatusOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearGameStatusOverride")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	gameID := r.PathValue("gameID")
	if _, err := h.gameService.ClearStatusOverride(ctx, principal, gameID); err != nil {
		h.logger.WarnContext(ctx, "clear status override failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameViewToDTO(ctx, view))
}
