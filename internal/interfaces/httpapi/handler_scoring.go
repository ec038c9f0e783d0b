package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type settleWeekRequest struct {
	// Week zero settles the league's current game week.
	Week int `json:"week" validate:"min=0,max=60"`
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	standings, err := h.scoringService.Standings(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SettleLeagueWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleLeagueWeek")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	req, err := decodeSettleWeekRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	annotateLeagueSpan(span, leagueID, req.Week)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// Settlement is a league-admin operation; site admins may run it for any
	// league.
	if !principal.IsSiteAdmin() {
		_, member, err := h.leagueService.GetForMember(ctx, leagueID, principal.UserID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if !member.IsLeagueAdmin() {
			writeError(ctx, w, fmt.Errorf("%w: league admin role required", usecase.ErrForbidden))
			return
		}
	}

	settlement, err := h.scoringService.SettleWeek(ctx, leagueID, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "settle week failed", "league_id", leagueID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlement)
}

func decodeSettleWeekRequest(r *http.Request) (settleWeekRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req settleWeekRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return settleWeekRequest{}, nil
		}
		return settleWeekRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
