package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

type syncWeekJobRequest struct {
	CompetitionID string `json:"competitionId" validate:"required"`
	Week          int    `json:"week" validate:"required,min=1,max=60"`
}

type syncRangeJobRequest struct {
	CompetitionID string `json:"competitionId" validate:"required"`
	FromWeek      int    `json:"fromWeek" validate:"required,min=1,max=60"`
	ToWeek        int    `json:"toWeek" validate:"required,min=1,max=60,gtefield=FromWeek"`
}

type syncAllJobRequest struct {
	Week int `json:"week" validate:"required,min=1,max=60"`
}

func (h *Handler) RunSyncWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncWeekJob")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncWeekJobRequest
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

	run, err := h.ingestionService.SyncWeek(ctx, req.CompetitionID, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync week job failed",
			"competition_id", req.CompetitionID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) RunSyncRangeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncRangeJob")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncRangeJobRequest
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

	runs, err := h.ingestionService.SyncWeeks(ctx, req.CompetitionID, req.FromWeek, req.ToWeek)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync range job failed",
			"competition_id", req.CompetitionID, "from_week", req.FromWeek, "to_week", req.ToWeek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runs)
}

func (h *Handler) RunSyncAllJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncAllJob")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncAllJobRequest
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

	result, err := h.ingestionService.SyncAllCompetitions(ctx, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync all job failed", "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
