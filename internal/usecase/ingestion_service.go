package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
)

const syncWorkerCount = 4

// ScoreFeed is the upstream schedule and results provider, already mapped
// into domain games by the client.
type ScoreFeed interface {
	FetchWeek(ctx context.Context, competitionCode, season string, week int) ([]game.Game, error)
}

// IngestionRun summarizes one sync pass against the score feed.
type IngestionRun struct {
	ID                 string    `json:"id"`
	CompetitionID      string    `json:"competitionId"`
	Week               int       `json:"week"`
	Fetched            int       `json:"fetched"`
	Created            int       `json:"created"`
	Updated            int       `json:"updated"`
	SkippedRegressions int       `json:"skippedRegressions"`
	StartedAt          time.Time `json:"startedAt"`
	FinishedAt         time.Time `json:"finishedAt"`
}

type IngestionService struct {
	competitionRepo competition.Repository
	gameRepo        game.Repository
	feed            ScoreFeed
	logger          *logging.Logger
	now             func() time.Time
}

func NewIngestionService(
	competitionRepo competition.Repository,
	gameRepo game.Repository,
	feed ScoreFeed,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
		feed:            feed,
		logger:          logger,
		now:             time.Now,
	}
}

// SyncWeek pulls one week of schedule and scores from the feed and merges it
// into storage. A game the store already marks completed never regresses to
// an earlier status from feed data; only a manual override can move it back.
func (s *IngestionService) SyncWeek(ctx context.Context, competitionID string, week int) (IngestionRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncWeek")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return IngestionRun{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if week < 1 {
		return IngestionRun{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return IngestionRun{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return IngestionRun{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	run := IngestionRun{
		ID:            uuid.NewString(),
		CompetitionID: comp.ID,
		Week:          week,
		StartedAt:     s.now().UTC(),
	}

	fetched, err := s.feed.FetchWeek(ctx, comp.Code, comp.Season, week)
	if err != nil {
		return IngestionRun{}, fmt.Errorf("%w: fetch week %d: %v", ErrDependencyUnavailable, week, err)
	}
	run.Fetched = len(fetched)

	for _, incoming := range fetched {
		incoming.CompetitionID = comp.ID
		incoming.Week = week
		incoming.Season = comp.Season

		stored, exists, err := s.gameRepo.GetByID(ctx, incoming.ID)
		if err != nil {
			return IngestionRun{}, fmt.Errorf("get game %s: %w", incoming.ID, err)
		}

		merged, regressed := mergeFeedGame(stored, incoming, exists, s.now().UTC())
		if regressed {
			run.SkippedRegressions++
			s.logger.WarnContext(ctx, "feed tried to regress a completed game",
				"game_id", incoming.ID,
				"feed_status", string(incoming.Status),
			)
		}

		if err := s.gameRepo.Upsert(ctx, merged); err != nil {
			return IngestionRun{}, fmt.Errorf("upsert game %s: %w", incoming.ID, err)
		}
		if exists {
			run.Updated++
		} else {
			run.Created++
		}
	}

	run.FinishedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "score feed week synced",
		"run_id", run.ID,
		"competition_id", comp.ID,
		"week", week,
		"fetched", run.Fetched,
		"created", run.Created,
		"updated", run.Updated,
		"skipped_regressions", run.SkippedRegressions,
	)

	return run, nil
}

// SyncWeeks runs SyncWeek for each week in [from, to]. Weeks are synced
// sequentially so a feed outage stops the pass at a known point.
func (s *IngestionService) SyncWeeks(ctx context.Context, competitionID string, from, to int) ([]IngestionRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncWeeks")
	defer span.End()

	if from < 1 || to < from {
		return nil, fmt.Errorf("%w: invalid week range %d..%d", ErrInvalidInput, from, to)
	}

	runs := make([]IngestionRun, 0, to-from+1)
	for week := from; week <= to; week++ {
		run, err := s.SyncWeek(ctx, competitionID, week)
		if err != nil {
			return runs, err
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// CompetitionSyncResult is the outcome of one competition inside a fan-out
// sync pass.
type CompetitionSyncResult struct {
	CompetitionID string       `json:"competitionId"`
	Run           IngestionRun `json:"run"`
	Error         string       `json:"error,omitempty"`
	DurationMs    int64        `json:"durationMs"`
}

type SyncAllResult struct {
	Week         int                     `json:"week"`
	SuccessCount int                     `json:"successCount"`
	FailedCount  int                     `json:"failedCount"`
	Results      []CompetitionSyncResult `json:"results"`
}

// SyncAllCompetitions runs SyncWeek for the given week across every stored
// competition on a bounded worker pool. A feed failure for one competition is
// recorded in its result row and does not stop the others.
func (s *IngestionService) SyncAllCompetitions(ctx context.Context, week int) (SyncAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncAllCompetitions")
	defer span.End()

	if week < 1 {
		return SyncAllResult{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	competitions, err := s.competitionRepo.List(ctx)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("list competitions: %w", err)
	}

	result := SyncAllResult{Week: week}
	results := make(chan CompetitionSyncResult, len(competitions))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(syncWorkerCount)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, comp := range competitions {
		comp := comp
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := CompetitionSyncResult{CompetitionID: comp.ID}

			run, syncErr := s.SyncWeek(ctx, comp.ID, week)
			if syncErr != nil {
				row.Error = syncErr.Error()
				failedCount.Add(1)
			} else {
				row.Run = run
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return SyncAllResult{}, fmt.Errorf("submit sync task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Results = append(result.Results, row)
	}
	sort.SliceStable(result.Results, func(i, j int) bool {
		return result.Results[i].CompetitionID < result.Results[j].CompetitionID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "score feed fan-out sync finished",
		"week", week,
		"competitions", len(competitions),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

// mergeFeedGame folds a feed row into the stored game. Stored completion and
// manual overrides always survive the merge.
func mergeFeedGame(stored, incoming game.Game, exists bool, now time.Time) (game.Game, bool) {
	incoming.Status = game.NormalizeStatus(string(incoming.Status))

	if !exists {
		incoming.CreatedAt = now
		incoming.UpdatedAt = now
		return incoming, false
	}

	regressed := false
	merged := incoming
	merged.CreatedAt = stored.CreatedAt
	merged.UpdatedAt = now
	merged.ManualOverride = stored.ManualOverride

	if stored.Status == game.StatusCompleted && incoming.Status != game.StatusCompleted {
		merged.Status = game.StatusCompleted
		if incoming.HomeScore == nil {
			merged.HomeScore = stored.HomeScore
		}
		if incoming.AwayScore == nil {
			merged.AwayScore = stored.AwayScore
		}
		if incoming.WinnerTeamID == "" {
			merged.WinnerTeamID = stored.WinnerTeamID
		}
		regressed = true
	}

	return merged, regressed
}
