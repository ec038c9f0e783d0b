package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/survivor-league/external/scorefeed"
	"github.com/riskibarqy/survivor-league/internal/config"
	"github.com/riskibarqy/survivor-league/internal/domain/competition"
	"github.com/riskibarqy/survivor-league/internal/domain/game"
	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/pick"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	"github.com/riskibarqy/survivor-league/internal/domain/user"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/notify"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/token"
	"github.com/riskibarqy/survivor-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/survivor-league/internal/platform/cache"
	idgen "github.com/riskibarqy/survivor-league/internal/platform/id"
	"github.com/riskibarqy/survivor-league/internal/platform/logging"
	"github.com/riskibarqy/survivor-league/internal/platform/resilience"
	"github.com/riskibarqy/survivor-league/internal/usecase"
)

// App owns the HTTP server and the resources it was wired with.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	users        user.Repository
	competitions competition.Repository
	games        game.Repository
	leagues      league.Repository
	memberships  membership.Repository
	picks        pick.Repository
	standings    standing.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// A nanosecond TTL makes every read a miss without special-casing
		// the service layer.
		cacheTTL = time.Nanosecond
	}

	idGen := idgen.NewRandomGenerator()
	jwt := token.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	var notifier usecase.Notifier
	if cfg.WebhookEnabled {
		notifier = notify.NewWebhookNotifier(notify.WebhookConfig{
			URL:            cfg.WebhookURL,
			Secret:         cfg.WebhookSecret,
			Timeout:        cfg.WebhookTimeout,
			CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
		}, logger)
	}

	authService := usecase.NewAuthService(repos.users, repos.memberships, jwt, idGen)
	leagueService := usecase.NewLeagueService(repos.leagues, repos.competitions, repos.memberships, repos.standings, idGen)
	membershipService := usecase.NewMembershipService(repos.leagues, repos.memberships, repos.standings)
	pickService := usecase.NewPickService(repos.leagues, repos.competitions, repos.memberships, repos.standings, repos.games, repos.picks, idGen)
	gameService := usecase.NewGameService(repos.competitions, repos.games, cache.NewStore(cacheTTL))
	scoringService := usecase.NewScoringService(repos.leagues, repos.competitions, repos.memberships, repos.standings, repos.games, repos.picks, notifier, logger)

	var ingestionService *usecase.IngestionService
	if cfg.ScoreFeedEnabled {
		feed := scorefeed.NewClient(scorefeed.ClientConfig{
			BaseURL:    cfg.ScoreFeedBaseURL,
			Token:      cfg.ScoreFeedToken,
			Timeout:    cfg.ScoreFeedTimeout,
			MaxRetries: cfg.ScoreFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoreFeedCircuitEnabled,
				FailureThreshold: cfg.ScoreFeedCircuitFailureCount,
				OpenTimeout:      cfg.ScoreFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoreFeedCircuitHalfOpenMaxReq,
			},
		})
		ingestionService = usecase.NewIngestionService(repos.competitions, repos.games, feed, logger)
	}

	handler := httpapi.NewHandler(
		authService,
		leagueService,
		membershipService,
		pickService,
		gameService,
		scoringService,
		ingestionService,
		logger,
	)
	router := httpapi.NewRouter(handler, jwt, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db}, nil
}

// Close releases resources the app holds besides the HTTP server.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(ctx context.Context, cfg config.Config) (repositories, *sqlx.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		memberships := memory.NewMembershipRepository()
		return repositories{
			users:        memory.NewUserRepository(),
			competitions: memory.NewCompetitionRepository(memory.SeedCompetitions()),
			games:        memory.NewGameRepository(memory.SeedGames(time.Now().UTC().AddDate(0, 0, 2))),
			leagues:      memory.NewLeagueRepository(memberships),
			memberships:  memberships,
			picks:        memory.NewPickRepository(),
			standings:    memory.NewStandingRepository(),
		}, nil, nil

	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		return repositories{
			users:        postgres.NewUserRepository(db),
			competitions: postgres.NewCompetitionRepository(db),
			games:        postgres.NewGameRepository(db),
			leagues:      postgres.NewLeagueRepository(db),
			memberships:  postgres.NewMembershipRepository(db),
			picks:        postgres.NewPickRepository(db),
			standings:    postgres.NewStandingRepository(db),
		}, db, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
