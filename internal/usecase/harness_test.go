package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/league"
	"github.com/riskibarqy/survivor-league/internal/domain/membership"
	"github.com/riskibarqy/survivor-league/internal/domain/standing"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/memory"
)

// seqIDGenerator hands out predictable ids so tests can assert on them.
type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

func (g *seqIDGenerator) NewShortCode(length int) (string, error) {
	g.n++
	return fmt.Sprintf("%0*d", length, g.n), nil
}

// kickoffDay anchors the seeded schedule: the first week-1 game kicks off at
// kickoffDay 12:00 UTC, the last week-1 game the day after at 14:00 UTC.
var kickoffDay = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

type leagueFixture struct {
	leagueRepo      *memory.LeagueRepository
	competitionRepo *memory.CompetitionRepository
	membershipRepo  *memory.MembershipRepository
	standingRepo    *memory.StandingRepository
	gameRepo        *memory.GameRepository
	pickRepo        *memory.PickRepository
	league          league.League
}

// newLeagueFixture builds a seeded league ("league-1", owner "user-1",
// member "user-2") over the Premier League schedule, with the given week
// pointers.
func newLeagueFixture(pickWeek, gameWeek int) *leagueFixture {
	f := &leagueFixture{
		competitionRepo: memory.NewCompetitionRepository(memory.SeedCompetitions()),
		membershipRepo:  memory.NewMembershipRepository(),
		standingRepo:    memory.NewStandingRepository(),
		gameRepo:        memory.NewGameRepository(memory.SeedGames(kickoffDay)),
		pickRepo:        memory.NewPickRepository(),
	}
	f.leagueRepo = memory.NewLeagueRepository(f.membershipRepo)

	created := kickoffDay.AddDate(0, 0, -14)
	f.league = league.League{
		ID:              "league-1",
		CompetitionID:   memory.CompetitionIDPremierLeague,
		Season:          "2025/2026",
		Name:            "Office Survivor",
		OwnerUserID:     "user-1",
		InviteCode:      "SURVIVE1",
		CurrentPickWeek: pickWeek,
		CurrentGameWeek: gameWeek,
		MaxStrikes:      2,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	_ = f.leagueRepo.Create(context.Background(), f.league)

	f.addMember("user-1", membership.RoleAdmin)
	f.addMember("user-2", membership.RoleMember)

	return f
}

func (f *leagueFixture) addMember(userID string, role membership.Role) {
	_ = f.membershipRepo.Create(context.Background(), membership.Membership{
		LeagueID: f.league.ID,
		UserID:   userID,
		Role:     role,
		JoinedAt: f.league.CreatedAt,
	})
	_ = f.standingRepo.Upsert(context.Background(), standing.Standing{
		LeagueID: f.league.ID,
		UserID:   userID,
	})
}

func (f *leagueFixture) pickService() *PickService {
	return NewPickService(
		f.leagueRepo,
		f.competitionRepo,
		f.membershipRepo,
		f.standingRepo,
		f.gameRepo,
		f.pickRepo,
		&seqIDGenerator{prefix: "pick"},
	)
}
