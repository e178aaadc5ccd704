package services

import (
	"context"
	"time"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo       repositories.UserRepository
	tournamentRepo repositories.TournamentRepository
	clock          Clock
}

func NewDashboardService(userRepo repositories.UserRepository, tournamentRepo repositories.TournamentRepository, clock Clock) DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &dashboardService{userRepo: userRepo, tournamentRepo: tournamentRepo, clock: clock}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var tournaments []models.Tournament

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.userRepo.Count(gCtx)
		stats.UsersTotal = count
		return err
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}

	now := s.clock()
	stats.TournamentsTotal = len(tournaments)
	for _, t := range tournaments {
		stats.PlayersTotal += len(t.Players)
		for _, m := range t.Matches {
			stats.MatchesTotal++
			if m.Winner != nil {
				stats.MatchesDecided++
			}
			if m.ScheduledAt != nil && m.ScheduledAt.After(now) {
				stats.MatchesUpcoming++
			}
		}
	}
	return stats, nil
}
