package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
)

// PointsPerWin - очки за победу. Поражение и ничья очков не дают.
const PointsPerWin = 3

// ComputeLeaderboard aggregates wins, losses and points over every
// tournament. The first name seen for a player id is kept. Ordering is
// points desc, then wins desc, then first appearance. Input is not modified.
func ComputeLeaderboard(tournaments []models.Tournament) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0)
	index := make(map[string]int)

	entryFor := func(p models.Player) *models.LeaderboardEntry {
		i, ok := index[p.ID]
		if !ok {
			name := p.Name
			if name == "" {
				name = p.ID
			}
			i = len(entries)
			index[p.ID] = i
			entries = append(entries, models.LeaderboardEntry{PlayerID: p.ID, Name: name})
		}
		return &entries[i]
	}

	for _, t := range tournaments {
		for _, p := range t.Players {
			entryFor(p)
		}
	}

	for _, t := range tournaments {
		for _, m := range t.Matches {
			if m.Winner == nil {
				continue
			}
			winnerID := *m.Winner
			// игрок мог быть дисквалифицирован и отсутствовать в списке
			winner := models.Player{ID: winnerID}
			for _, p := range m.Players {
				if p.ID == winnerID {
					winner = p
				}
			}
			w := entryFor(winner)
			w.Wins++
			w.Points += PointsPerWin

			for _, p := range m.Players {
				if p.ID != winnerID {
					entryFor(p).Losses++
				}
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Wins > entries[j].Wins
	})
	return entries
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	GetTournamentStandings(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo repositories.TournamentRepository
}

func NewLeaderboardService(repo repositories.TournamentRepository) LeaderboardService {
	return &leaderboardService{repo: repo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments for leaderboard: %w", err)
	}
	return ComputeLeaderboard(tournaments), nil
}

// GetTournamentStandings ranks the players of a single tournament, the
// league table for league and round-robin formats.
func (s *leaderboardService) GetTournamentStandings(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error) {
	t, err := s.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}
	return ComputeLeaderboard([]models.Tournament{*t}), nil
}
