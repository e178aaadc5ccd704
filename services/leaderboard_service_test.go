package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
	"github.com/Dosada05/tournament-manager/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decided(id string, winner string, players ...models.Player) models.Match {
	m := models.Match{ID: id, Players: players}
	if winner != "" {
		w := winner
		m.Winner = &w
	}
	return m
}

func entriesByID(entries []models.LeaderboardEntry) map[string]models.LeaderboardEntry {
	out := make(map[string]models.LeaderboardEntry, len(entries))
	for _, e := range entries {
		out[e.PlayerID] = e
	}
	return out
}

func TestComputeLeaderboard(t *testing.T) {
	alice := models.Player{ID: "p1", Name: "Alice"}
	bob := models.Player{ID: "p2", Name: "Bob"}
	carol := models.Player{ID: "p3", Name: "Carol"}

	tournaments := []models.Tournament{{
		ID:      "t1",
		Players: []models.Player{alice, bob, carol},
		Matches: []models.Match{
			decided("m1", "p1", alice, bob),
			decided("m2", "p3", alice, carol),
			decided("m3", "", bob, carol),
		},
	}}

	entries := ComputeLeaderboard(tournaments)
	require.Len(t, entries, 3)

	byID := entriesByID(entries)
	assert.Equal(t, models.LeaderboardEntry{PlayerID: "p3", Name: "Carol", Wins: 1, Losses: 0, Points: 3}, byID["p3"])
	assert.Equal(t, models.LeaderboardEntry{PlayerID: "p1", Name: "Alice", Wins: 1, Losses: 1, Points: 3}, byID["p1"])
	assert.Equal(t, models.LeaderboardEntry{PlayerID: "p2", Name: "Bob", Wins: 0, Losses: 1, Points: 0}, byID["p2"])
	assert.Equal(t, "p2", entries[2].PlayerID)

	again := ComputeLeaderboard(tournaments)
	assert.Equal(t, entries, again, "aggregation is a pure function of its input")
	assert.Nil(t, tournaments[0].Matches[2].Winner)
}

func TestComputeLeaderboard_AcrossTournaments(t *testing.T) {
	first := models.Tournament{
		ID:      "t1",
		Players: []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}},
		Matches: []models.Match{decided("m1", "p2", models.Player{ID: "p1", Name: "Alice"}, models.Player{ID: "p2", Name: "Bob"})},
	}
	second := models.Tournament{
		ID:      "t2",
		Players: []models.Player{{ID: "p2", Name: "Robert"}, {ID: "p4", Name: "Dan"}},
		Matches: []models.Match{
			decided("m2", "p2", models.Player{ID: "p2", Name: "Robert"}, models.Player{ID: "p4", Name: "Dan"}),
			// p9 дисквалифицирован и уже не в списке игроков
			decided("m3", "p9", models.Player{ID: "p9", Name: "Ghost"}, models.Player{ID: "p4", Name: "Dan"}),
		},
	}

	entries := ComputeLeaderboard([]models.Tournament{first, second})
	require.Len(t, entries, 4)
	byID := entriesByID(entries)

	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, "Bob", byID["p2"].Name, "first seen name is kept")
	assert.Equal(t, 2, byID["p2"].Wins)
	assert.Equal(t, 6, byID["p2"].Points)
	assert.Equal(t, 2, byID["p4"].Losses)
	assert.Equal(t, "Ghost", byID["p9"].Name)
	assert.Equal(t, 3, byID["p9"].Points)
}

func TestComputeLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, ComputeLeaderboard(nil))
}

func TestLeaderboardService(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewKVTournamentRepository(storage.NewMemoryStore())
	svc := NewLeaderboardService(repo)

	tr := &models.Tournament{
		ID:      "t1",
		Format:  models.FormatLeague,
		Players: []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}},
		Matches: []models.Match{decided("m1", "p1", models.Player{ID: "p1", Name: "Alice"}, models.Player{ID: "p2", Name: "Bob"})},
	}
	require.NoError(t, repo.Create(ctx, tr))

	board, err := svc.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "p1", board[0].PlayerID)

	standings, err := svc.GetTournamentStandings(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, board, standings)

	_, err = svc.GetTournamentStandings(ctx, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
