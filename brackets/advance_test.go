package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func winner(m *models.Match, idx int) {
	id := m.Players[idx].ID
	m.Winner = &id
}

func TestAdvanceWinners_WaitsForEveryFeeder(t *testing.T) {
	bracket, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), params(3))
	require.NoError(t, err)
	rounds := bracket.Rounds
	require.Len(t, rounds, 2)
	require.Len(t, rounds[0].Matches[1].Players, 1)

	// известен только bye, первый матч еще не сыгран
	assert.Empty(t, AdvanceWinners(rounds))

	winner(&rounds[0].Matches[0], 1)
	changes := AdvanceWinners(rounds)
	require.Len(t, changes, 1)
	assert.Equal(t, rounds[1].Matches[0].ID, changes[0].MatchID)
	assert.Equal(t, []models.Player{rounds[0].Matches[0].Players[1], rounds[0].Matches[1].Players[0]}, changes[0].Players)
	assert.Empty(t, rounds[1].Matches[0].Players, "input must not be modified")
}

func TestAdvanceWinners_SlotsFollowFeederOrder(t *testing.T) {
	bracket, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), params(4))
	require.NoError(t, err)
	rounds := bracket.Rounds

	// второй матч решен раньше первого
	winner(&rounds[0].Matches[1], 0)
	assert.Empty(t, AdvanceWinners(rounds))

	winner(&rounds[0].Matches[0], 1)
	changes := AdvanceWinners(rounds)
	require.Len(t, changes, 1)
	assert.Equal(t, []models.Player{rounds[0].Matches[0].Players[1], rounds[0].Matches[1].Players[0]}, changes[0].Players)
}

func TestAdvanceWinners_CascadesOddTail(t *testing.T) {
	// 5 players: round 1 = 3 matches (last one a bye), round 2 = 2 matches,
	// the second of which only has one source and is a bye itself.
	bracket, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), params(5))
	require.NoError(t, err)
	rounds := bracket.Rounds
	require.Len(t, rounds[1].Matches, 2)
	lone := rounds[0].Matches[2].Players[0]

	changes := AdvanceWinners(rounds)
	require.Len(t, changes, 1)
	assert.Equal(t, rounds[1].Matches[1].ID, changes[0].MatchID)
	assert.Equal(t, []models.Player{lone}, changes[0].Players)

	apply := func(changes []Advancement) {
		for _, c := range changes {
			for r := range rounds {
				for i := range rounds[r].Matches {
					if rounds[r].Matches[i].ID == c.MatchID {
						rounds[r].Matches[i].Players = c.Players
					}
				}
			}
		}
	}
	apply(changes)

	winner(&rounds[0].Matches[0], 0)
	winner(&rounds[0].Matches[1], 0)
	apply(AdvanceWinners(rounds))
	require.Len(t, rounds[1].Matches[0].Players, 2)
	assert.Empty(t, rounds[2].Matches[0].Players, "semifinal not decided yet")

	winner(&rounds[1].Matches[0], 1)
	changes = AdvanceWinners(rounds)
	require.Len(t, changes, 1)
	assert.Equal(t, []models.Player{rounds[1].Matches[0].Players[1], lone}, changes[0].Players)
}

func TestAdvanceWinners_NoChangesWhenSettled(t *testing.T) {
	bracket, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), params(4))
	require.NoError(t, err)
	rounds := bracket.Rounds
	winner(&rounds[0].Matches[0], 0)
	winner(&rounds[0].Matches[1], 0)

	changes := AdvanceWinners(rounds)
	require.Len(t, changes, 1)
	rounds[1].Matches[0].Players = changes[0].Players

	assert.Empty(t, AdvanceWinners(rounds))
}
