package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/tournament-manager/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket builds a single round robin with the circle method: every
// player meets every other player exactly once over n-1 rounds. For an odd
// count a nil bye marker is appended and pairings against it are skipped.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	if params.NewID == nil {
		return models.Bracket{}, errors.New("bracket generation requires an id source")
	}

	circle := make([]*models.Player, 0, len(params.Players)+1)
	for i := range params.Players {
		p := params.Players[i]
		circle = append(circle, &p)
	}
	if len(circle)%2 == 1 {
		circle = append(circle, nil)
	}

	n := len(circle)
	rounds := make([]models.Round, 0)
	for r := 0; r < n-1; r++ {
		if err := ctx.Err(); err != nil {
			return models.Bracket{}, err
		}
		round := models.Round{Number: r + 1, Matches: make([]models.Match, 0, n/2)}
		for i := 0; i < n/2; i++ {
			home, away := circle[i], circle[n-1-i]
			if home == nil || away == nil {
				continue
			}
			round.Matches = append(round.Matches, models.Match{
				ID:      params.NewID("m"),
				Players: []models.Player{*home, *away},
			})
		}
		rounds = append(rounds, round)

		// позиция 0 закреплена, последний элемент переезжает на позицию 1
		last := circle[n-1]
		copy(circle[2:], circle[1:n-1])
		circle[1] = last
	}
	return models.Bracket{Rounds: rounds}, nil
}
