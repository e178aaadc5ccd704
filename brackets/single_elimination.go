// tournament-manager/brackets/single_elimination.go
package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/tournament-manager/models"
)

// slot - виртуальная позиция в сетке: игрок первого тура или пустое место
// под победителя предыдущего матча.
type slot struct {
	player *models.Player
}

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	rounds, err := singleEliminationRounds(ctx, params)
	if err != nil {
		return models.Bracket{}, err
	}
	return models.Bracket{Rounds: rounds}, nil
}

// singleEliminationRounds builds ceil(log2(n)) rounds. Only the first round
// carries players; later rounds are placeholders and byes are not advanced.
func singleEliminationRounds(ctx context.Context, params GenerateBracketParams) ([]models.Round, error) {
	if params.NewID == nil {
		return nil, errors.New("bracket generation requires an id source")
	}
	shuffled := shuffle(params.Players, params.Rand)

	slots := make([]slot, len(shuffled))
	for i := range shuffled {
		slots[i] = slot{player: &shuffled[i]}
	}

	rounds := make([]models.Round, 0)
	for len(slots) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := models.Round{Number: len(rounds) + 1, Matches: make([]models.Match, 0, (len(slots)+1)/2)}
		for i := 0; i < len(slots); i += 2 {
			players := make([]models.Player, 0, 2)
			if slots[i].player != nil {
				players = append(players, *slots[i].player)
			}
			// нечетный хвост: матч с одним участником (bye)
			if i+1 < len(slots) && slots[i+1].player != nil {
				players = append(players, *slots[i+1].player)
			}
			round.Matches = append(round.Matches, models.Match{
				ID:      params.NewID("m"),
				Players: players,
			})
		}
		rounds = append(rounds, round)
		slots = make([]slot, len(round.Matches))
	}
	return rounds, nil
}
