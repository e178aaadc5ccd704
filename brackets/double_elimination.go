package brackets

import (
	"context"

	"github.com/Dosada05/tournament-manager/models"
)

// DoubleEliminationGenerator - упрощенная заготовка: сетка проигравших
// повторяет форму сетки победителей, но проигравшие в нее не переводятся.
type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() BracketGenerator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) GetName() string {
	return "DoubleElimination"
}

func (g *DoubleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	winners, err := singleEliminationRounds(ctx, params)
	if err != nil {
		return models.Bracket{}, err
	}

	losers := make([]models.Round, len(winners))
	for i, wr := range winners {
		losers[i] = models.Round{Number: wr.Number, Matches: make([]models.Match, len(wr.Matches))}
		for j := range wr.Matches {
			losers[i].Matches[j] = models.Match{ID: params.NewID("m"), Players: []models.Player{}}
		}
	}
	return models.Bracket{Winners: winners, Losers: losers}, nil
}
