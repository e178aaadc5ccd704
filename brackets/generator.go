package brackets

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Dosada05/tournament-manager/models"
)

// IDSource returns a unique identifier with the given prefix.
type IDSource func(prefix string) string

type GenerateBracketParams struct {
	Players []models.Player
	NewID   IDSource
	// Rand используется для перемешивания; nil - глобальный источник.
	Rand *rand.Rand
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error)

	GetName() string
}

// ForFormat returns the generator used for a tournament format. League
// reuses round robin; only point interpretation differs.
func ForFormat(format models.TournamentFormat) (BracketGenerator, error) {
	switch format {
	case models.FormatSingle:
		return NewSingleEliminationGenerator(), nil
	case models.FormatDouble:
		return NewDoubleEliminationGenerator(), nil
	case models.FormatRoundRobin, models.FormatLeague:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported tournament format '%s'", format)
	}
}

func shuffle(players []models.Player, rng *rand.Rand) []models.Player {
	shuffled := make([]models.Player, len(players))
	copy(shuffled, players)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}
	return shuffled
}
