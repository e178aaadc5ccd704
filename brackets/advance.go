package brackets

import "github.com/Dosada05/tournament-manager/models"

// Advancement - новый состав матча следующего тура.
type Advancement struct {
	MatchID string
	Players []models.Player
}

// AdvanceWinners walks elimination rounds and computes which next-round
// matches get new players. Match k of round r+1 is fed by matches 2k and
// 2k+1 of round r and is filled only once every feeder is resolved, either
// by a recorded winner or as a bye. Feeder 2k always takes slot 0 and
// feeder 2k+1 slot 1. Matches that already have a winner are never
// repopulated. The input is not modified.
func AdvanceWinners(rounds []models.Round) []Advancement {
	work := models.Bracket{Rounds: rounds}.Clone().Rounds
	var changes []Advancement

	for r := 0; r+1 < len(work); r++ {
		next := work[r+1].Matches
		for k := range next {
			if next[k].Winner != nil {
				continue
			}
			players, ok := feederPlayers(work, r, k)
			if !ok || samePlayers(next[k].Players, players) {
				continue
			}
			next[k].Players = players
			changes = append(changes, Advancement{MatchID: next[k].ID, Players: players})
		}
	}
	return changes
}

// feederPlayers returns the players advancing into match k of round r+1
// and false while any of its feeders is still undecided.
func feederPlayers(rounds []models.Round, r, k int) ([]models.Player, bool) {
	players := make([]models.Player, 0, 2)
	for _, src := range []int{2 * k, 2*k + 1} {
		if src >= len(rounds[r].Matches) {
			continue
		}
		p := advancing(rounds, r, src)
		if p == nil {
			return nil, false
		}
		players = append(players, *p)
	}
	return players, len(players) > 0
}

func advancing(rounds []models.Round, r, i int) *models.Player {
	m := rounds[r].Matches[i]
	if m.Winner != nil {
		for j := range m.Players {
			if m.Players[j].ID == *m.Winner {
				return &m.Players[j]
			}
		}
		return nil
	}
	if len(m.Players) == 1 && isBye(rounds, r, i) {
		return &m.Players[0]
	}
	return nil
}

// isBye: в первом туре bye - матч без пары, дальше - нечетный хвост тура.
func isBye(rounds []models.Round, r, i int) bool {
	if r == 0 {
		return len(rounds[0].Matches[i].Players) < 2
	}
	return 2*i+1 >= len(rounds[r-1].Matches)
}

func samePlayers(a, b []models.Player) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
