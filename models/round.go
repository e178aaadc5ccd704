package models

// Round - упорядоченный набор матчей одного тура.
type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// Bracket is the structural view of a tournament. Rounds is used by
// single, round-robin and league formats, Winners/Losers by double.
type Bracket struct {
	Rounds  []Round `json:"rounds,omitempty"`
	Winners []Round `json:"winners,omitempty"`
	Losers  []Round `json:"losers,omitempty"`
}

// Sections returns every round group in flattening order.
func (b *Bracket) Sections() [][]Round {
	return [][]Round{b.Rounds, b.Winners, b.Losers}
}

// Flatten returns all matches in round order, copied.
func (b *Bracket) Flatten() []Match {
	matches := make([]Match, 0)
	for _, section := range b.Sections() {
		for _, r := range section {
			for _, m := range r.Matches {
				matches = append(matches, m.Clone())
			}
		}
	}
	return matches
}

// Patch applies p to every structural occurrence of matchID and returns
// how many occurrences were changed.
func (b *Bracket) Patch(matchID string, p MatchPatch) int {
	changed := 0
	for _, section := range b.Sections() {
		for ri := range section {
			for mi := range section[ri].Matches {
				if section[ri].Matches[mi].ID == matchID {
					section[ri].Matches[mi].Apply(p)
					changed++
				}
			}
		}
	}
	return changed
}

// Clone returns a deep copy of the bracket.
func (b Bracket) Clone() Bracket {
	return Bracket{
		Rounds:  cloneRounds(b.Rounds),
		Winners: cloneRounds(b.Winners),
		Losers:  cloneRounds(b.Losers),
	}
}

func cloneRounds(rounds []Round) []Round {
	if rounds == nil {
		return nil
	}
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		out[i] = Round{Number: r.Number, Matches: make([]Match, len(r.Matches))}
		for j, m := range r.Matches {
			out[i].Matches[j] = m.Clone()
		}
	}
	return out
}

// SetPlayers replaces the player list of every structural occurrence of matchID.
func (b *Bracket) SetPlayers(matchID string, players []Player) int {
	changed := 0
	for _, section := range b.Sections() {
		for ri := range section {
			for mi := range section[ri].Matches {
				if section[ri].Matches[mi].ID == matchID {
					section[ri].Matches[mi].Players = append([]Player{}, players...)
					changed++
				}
			}
		}
	}
	return changed
}
