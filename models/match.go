package models

import "time"

// Score - счет матча в порядке Players[0], Players[1].
type Score [2]int

// Match - матч сетки. Меньше двух игроков означает заготовку или bye.
type Match struct {
	ID          string     `json:"id"`
	Players     []Player   `json:"players"`
	Score       Score      `json:"score"`
	Winner      *string    `json:"winner,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// MatchPatch is a partial match update. Nil fields are left untouched.
type MatchPatch struct {
	Score       *Score     `json:"score,omitempty"`
	Winner      *string    `json:"winner,omitempty"`
	ClearWinner bool       `json:"clear_winner,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// IsBye сообщает, что у матча нет полной пары игроков.
func (m *Match) IsBye() bool {
	return len(m.Players) < 2
}

// HasPlayer reports whether playerID takes part in the match.
func (m *Match) HasPlayer(playerID string) bool {
	for _, p := range m.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// WinnerFor derives the winner for a score: a tie leaves it unset,
// otherwise the side with more points wins.
func (m *Match) WinnerFor(score Score) *string {
	if score[0] == score[1] || len(m.Players) == 0 {
		return nil
	}
	idx := 0
	if score[1] > score[0] {
		idx = 1
	}
	if idx >= len(m.Players) {
		return nil
	}
	id := m.Players[idx].ID
	return &id
}

// Apply mutates the match with the non-nil fields of the patch.
func (m *Match) Apply(p MatchPatch) {
	if p.Score != nil {
		m.Score = *p.Score
	}
	if p.ClearWinner {
		m.Winner = nil
	}
	if p.Winner != nil {
		w := *p.Winner
		m.Winner = &w
	}
	if p.ScheduledAt != nil {
		at := *p.ScheduledAt
		m.ScheduledAt = &at
	}
}

// Clone returns a deep copy so two views never share pointers.
func (m Match) Clone() Match {
	c := m
	if m.Players != nil {
		c.Players = append([]Player(nil), m.Players...)
	}
	if m.Winner != nil {
		w := *m.Winner
		c.Winner = &w
	}
	if m.ScheduledAt != nil {
		at := *m.ScheduledAt
		c.ScheduledAt = &at
	}
	return c
}
