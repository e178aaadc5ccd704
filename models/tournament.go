package models

import "time"

// TournamentFormat - формат турнира.
type TournamentFormat string

const (
	FormatSingle     TournamentFormat = "single"
	FormatDouble     TournamentFormat = "double"
	FormatRoundRobin TournamentFormat = "roundrobin"
	FormatLeague     TournamentFormat = "league"
)

// Valid reports whether f is one of the supported formats.
func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatSingle, FormatDouble, FormatRoundRobin, FormatLeague:
		return true
	}
	return false
}

// ScheduleMode хранится, но не применяется при создании: авто-расстановка
// времени выполняется отдельным действием администратора.
type ScheduleMode string

const (
	ScheduleManual ScheduleMode = "manual"
	ScheduleAuto   ScheduleMode = "auto"
)

// ChatMessage - сообщение в чате турнира.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Tournament представляет турнир. Matches (плоский вид) и Bracket
// (структурный вид) всегда содержат одни и те же матчи с одинаковыми полями.
type Tournament struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Format       TournamentFormat `json:"format"`
	OrganizerID  string           `json:"organizer_id"`
	Players      []Player         `json:"players"`
	CreatedAt    time.Time        `json:"created_at"`
	ScheduleMode ScheduleMode     `json:"schedule_mode"`
	Matches      []Match          `json:"matches"`
	Bracket      Bracket          `json:"bracket"`
	Chat         []ChatMessage    `json:"chat"`
	AdminNotes   []string         `json:"admin_notes"`
}

// MatchIndex returns the flat index of matchID or -1.
func (t *Tournament) MatchIndex(matchID string) int {
	for i := range t.Matches {
		if t.Matches[i].ID == matchID {
			return i
		}
	}
	return -1
}

// PatchMatch applies p to the flat entry and to every structural
// occurrence of matchID. It returns false when the id is unknown.
func (t *Tournament) PatchMatch(matchID string, p MatchPatch) bool {
	idx := t.MatchIndex(matchID)
	if idx < 0 {
		return false
	}
	t.Matches[idx].Apply(p)
	t.Bracket.Patch(matchID, p)
	return true
}

// PlayerIndex returns the index of playerID in Players or -1.
func (t *Tournament) PlayerIndex(playerID string) int {
	for i, p := range t.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy, used for copy-and-replace mutations.
func (t Tournament) Clone() Tournament {
	c := t
	c.Players = append([]Player(nil), t.Players...)
	c.Matches = make([]Match, len(t.Matches))
	for i, m := range t.Matches {
		c.Matches[i] = m.Clone()
	}
	c.Bracket = t.Bracket.Clone()
	c.Chat = append([]ChatMessage(nil), t.Chat...)
	c.AdminNotes = append([]string(nil), t.AdminNotes...)
	return c
}

// SetMatchPlayers replaces the players of matchID in both views.
func (t *Tournament) SetMatchPlayers(matchID string, players []Player) bool {
	idx := t.MatchIndex(matchID)
	if idx < 0 {
		return false
	}
	t.Matches[idx].Players = append([]Player{}, players...)
	t.Bracket.SetPlayers(matchID, players)
	return true
}

// EliminationRounds returns the rounds that winners advance through: the
// single elimination bracket or the winners side of double elimination.
func (t *Tournament) EliminationRounds() []Round {
	switch t.Format {
	case FormatSingle:
		return t.Bracket.Rounds
	case FormatDouble:
		return t.Bracket.Winners
	}
	return nil
}
