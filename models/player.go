package models

import "strings"

// Player - участник турнира. Создается из свободного текста при создании турнира.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SplitPlayerNames разбирает ввод организатора: по одному имени в строке
// или через запятую. Пустые записи пропускаются, ошибки не возвращается.
func SplitPlayerNames(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NewPlayers builds players from names, skipping blank ones. newID is
// called once per kept name.
func NewPlayers(names []string, newID func(prefix string) string) []Player {
	players := make([]Player, 0, len(names))
	for _, n := range names {
		name := strings.TrimSpace(n)
		if name == "" {
			continue
		}
		players = append(players, Player{ID: newID("p"), Name: name})
	}
	return players
}
