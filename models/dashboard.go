package models

type DashboardStats struct {
	UsersTotal       int `json:"users_total"`
	TournamentsTotal int `json:"tournaments_total"`
	PlayersTotal     int `json:"players_total"`
	MatchesTotal     int `json:"matches_total"`
	MatchesDecided   int `json:"matches_decided"`
	MatchesUpcoming  int `json:"matches_upcoming"`
}
