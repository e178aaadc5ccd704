package services

import "github.com/Dosada05/tournament-manager/models"

// IsAdmin reports whether user may administer the tournament: global
// admins and the tournament's organizer can.
func IsAdmin(user *models.User, tournament *models.Tournament) bool {
	if user == nil || tournament == nil {
		return false
	}
	return user.Role == models.RoleAdmin || (user.ID != "" && user.ID == tournament.OrganizerID)
}
