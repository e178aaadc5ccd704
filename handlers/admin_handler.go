package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/services"
)

// AdminHandler обслуживает административные действия над турниром.
// Права проверяются в сервисе.
type AdminHandler struct {
	tournamentService services.TournamentService
	users             userLookup
	defaultSpacing    time.Duration
}

func NewAdminHandler(ts services.TournamentService, users userLookup, defaultSpacing time.Duration) *AdminHandler {
	return &AdminHandler{tournamentService: ts, users: users, defaultSpacing: defaultSpacing}
}

type rescheduleInput struct {
	MatchIDs    []string   `json:"match_ids"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type autoScheduleInput struct {
	Start          *time.Time `json:"start,omitempty"`
	SpacingMinutes int        `json:"spacing_minutes,omitempty"`
}

type noteInput struct {
	Note string `json:"note"`
}

func (h *AdminHandler) actorAndTournament(w http.ResponseWriter, r *http.Request) (*models.User, string, bool) {
	user, err := currentUser(r, h.users)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, "", false
	}
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return nil, "", false
	}
	return user, tournamentID, true
}

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, t *models.Tournament, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DisqualifyHandler обрабатывает POST /tournaments/{tournamentID}/players/{playerID}/disqualify
func (h *AdminHandler) DisqualifyHandler(w http.ResponseWriter, r *http.Request) {
	user, tournamentID, ok := h.actorAndTournament(w, r)
	if !ok {
		return
	}
	playerID, err := getStringParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Disqualify(r.Context(), user, tournamentID, playerID)
	h.respond(w, r, t, err)
}

// RescheduleHandler обрабатывает POST /tournaments/{tournamentID}/reschedule
func (h *AdminHandler) RescheduleHandler(w http.ResponseWriter, r *http.Request) {
	user, tournamentID, ok := h.actorAndTournament(w, r)
	if !ok {
		return
	}
	var input rescheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.MatchIDs) == 0 || input.ScheduledAt == nil {
		badRequestResponse(w, r, errors.New("match_ids and scheduled_at are required"))
		return
	}
	t, err := h.tournamentService.RescheduleMany(r.Context(), user, tournamentID, input.MatchIDs, *input.ScheduledAt)
	h.respond(w, r, t, err)
}

// AutoScheduleHandler обрабатывает POST /tournaments/{tournamentID}/auto-schedule.
// Без start расписание начинается сейчас, без spacing_minutes берется значение из конфигурации.
func (h *AdminHandler) AutoScheduleHandler(w http.ResponseWriter, r *http.Request) {
	user, tournamentID, ok := h.actorAndTournament(w, r)
	if !ok {
		return
	}
	var input autoScheduleInput
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}
	if input.SpacingMinutes < 0 {
		badRequestResponse(w, r, errors.New("spacing_minutes must not be negative"))
		return
	}

	spacing := h.defaultSpacing
	if input.SpacingMinutes > 0 {
		spacing = time.Duration(input.SpacingMinutes) * time.Minute
	}
	var start time.Time
	if input.Start != nil {
		start = *input.Start
	}
	t, err := h.tournamentService.AutoSchedule(r.Context(), user, tournamentID, start, spacing)
	h.respond(w, r, t, err)
}

// AdvanceHandler обрабатывает POST /tournaments/{tournamentID}/advance
func (h *AdminHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	user, tournamentID, ok := h.actorAndTournament(w, r)
	if !ok {
		return
	}
	t, err := h.tournamentService.AdvanceWinners(r.Context(), user, tournamentID)
	h.respond(w, r, t, err)
}

// AddNoteHandler обрабатывает POST /tournaments/{tournamentID}/notes
func (h *AdminHandler) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	user, tournamentID, ok := h.actorAndTournament(w, r)
	if !ok {
		return
	}
	var input noteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if strings.TrimSpace(input.Note) == "" {
		badRequestResponse(w, r, errors.New("note is required"))
		return
	}
	t, err := h.tournamentService.AddAdminNote(r.Context(), user, tournamentID, input.Note)
	h.respond(w, r, t, err)
}
