package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/services"
)

type MatchHandler struct {
	tournamentService services.TournamentService
	users             userLookup
}

func NewMatchHandler(ts services.TournamentService, users userLookup) *MatchHandler {
	return &MatchHandler{tournamentService: ts, users: users}
}

type setScoreInput struct {
	Score *models.Score `json:"score"`
}

func (h *MatchHandler) matchParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	if _, err := currentUser(r, h.users); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return "", "", false
	}
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	matchID, err := getStringParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return tournamentID, matchID, true
}

// UpdateMatchHandler обрабатывает PATCH /tournaments/{tournamentID}/matches/{matchID}.
// Отсутствующие в теле поля не меняются.
func (h *MatchHandler) UpdateMatchHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	var patch models.MatchPatch
	if err := readJSON(w, r, &patch); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateMatch(r.Context(), tournamentID, matchID, patch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeMatch(w, r, tournament, matchID)
}

// SetScoreHandler обрабатывает PUT /tournaments/{tournamentID}/matches/{matchID}/score
func (h *MatchHandler) SetScoreHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	var input setScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Score == nil {
		errorResponse(w, r, http.StatusBadRequest, "score is required")
		return
	}

	tournament, err := h.tournamentService.SetScore(r.Context(), tournamentID, matchID, *input.Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeMatch(w, r, tournament, matchID)
}

func (h *MatchHandler) writeMatch(w http.ResponseWriter, r *http.Request, t *models.Tournament, matchID string) {
	idx := t.MatchIndex(matchID)
	if idx < 0 {
		notFoundResponse(w, r, "")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": t.Matches[idx]}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
