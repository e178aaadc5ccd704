package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-manager/services"
)

type ChatHandler struct {
	tournamentService services.TournamentService
	users             userLookup
}

func NewChatHandler(ts services.TournamentService, users userLookup) *ChatHandler {
	return &ChatHandler{tournamentService: ts, users: users}
}

type postMessageInput struct {
	Text string `json:"text"`
}

// ListHandler обрабатывает GET /tournaments/{tournamentID}/chat
func (h *ChatHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"messages": t.Chat}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PostHandler обрабатывает POST /tournaments/{tournamentID}/chat
func (h *ChatHandler) PostHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input postMessageInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	msg, err := h.tournamentService.PostMessage(r.Context(), user, tournamentID, input.Text)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"message": msg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
