package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
	"github.com/Dosada05/tournament-manager/storage"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// sequentialIDs выдает предсказуемые идентификаторы p1, p2, m3...
func sequentialIDs() brackets.IDSource {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

type recordedEvent struct {
	room    string
	message brackets.WebSocketMessage
}

type recordingHub struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (h *recordingHub) BroadcastToRoom(roomID string, message brackets.WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, recordedEvent{room: roomID, message: message})
}

func (h *recordingHub) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.message.Type)
	}
	return out
}

type testEnv struct {
	repo    repositories.TournamentRepository
	hub     *recordingHub
	service TournamentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repositories.NewKVTournamentRepository(storage.NewMemoryStore())
	hub := &recordingHub{}
	svc := NewTournamentService(TournamentServiceDeps{
		Repo:  repo,
		NewID: sequentialIDs(),
		Clock: fixedClock,
		Rand:  rand.New(rand.NewSource(42)),
		Hub:   hub,
	})
	return &testEnv{repo: repo, hub: hub, service: svc}
}

var (
	organizer = &models.User{ID: "u_org", Name: "Olga", Role: models.RolePlayer}
	admin     = &models.User{ID: "u_admin", Name: "Root", Role: models.RoleAdmin}
	stranger  = &models.User{ID: "u_other", Name: "Sam", Role: models.RolePlayer}
)

func (e *testEnv) create(t *testing.T, format models.TournamentFormat, names ...string) *models.Tournament {
	t.Helper()
	tr, err := e.service.CreateTournament(context.Background(), organizer.ID, CreateTournamentInput{
		Title:   "Spring Cup",
		Format:  format,
		Players: names,
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return tr
}

// structuralMatches собирает все вхождения матчей из структурного вида.
func structuralMatches(b models.Bracket) map[string]models.Match {
	out := make(map[string]models.Match)
	for _, section := range b.Sections() {
		for _, r := range section {
			for _, m := range r.Matches {
				out[m.ID] = m
			}
		}
	}
	return out
}
