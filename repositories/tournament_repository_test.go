package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTournament(id string) *models.Tournament {
	winner := "p1"
	match := models.Match{
		ID:      "m1",
		Players: []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}},
		Score:   models.Score{3, 1},
		Winner:  &winner,
	}
	return &models.Tournament{
		ID:        id,
		Title:     "Cup",
		Format:    models.FormatSingle,
		Players:   match.Players,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Matches:   []models.Match{match},
		Bracket:   models.Bracket{Rounds: []models.Round{{Number: 1, Matches: []models.Match{match.Clone()}}}},
	}
}

func TestTournamentRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	repo := NewKVTournamentRepository(storage.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, sampleTournament("t1")))
	require.NoError(t, repo.Create(ctx, sampleTournament("t2")))
	assert.ErrorIs(t, repo.Create(ctx, sampleTournament("t1")), ErrTournamentConflict)

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Cup", got.Title)
	require.NotNil(t, got.Matches[0].Winner)
	assert.Equal(t, "p1", *got.Matches[0].Winner)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t2", list[0].ID, "newest first")

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTournamentRepository_UpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewKVTournamentRepository(storage.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, sampleTournament("t1")))

	failure := errors.New("boom")
	_, err := repo.Update(ctx, "t1", func(tr *models.Tournament) error {
		tr.Title = "changed"
		return failure
	})
	assert.ErrorIs(t, err, failure)

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Cup", got.Title)

	updated, err := repo.Update(ctx, "t1", func(tr *models.Tournament) error {
		tr.Title = "Renamed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = repo.Update(ctx, "missing", func(*models.Tournament) error { return nil })
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTournamentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewKVTournamentRepository(storage.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, sampleTournament("t1")))

	require.NoError(t, repo.Delete(ctx, "t1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t1"), ErrTournamentNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewKVUserRepository(storage.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "alice@example.com", Role: models.RolePlayer}))
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "u2", Email: "ALICE@example.com"}), ErrUserEmailConflict)

	byEmail, err := repo.GetByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = repo.GetByID(ctx, "u9")
	assert.ErrorIs(t, err, ErrUserNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
