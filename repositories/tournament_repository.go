package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/storage"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament id already exists")
)

// MutateFunc changes a private copy of a tournament. Returning an error
// discards the copy and nothing is written.
type MutateFunc func(t *models.Tournament) error

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, id string, mutate MutateFunc) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
}

// kvTournamentRepository хранит всю коллекцию турниров под одним ключом.
// Каждая мутация - копирование, изменение и полная замена коллекции.
type kvTournamentRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewKVTournamentRepository(store storage.Store) TournamentRepository {
	return &kvTournamentRepository{store: store}
}

func (r *kvTournamentRepository) load(ctx context.Context) ([]models.Tournament, error) {
	tournaments := []models.Tournament{}
	if err := r.store.Get(ctx, tournamentsKey, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	return tournaments, nil
}

func (r *kvTournamentRepository) save(ctx context.Context, tournaments []models.Tournament) error {
	if err := r.store.Set(ctx, tournamentsKey, tournaments); err != nil {
		return fmt.Errorf("failed to save tournaments: %w", err)
	}
	return nil
}

func (r *kvTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		if t.ID == tournament.ID {
			return ErrTournamentConflict
		}
	}
	// новые турниры идут первыми, как в списке на главной странице
	tournaments = append([]models.Tournament{tournament.Clone()}, tournaments...)
	return r.save(ctx, tournaments)
}

func (r *kvTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		if tournaments[i].ID == id {
			t := tournaments[i]
			return &t, nil
		}
	}
	return nil, ErrTournamentNotFound
}

func (r *kvTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *kvTournamentRepository) Update(ctx context.Context, id string, mutate MutateFunc) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		if tournaments[i].ID != id {
			continue
		}
		updated := tournaments[i].Clone()
		if err := mutate(&updated); err != nil {
			return nil, err
		}
		tournaments[i] = updated
		if err := r.save(ctx, tournaments); err != nil {
			return nil, err
		}
		result := updated.Clone()
		return &result, nil
	}
	return nil, ErrTournamentNotFound
}

func (r *kvTournamentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range tournaments {
		if tournaments[i].ID == id {
			tournaments = append(tournaments[:i], tournaments[i+1:]...)
			return r.save(ctx, tournaments)
		}
	}
	return ErrTournamentNotFound
}
