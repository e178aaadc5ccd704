package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
	"github.com/Dosada05/tournament-manager/utils"
)

const defaultTournamentTitle = "Untitled"

// Clock returns the current time.
type Clock func() time.Time

type CreateTournamentInput struct {
	Title  string                  `json:"title"`
	Format models.TournamentFormat `json:"format"`
	// Players - имена участников; PlayersText - тот же список одной строкой
	// (по имени в строке или через запятую). Пустые записи пропускаются.
	Players      []string            `json:"players,omitempty"`
	PlayersText  string              `json:"players_text,omitempty"`
	ScheduleMode models.ScheduleMode `json:"schedule_mode,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, organizerID string, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)

	UpdateMatch(ctx context.Context, tournamentID, matchID string, patch models.MatchPatch) (*models.Tournament, error)
	SetScore(ctx context.Context, tournamentID, matchID string, score models.Score) (*models.Tournament, error)

	Disqualify(ctx context.Context, actor *models.User, tournamentID, playerID string) (*models.Tournament, error)
	RescheduleMany(ctx context.Context, actor *models.User, tournamentID string, matchIDs []string, at time.Time) (*models.Tournament, error)
	AutoSchedule(ctx context.Context, actor *models.User, tournamentID string, start time.Time, spacing time.Duration) (*models.Tournament, error)
	AdvanceWinners(ctx context.Context, actor *models.User, tournamentID string) (*models.Tournament, error)
	AddAdminNote(ctx context.Context, actor *models.User, tournamentID, note string) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, actor *models.User, tournamentID string) error

	PostMessage(ctx context.Context, actor *models.User, tournamentID, text string) (*models.ChatMessage, error)
}

type TournamentServiceDeps struct {
	Repo   repositories.TournamentRepository
	NewID  brackets.IDSource
	Clock  Clock
	Rand   *rand.Rand
	Hub    EventBroadcaster
	Logger *slog.Logger
}

type tournamentService struct {
	repo   repositories.TournamentRepository
	newID  brackets.IDSource
	clock  Clock
	rand   *rand.Rand
	randMu sync.Mutex
	hub    EventBroadcaster
	logger *slog.Logger
}

func NewTournamentService(deps TournamentServiceDeps) TournamentService {
	s := &tournamentService{
		repo:   deps.Repo,
		newID:  deps.NewID,
		clock:  deps.Clock,
		rand:   deps.Rand,
		hub:    deps.Hub,
		logger: deps.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = utils.UID
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *tournamentService) CreateTournament(ctx context.Context, organizerID string, input CreateTournamentInput) (*models.Tournament, error) {
	if !input.Format.Valid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidFormat, input.Format)
	}
	generator, err := brackets.ForFormat(input.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultTournamentTitle
	}
	mode := input.ScheduleMode
	if mode != models.ScheduleAuto {
		mode = models.ScheduleManual
	}

	names := append([]string{}, input.Players...)
	names = append(names, models.SplitPlayerNames(input.PlayersText)...)
	players := models.NewPlayers(names, s.newID)

	// *rand.Rand не потокобезопасен
	s.randMu.Lock()
	bracket, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		Players: players,
		NewID:   s.newID,
		Rand:    s.rand,
	})
	s.randMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bracket: %w", generator.GetName(), err)
	}

	tournament := &models.Tournament{
		ID:           s.newID("t"),
		Title:        title,
		Format:       input.Format,
		OrganizerID:  organizerID,
		Players:      players,
		CreatedAt:    s.clock().UTC(),
		ScheduleMode: mode,
		Matches:      bracket.Flatten(),
		Bracket:      bracket,
		Chat:         []models.ChatMessage{},
		AdminNotes:   []string{},
	}
	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("format", string(tournament.Format)),
		slog.Int("players", len(players)),
		slog.Int("matches", len(tournament.Matches)),
	)
	s.broadcast(tournament.ID, brackets.EventTournamentCreated, tournament)
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// UpdateMatch applies a partial update to the match in the flat list and in
// every structural occurrence. Unknown ids return ErrTournamentNotFound or
// ErrMatchNotFound.
func (s *tournamentService) UpdateMatch(ctx context.Context, tournamentID, matchID string, patch models.MatchPatch) (*models.Tournament, error) {
	if patch.Score != nil && (patch.Score[0] < 0 || patch.Score[1] < 0) {
		return nil, fmt.Errorf("%w: score must not be negative", ErrValidationFailed)
	}

	updated, err := s.repo.Update(ctx, tournamentID, func(t *models.Tournament) error {
		idx := t.MatchIndex(matchID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		if patch.Winner != nil {
			if err := requireFullMatch(t.Matches[idx]); err != nil {
				return err
			}
			if !t.Matches[idx].HasPlayer(*patch.Winner) {
				return fmt.Errorf("%w: winner %s does not play in match %s", ErrValidationFailed, *patch.Winner, matchID)
			}
		}
		t.PatchMatch(matchID, patch)
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}

	if idx := updated.MatchIndex(matchID); idx >= 0 {
		s.broadcast(tournamentID, brackets.EventMatchUpdated, updated.Matches[idx])
	}
	return updated, nil
}

// SetScore records a score and derives the winner from it: a tie clears
// the winner, otherwise the side with more points wins. A match still
// waiting for its second player cannot be scored.
func (s *tournamentService) SetScore(ctx context.Context, tournamentID, matchID string, score models.Score) (*models.Tournament, error) {
	if score[0] < 0 || score[1] < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", ErrValidationFailed)
	}

	updated, err := s.repo.Update(ctx, tournamentID, func(t *models.Tournament) error {
		idx := t.MatchIndex(matchID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		if err := requireFullMatch(t.Matches[idx]); err != nil {
			return err
		}
		winner := t.Matches[idx].WinnerFor(score)
		patch := models.MatchPatch{Score: &score, Winner: winner, ClearWinner: winner == nil}
		t.PatchMatch(matchID, patch)
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}

	if idx := updated.MatchIndex(matchID); idx >= 0 {
		s.broadcast(tournamentID, brackets.EventMatchUpdated, updated.Matches[idx])
	}
	return updated, nil
}

// Disqualify removes the player from the tournament roster and records an
// audit note. Matches already involving the player are left as they are.
func (s *tournamentService) Disqualify(ctx context.Context, actor *models.User, tournamentID, playerID string) (*models.Tournament, error) {
	updated, err := s.adminUpdate(ctx, actor, tournamentID, func(t *models.Tournament) error {
		idx := t.PlayerIndex(playerID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
		}
		player := t.Players[idx]
		t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
		t.AdminNotes = append(t.AdminNotes, fmt.Sprintf("%s: %s disqualified %s (%s)",
			s.clock().UTC().Format(time.RFC3339), actorName(actor), player.Name, player.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "player disqualified", slog.String("tournament_id", tournamentID), slog.String("player_id", playerID))
	return updated, nil
}

// RescheduleMany sets the same start time on every listed match. Ids that
// are not part of the tournament are skipped.
func (s *tournamentService) RescheduleMany(ctx context.Context, actor *models.User, tournamentID string, matchIDs []string, at time.Time) (*models.Tournament, error) {
	if at.IsZero() {
		return nil, fmt.Errorf("%w: schedule time is required", ErrValidationFailed)
	}
	at = at.UTC()
	return s.adminUpdate(ctx, actor, tournamentID, func(t *models.Tournament) error {
		seen := make(map[string]bool, len(matchIDs))
		for _, id := range matchIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if !t.PatchMatch(id, models.MatchPatch{ScheduledAt: &at}) {
				s.logger.DebugContext(ctx, "reschedule skipped unknown match", slog.String("tournament_id", tournamentID), slog.String("match_id", id))
			}
		}
		return nil
	})
}

// AutoSchedule spaces rounds evenly: every match of the r-th round (in
// structural order) starts at start + r*spacing.
func (s *tournamentService) AutoSchedule(ctx context.Context, actor *models.User, tournamentID string, start time.Time, spacing time.Duration) (*models.Tournament, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive", ErrValidationFailed)
	}
	if start.IsZero() {
		start = s.clock()
	}
	start = start.UTC()
	return s.adminUpdate(ctx, actor, tournamentID, func(t *models.Tournament) error {
		roundIdx := 0
		for _, section := range t.Bracket.Sections() {
			for _, round := range section {
				at := start.Add(time.Duration(roundIdx) * spacing)
				for _, m := range round.Matches {
					t.PatchMatch(m.ID, models.MatchPatch{ScheduledAt: &at})
				}
				roundIdx++
			}
		}
		t.ScheduleMode = models.ScheduleAuto
		return nil
	})
}

// AdvanceWinners moves recorded winners and bye players into the next
// elimination round. It is never run implicitly by match updates.
func (s *tournamentService) AdvanceWinners(ctx context.Context, actor *models.User, tournamentID string) (*models.Tournament, error) {
	return s.adminUpdate(ctx, actor, tournamentID, func(t *models.Tournament) error {
		rounds := t.EliminationRounds()
		if rounds == nil {
			return fmt.Errorf("%w: format %s has no elimination rounds", ErrValidationFailed, t.Format)
		}
		for _, adv := range brackets.AdvanceWinners(rounds) {
			t.SetMatchPlayers(adv.MatchID, adv.Players)
		}
		return nil
	})
}

func (s *tournamentService) AddAdminNote(ctx context.Context, actor *models.User, tournamentID, note string) (*models.Tournament, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, fmt.Errorf("%w: note must not be empty", ErrValidationFailed)
	}
	return s.adminUpdate(ctx, actor, tournamentID, func(t *models.Tournament) error {
		t.AdminNotes = append(t.AdminNotes, fmt.Sprintf("%s: %s", actorName(actor), note))
		return nil
	})
}

func (s *tournamentService) DeleteTournament(ctx context.Context, actor *models.User, tournamentID string) error {
	t, err := s.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return handleRepositoryError(err, tournamentID)
	}
	if !IsAdmin(actor, t) {
		return ErrForbiddenOperation
	}
	if err := s.repo.Delete(ctx, tournamentID); err != nil {
		return handleRepositoryError(err, tournamentID)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", tournamentID))
	s.broadcast(tournamentID, brackets.EventTournamentDeleted, map[string]string{"id": tournamentID})
	return nil
}

func (s *tournamentService) PostMessage(ctx context.Context, actor *models.User, tournamentID, text string) (*models.ChatMessage, error) {
	if actor == nil {
		return nil, ErrAuthenticationFailed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidationFailed)
	}
	msg := models.ChatMessage{
		ID:        s.newID("c"),
		UserID:    actor.ID,
		Author:    actorName(actor),
		Text:      text,
		CreatedAt: s.clock().UTC(),
	}
	_, err := s.repo.Update(ctx, tournamentID, func(t *models.Tournament) error {
		t.Chat = append(t.Chat, msg)
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}
	s.broadcast(tournamentID, brackets.EventChatMessage, msg)
	return &msg, nil
}

// adminUpdate runs mutate only when actor administers the tournament.
func (s *tournamentService) adminUpdate(ctx context.Context, actor *models.User, tournamentID string, mutate repositories.MutateFunc) (*models.Tournament, error) {
	updated, err := s.repo.Update(ctx, tournamentID, func(t *models.Tournament) error {
		if !IsAdmin(actor, t) {
			return ErrForbiddenOperation
		}
		return mutate(t)
	})
	if err != nil {
		return nil, handleRepositoryError(err, tournamentID)
	}
	s.broadcast(tournamentID, brackets.EventTournamentUpdated, updated)
	return updated, nil
}

func (s *tournamentService) broadcast(tournamentID, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(brackets.TournamentRoom(tournamentID), brackets.WebSocketMessage{
		Type:    eventType,
		Payload: payload,
	})
}

// requireFullMatch: результат можно записать только в матч с двумя игроками.
// Bye и матчи следующих туров, ожидающие соперника, решить нельзя.
func requireFullMatch(m models.Match) error {
	if len(m.Players) < 2 {
		return fmt.Errorf("%w: match %s has %d of 2 players", ErrValidationFailed, m.ID, len(m.Players))
	}
	return nil
}

// handleRepositoryError переводит ошибки репозитория в ошибки сервиса.
func handleRepositoryError(err error, tournamentID string) error {
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
	}
	return err
}

func actorName(u *models.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
