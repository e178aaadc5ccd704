package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tournament-manager/models"
	"github.com/Dosada05/tournament-manager/repositories"
)

const (
	DefaultReminderInterval = 30 * time.Second
	DefaultReminderWindow   = time.Hour
)

// Reminder - матч, который начнется в пределах окна напоминаний.
type Reminder struct {
	TournamentID    string
	TournamentTitle string
	Match           models.Match
	StartsIn        time.Duration
}

type ReminderServiceDeps struct {
	Repo     repositories.TournamentRepository
	Notifier Notifier
	Clock    Clock
	Interval time.Duration
	Window   time.Duration
	Logger   *slog.Logger
}

// ReminderService периодически просматривает расписание и уведомляет о
// скорых матчах. Повторные уведомления между проходами не подавляются:
// матч, остающийся в окне, напоминается на каждом проходе.
type ReminderService struct {
	repo     repositories.TournamentRepository
	notifier Notifier
	clock    Clock
	interval time.Duration
	window   time.Duration
	logger   *slog.Logger
}

func NewReminderService(deps ReminderServiceDeps) *ReminderService {
	s := &ReminderService{
		repo:     deps.Repo,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		interval: deps.Interval,
		window:   deps.Window,
		logger:   deps.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.interval <= 0 {
		s.interval = DefaultReminderInterval
	}
	if s.window <= 0 {
		s.window = DefaultReminderWindow
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan returns matches scheduled after now and no later than now+window.
// It never modifies tournaments.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) ([]Reminder, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments for reminders: %w", err)
	}

	var reminders []Reminder
	for _, t := range tournaments {
		for _, m := range t.Matches {
			if m.ScheduledAt == nil {
				continue
			}
			diff := m.ScheduledAt.Sub(now)
			if diff <= 0 || diff > s.window {
				continue
			}
			reminders = append(reminders, Reminder{
				TournamentID:    t.ID,
				TournamentTitle: t.Title,
				Match:           m.Clone(),
				StartsIn:        diff,
			})
		}
	}
	return reminders, nil
}

// RunOnce performs a single scan and sends one notification per reminder.
func (s *ReminderService) RunOnce(ctx context.Context) (int, error) {
	reminders, err := s.Scan(ctx, s.clock())
	if err != nil {
		return 0, err
	}
	for _, r := range reminders {
		title, body := reminderText(r)
		s.notifier.Notify(ctx, title, body)
	}
	if len(reminders) > 0 {
		s.logger.InfoContext(ctx, "reminders sent", slog.Int("count", len(reminders)))
	}
	return len(reminders), nil
}

// Run scans on every tick until ctx is cancelled.
func (s *ReminderService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.logger.Info("reminder scheduler started", slog.Duration("interval", s.interval), slog.Duration("window", s.window))

	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("reminder scan failed", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func reminderText(r Reminder) (string, string) {
	names := make([]string, 0, len(r.Match.Players))
	for _, p := range r.Match.Players {
		names = append(names, p.Name)
	}
	who := strings.Join(names, " vs ")
	if who == "" {
		who = "Match " + r.Match.ID
	}
	minutes := int(r.StartsIn.Round(time.Minute) / time.Minute)
	title := fmt.Sprintf("%s: match starting soon", r.TournamentTitle)
	body := fmt.Sprintf("%s starts in %d min (%s UTC)", who, minutes, r.Match.ScheduledAt.UTC().Format("15:04"))
	return title, body
}
