package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/tournament-manager/brackets"
)

// Notifier доставляет уведомление пользователю. Доставка не гарантируется:
// ошибки логируются реализацией и не возвращаются.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// EventBroadcaster рассылает события в комнаты websocket хаба.
type EventBroadcaster interface {
	BroadcastToRoom(roomID string, message brackets.WebSocketMessage)
}

type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type hubNotifier struct {
	hub EventBroadcaster
}

// NewHubNotifier pushes notifications to every client in the notifications room.
func NewHubNotifier(hub EventBroadcaster) Notifier {
	return &hubNotifier{hub: hub}
}

func (n *hubNotifier) Notify(ctx context.Context, title, body string) {
	n.hub.BroadcastToRoom(brackets.NotificationsRoom, brackets.WebSocketMessage{
		Type:    brackets.EventNotification,
		Payload: NotificationPayload{Title: title, Body: body},
	})
}

type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, title, body string) {
	n.logger.InfoContext(ctx, "notification", slog.String("title", title), slog.String("body", body))
}

type multiNotifier []Notifier

// NewMultiNotifier fans a notification out to every non-nil notifier.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	m := make(multiNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multiNotifier) Notify(ctx context.Context, title, body string) {
	for _, n := range m {
		n.Notify(ctx, title, body)
	}
}
