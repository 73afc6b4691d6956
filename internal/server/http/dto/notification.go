package dto

import (
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// NotificationResponse is the public view of a notification.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	RelatedID *int64    `json:"relatedId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNotificationResponse maps a notification.
func NewNotificationResponse(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt,
	}
}

// NewNotificationList maps a slice of notifications.
func NewNotificationList(items []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}

// NotificationEvent is the frame written to the notification stream.
type NotificationEvent struct {
	Event        string               `json:"event"`
	Notification NotificationResponse `json:"notification"`
}

// NewNotificationEvent wraps n for the stream.
func NewNotificationEvent(n model.Notification) NotificationEvent {
	return NotificationEvent{Event: "notification", Notification: NewNotificationResponse(n)}
}

// BotRequest is a message to the support bot.
type BotRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

// BotReplyResponse is the bot answer.
type BotReplyResponse struct {
	Intent      string   `json:"intent"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// NewBotReplyResponse maps a bot reply.
func NewBotReplyResponse(r model.BotReply) BotReplyResponse {
	return BotReplyResponse{Intent: r.Intent, Response: r.Message, Suggestions: r.Suggestions}
}

// BotStatsResponse exposes interaction counters.
type BotStatsResponse struct {
	TotalInteractions int64            `json:"totalInteractions"`
	ByIntent          map[string]int64 `json:"byIntent"`
}

// NewBotStatsResponse maps bot stats.
func NewBotStatsResponse(s model.BotStats) BotStatsResponse {
	return BotStatsResponse{TotalInteractions: s.Total, ByIntent: s.ByIntent}
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
