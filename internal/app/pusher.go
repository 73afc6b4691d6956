package app

import (
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/realtime"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
)

// notificationPusher writes notifications to the hub in their wire shape.
type notificationPusher struct {
	hub *realtime.Hub
}

func newNotificationPusher(hub *realtime.Hub) *notificationPusher {
	return &notificationPusher{hub: hub}
}

func (p *notificationPusher) Push(userID int64, payload any) int {
	if n, ok := payload.(model.Notification); ok {
		payload = dto.NewNotificationEvent(n)
	}
	return p.hub.Push(userID, payload)
}
