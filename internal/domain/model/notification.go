package model

import "time"

// NotificationType groups notifications by the event that produced them.
type NotificationType string

const (
	NotificationOrderCreated   NotificationType = "order_created"
	NotificationOrderStatus    NotificationType = "order_status"
	NotificationDonationNew    NotificationType = "donation_received"
	NotificationDonationStatus NotificationType = "donation_status"
	NotificationReviewNew      NotificationType = "review_received"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	RelatedID *int64
	CreatedAt time.Time
}
