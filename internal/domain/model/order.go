package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusDonated   OrderStatus = "donated"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReady,
		OrderStatusCompleted, OrderStatusDonated, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the order can no longer be advanced or cancelled.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusDonated, OrderStatusCancelled:
		return true
	}
	return false
}

// CanAdvanceTo reports whether a restaurant may move an order from s to next.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return next == OrderStatusReady || next == OrderStatusCompleted
	case OrderStatusReady:
		return next == OrderStatusCompleted
	}
	return false
}

// Cancellable reports whether either party may cancel the order.
func (s OrderStatus) Cancellable() bool {
	return !s.Terminal()
}

// Donatable reports whether the order may still be given to a charity.
// Completed orders are donatable.
func (s OrderStatus) Donatable() bool {
	return s != OrderStatusDonated && s != OrderStatusCancelled
}

// Order is a customer's request for a quantity of a plan.
type Order struct {
	ID            int64
	CustomerID    int64
	PlanID        int64
	RestaurantID  int64
	Quantity      int
	DeliveryDate  time.Time
	Status        OrderStatus
	PickupPointID *int64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvolvesUser reports whether userID is the ordering customer or the restaurant.
func (o Order) InvolvesUser(userID int64) bool {
	return o.CustomerID == userID || o.RestaurantID == userID
}

// NewOrder holds the input for placing an order.
type NewOrder struct {
	CustomerID    int64
	PlanID        int64
	RestaurantID  int64
	Quantity      int
	DeliveryDate  time.Time
	PickupPointID *int64
	Notes         string
}
