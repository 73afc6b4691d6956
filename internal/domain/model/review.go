package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a restaurant, optionally for a specific plan.
type Review struct {
	ID           int64
	CustomerID   int64
	RestaurantID int64
	PlanID       *int64
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

// ReviewFilter selects reviews by restaurant or plan. Zero fields are ignored.
type ReviewFilter struct {
	RestaurantID int64
	PlanID       int64
}
