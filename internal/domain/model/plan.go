package model

import "time"

// PlanType classifies what a subscription plan includes.
type PlanType string

const (
	PlanTypePrimo    PlanType = "primo"
	PlanTypeSecondo  PlanType = "secondo"
	PlanTypeCompleto PlanType = "completo"
)

// Valid reports whether t is a known plan type.
func (t PlanType) Valid() bool {
	switch t {
	case PlanTypePrimo, PlanTypeSecondo, PlanTypeCompleto:
		return true
	}
	return false
}

// SubscriptionPlan is a restaurant-authored meal offering.
type SubscriptionPlan struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	PlanType     PlanType
	BasePrice    float64
	Active       bool
	CreatedAt    time.Time
}
