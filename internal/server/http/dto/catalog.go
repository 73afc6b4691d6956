package dto

import (
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// PlanRequest describes a subscription plan payload.
type PlanRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=1000"`
	PlanType    string  `json:"planType" binding:"required,oneof=primo secondo completo"`
	BasePrice   float64 `json:"basePrice" binding:"required,gt=0"`
	Active      *bool   `json:"active"`
}

// Plan converts the payload. Plans are active unless stated otherwise.
func (r PlanRequest) Plan() model.SubscriptionPlan {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.SubscriptionPlan{
		Name:        r.Name,
		Description: r.Description,
		PlanType:    model.PlanType(r.PlanType),
		BasePrice:   r.BasePrice,
		Active:      active,
	}
}

// PlanResponse is the public view of a plan.
type PlanResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PlanType     string    `json:"planType"`
	BasePrice    float64   `json:"basePrice"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewPlanResponse maps a plan.
func NewPlanResponse(p model.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		RestaurantID: p.RestaurantID,
		Name:         p.Name,
		Description:  p.Description,
		PlanType:     string(p.PlanType),
		BasePrice:    p.BasePrice,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}

// NewPlanList maps a slice of plans.
func NewPlanList(plans []model.SubscriptionPlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, NewPlanResponse(p))
	}
	return out
}

// ListQuery narrows list endpoints to one restaurant or plan.
type ListQuery struct {
	RestaurantID int64 `form:"restaurantId" binding:"omitempty,gt=0"`
	PlanID       int64 `form:"planId" binding:"omitempty,gt=0"`
}

// PickupPointRequest describes a pickup point payload.
type PickupPointRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Address       string   `json:"address" binding:"required,max=200"`
	Latitude      *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	BusinessHours string   `json:"businessHours" binding:"max=200"`
}

// PickupPoint converts the payload.
func (r PickupPointRequest) PickupPoint() model.PickupPoint {
	p := model.PickupPoint{Name: r.Name, Address: r.Address, BusinessHours: r.BusinessHours}
	if r.Latitude != nil {
		p.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		p.Longitude = *r.Longitude
	}
	return p
}

// PickupPointResponse is the public view of a pickup point.
type PickupPointResponse struct {
	ID            int64     `json:"id"`
	RestaurantID  int64     `json:"restaurantId"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	BusinessHours string    `json:"businessHours,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewPickupPointResponse maps a pickup point.
func NewPickupPointResponse(p model.PickupPoint) PickupPointResponse {
	return PickupPointResponse{
		ID:            p.ID,
		RestaurantID:  p.RestaurantID,
		Name:          p.Name,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		BusinessHours: p.BusinessHours,
		CreatedAt:     p.CreatedAt,
	}
}

// NewPickupPointList maps a slice of pickup points.
func NewPickupPointList(points []model.PickupPoint) []PickupPointResponse {
	out := make([]PickupPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, NewPickupPointResponse(p))
	}
	return out
}

// NearbyPickupPointResponse is a pickup point annotated with its distance.
type NearbyPickupPointResponse struct {
	PickupPointResponse
	Distance float64 `json:"distance"`
}

// NewNearbyPickupPointList maps geo lookup results.
func NewNearbyPickupPointList(items []geo.Located[model.PickupPoint]) []NearbyPickupPointResponse {
	out := make([]NearbyPickupPointResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NearbyPickupPointResponse{PickupPointResponse: NewPickupPointResponse(it.Item), Distance: it.DistanceKm})
	}
	return out
}

// CreateReviewRequest describes a review payload.
type CreateReviewRequest struct {
	RestaurantID int64  `json:"restaurantId" binding:"required,gt=0"`
	PlanID       *int64 `json:"planId" binding:"omitempty,gt=0"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=1000"`
}

// Review converts the payload.
func (r CreateReviewRequest) Review() model.Review {
	return model.Review{RestaurantID: r.RestaurantID, PlanID: r.PlanID, Rating: r.Rating, Comment: r.Comment}
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	RestaurantID int64     `json:"restaurantId"`
	PlanID       *int64    `json:"planId,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewReviewResponse maps a review.
func NewReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		RestaurantID: r.RestaurantID,
		PlanID:       r.PlanID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

// NewReviewList maps a slice of reviews.
func NewReviewList(reviews []model.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewResponse(r))
	}
	return out
}
