package dto

import (
	"errors"
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

var ErrInvalidDate = errors.New("invalid date")

// CreateOrderRequest describes an order payload.
type CreateOrderRequest struct {
	PlanID        int64  `json:"planId" binding:"required,gt=0"`
	RestaurantID  int64  `json:"restaurantId" binding:"omitempty,gt=0"`
	Quantity      int    `json:"quantity" binding:"required,min=1,max=100"`
	DeliveryDate  string `json:"deliveryDate" binding:"required"`
	PickupPointID *int64 `json:"pickupPointId" binding:"omitempty,gt=0"`
	Notes         string `json:"notes" binding:"max=500"`
}

// Order converts the payload. The delivery date accepts YYYY-MM-DD or RFC 3339.
func (r CreateOrderRequest) Order() (model.NewOrder, error) {
	date, err := ParseDate(r.DeliveryDate)
	if err != nil {
		return model.NewOrder{}, err
	}
	return model.NewOrder{
		PlanID:        r.PlanID,
		RestaurantID:  r.RestaurantID,
		Quantity:      r.Quantity,
		DeliveryDate:  date,
		PickupPointID: r.PickupPointID,
		Notes:         r.Notes,
	}, nil
}

// ParseDate reads a calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// UpdateStatusRequest carries the target status of an order or donation.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customerId"`
	PlanID        int64     `json:"planId"`
	RestaurantID  int64     `json:"restaurantId"`
	Quantity      int       `json:"quantity"`
	DeliveryDate  string    `json:"deliveryDate"`
	Status        string    `json:"status"`
	PickupPointID *int64    `json:"pickupPointId,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		PlanID:        o.PlanID,
		RestaurantID:  o.RestaurantID,
		Quantity:      o.Quantity,
		DeliveryDate:  o.DeliveryDate.Format(time.DateOnly),
		Status:        string(o.Status),
		PickupPointID: o.PickupPointID,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// NewOrderList maps a slice of orders.
func NewOrderList(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// CreateDonationRequest describes a donation payload.
type CreateDonationRequest struct {
	OrderID int64  `json:"orderId" binding:"required,gt=0"`
	OnlusID int64  `json:"onlusId" binding:"required,gt=0"`
	Notes   string `json:"notes" binding:"max=500"`
}

// DonationResponse is the public view of a donation.
type DonationResponse struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	DonorID      int64     `json:"donorId"`
	OnlusID      int64     `json:"onlusId"`
	DonationDate time.Time `json:"donationDate"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
}

// NewDonationResponse maps a donation.
func NewDonationResponse(d model.Donation) DonationResponse {
	return DonationResponse{
		ID:           d.ID,
		OrderID:      d.OrderID,
		DonorID:      d.DonorID,
		OnlusID:      d.OnlusID,
		DonationDate: d.DonationDate,
		Status:       string(d.Status),
		Notes:        d.Notes,
	}
}

// NewDonationList maps a slice of donations.
func NewDonationList(donations []model.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, NewDonationResponse(d))
	}
	return out
}
