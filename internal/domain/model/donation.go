package model

import "time"

// DonationStatus describes how far the receiving charity has progressed a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusAccepted  DonationStatus = "accepted"
	DonationStatusCompleted DonationStatus = "completed"
)

// Valid reports whether s is a known donation status.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusAccepted, DonationStatusCompleted:
		return true
	}
	return false
}

// CanAdvanceTo reports whether the charity may move a donation from s to next.
func (s DonationStatus) CanAdvanceTo(next DonationStatus) bool {
	switch s {
	case DonationStatusPending:
		return next == DonationStatusAccepted
	case DonationStatusAccepted:
		return next == DonationStatusCompleted
	}
	return false
}

// Donation links a donated order to a receiving charity.
type Donation struct {
	ID           int64
	OrderID      int64
	DonorID      int64
	OnlusID      int64
	DonationDate time.Time
	Status       DonationStatus
	Notes        string
}
