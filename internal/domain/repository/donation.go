package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// DonationRepository describes persistence operations with donations.
type DonationRepository interface {
	// CreateFromOrder inserts the donation and marks the source order donated
	// atomically. It fails with ErrConflict when the order is no longer donatable.
	CreateFromOrder(ctx context.Context, donation model.Donation) (*model.Donation, error)
	GetByID(ctx context.Context, id int64) (*model.Donation, error)
	ListByDonor(ctx context.Context, donorID int64) ([]model.Donation, error)
	ListByOnlus(ctx context.Context, onlusID int64) ([]model.Donation, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.DonationStatus) (*model.Donation, error)
}
