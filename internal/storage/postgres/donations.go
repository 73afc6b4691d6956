package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type donationRepository struct {
	storage *Storage
}

const donationColumns = `id, order_id, donor_id, onlus_id, donation_date, status, notes`

func scanDonation(row pgx.Row, d *model.Donation) error {
	return row.Scan(&d.ID, &d.OrderID, &d.DonorID, &d.OnlusID, &d.DonationDate, &d.Status, &d.Notes)
}

// CreateFromOrder locks the source order, inserts the donation and flips the
// order to donated in one transaction.
func (r *donationRepository) CreateFromOrder(ctx context.Context, donation model.Donation) (*model.Donation, error) {
	var created model.Donation
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var status model.OrderStatus
		if err := tx.QueryRow(ctx, lockQuery, donation.OrderID).Scan(&status); err != nil {
			return translateError(err)
		}
		if !status.Donatable() {
			return fmt.Errorf("order %d is %s: %w", donation.OrderID, status, domainErrors.ErrConflict)
		}

		insertQuery := `INSERT INTO donations (order_id, donor_id, onlus_id, status, notes)
                        VALUES ($1, $2, $3, $4, $5)
                        RETURNING ` + donationColumns
		row := tx.QueryRow(ctx, insertQuery, donation.OrderID, donation.DonorID, donation.OnlusID, model.DonationStatusPending, donation.Notes)
		if err := scanDonation(row, &created); err != nil {
			err = translateError(err)
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				return fmt.Errorf("order %d already donated: %w", donation.OrderID, domainErrors.ErrConflict)
			}
			return err
		}

		const updateQuery = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, updateQuery, donation.OrderID, model.OrderStatusDonated); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *donationRepository) GetByID(ctx context.Context, id int64) (*model.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id=$1`
	var d model.Donation
	if err := scanDonation(r.storage.pool.QueryRow(ctx, query, id), &d); err != nil {
		return nil, translateError(err)
	}
	return &d, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID int64) ([]model.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE donor_id=$1 ORDER BY donation_date DESC`
	rows, err := r.storage.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDonation)
}

func (r *donationRepository) ListByOnlus(ctx context.Context, onlusID int64) ([]model.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE onlus_id=$1 ORDER BY donation_date DESC`
	rows, err := r.storage.pool.Query(ctx, query, onlusID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDonation)
}

func (r *donationRepository) UpdateStatus(ctx context.Context, id int64, from, to model.DonationStatus) (*model.Donation, error) {
	query := `UPDATE donations SET status=$3
              WHERE id=$1 AND status=$2
              RETURNING ` + donationColumns
	var updated model.Donation
	err := scanDonation(r.storage.pool.QueryRow(ctx, query, id, from, to), &updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translateError(err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("donation %d is no longer %s: %w", id, from, domainErrors.ErrConflict)
}
