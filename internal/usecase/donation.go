package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// DonationUseCase hands customer orders over to charities.
type DonationUseCase struct {
	donations repository.DonationRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	notifier  Notifier
}

// NewDonationUseCase constructs DonationUseCase.
func NewDonationUseCase(
	donations repository.DonationRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	notifier Notifier,
) *DonationUseCase {
	return &DonationUseCase{donations: donations, orders: orders, users: users, notifier: notifier}
}

// Create donates one of the caller's orders to a charity. The order becomes
// donated in the same write that records the donation.
func (u *DonationUseCase) Create(ctx context.Context, actor model.Actor, orderID, onlusID int64, notes string) (*model.Donation, error) {
	if err := requireRole(actor, model.UserTypeCustomer); err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, notFound("order", orderID, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	if order.CustomerID != actor.UserID {
		return nil, fmt.Errorf("order %d: %w", orderID, domainErrors.ErrForbidden)
	}
	switch {
	case order.Status == model.OrderStatusDonated:
		return nil, fmt.Errorf("order %d already donated: %w", orderID, domainErrors.ErrConflict)
	case !order.Status.Donatable():
		return nil, fmt.Errorf("order %d %s -> %s: %w", orderID, order.Status, model.OrderStatusDonated, domainErrors.ErrInvalidTransition)
	}

	onlus, err := u.users.GetByID(ctx, onlusID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, notFound("onlus", onlusID, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	if onlus.UserType != model.UserTypeOnlus {
		return nil, domainErrors.Invalid("onlusId", "il destinatario non è una onlus")
	}

	donation, err := u.donations.CreateFromOrder(ctx, model.Donation{
		OrderID: order.ID,
		DonorID: actor.UserID,
		OnlusID: onlus.ID,
		Status:  model.DonationStatusPending,
		Notes:   strings.TrimSpace(notes),
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, model.Notification{
		UserID:    onlus.ID,
		Type:      model.NotificationDonationNew,
		Title:     "Nuova donazione",
		Message:   fmt.Sprintf("Hai ricevuto in dono l'ordine #%d.", order.ID),
		RelatedID: int64Ptr(donation.ID),
	})
	u.notifier.Notify(ctx, model.Notification{
		UserID:    order.RestaurantID,
		Type:      model.NotificationOrderStatus,
		Title:     "Ordine donato",
		Message:   fmt.Sprintf("L'ordine #%d è stato donato a %s.", order.ID, displayName(*onlus)),
		RelatedID: int64Ptr(order.ID),
	})
	return donation, nil
}

// List returns donations made by a customer or received by a charity.
func (u *DonationUseCase) List(ctx context.Context, actor model.Actor) ([]model.Donation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	switch actor.UserType {
	case model.UserTypeCustomer:
		return u.donations.ListByDonor(ctx, actor.UserID)
	case model.UserTypeOnlus:
		return u.donations.ListByOnlus(ctx, actor.UserID)
	}
	return nil, fmt.Errorf("donations: %w", domainErrors.ErrForbidden)
}

// UpdateStatus lets the receiving charity move a donation forward.
func (u *DonationUseCase) UpdateStatus(ctx context.Context, actor model.Actor, id int64, next model.DonationStatus) (*model.Donation, error) {
	if err := requireRole(actor, model.UserTypeOnlus); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, domainErrors.Invalid("status", "stato non valido")
	}

	donation, err := u.donations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.OnlusID != actor.UserID {
		return nil, fmt.Errorf("donation %d: %w", id, domainErrors.ErrForbidden)
	}
	if !donation.Status.CanAdvanceTo(next) {
		return nil, fmt.Errorf("donation %d %s -> %s: %w", id, donation.Status, next, domainErrors.ErrInvalidTransition)
	}

	updated, err := u.donations.UpdateStatus(ctx, id, donation.Status, next)
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, model.Notification{
		UserID:    updated.DonorID,
		Type:      model.NotificationDonationStatus,
		Title:     "Aggiornamento donazione",
		Message:   fmt.Sprintf("La donazione dell'ordine #%d è ora %s.", updated.OrderID, next),
		RelatedID: int64Ptr(updated.ID),
	})
	return updated, nil
}

func displayName(u model.User) string {
	switch {
	case u.BusinessName != "":
		return u.BusinessName
	case u.Name != "":
		return u.Name
	}
	return u.Username
}
