package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// QRCodeSize is the edge, in pixels, of generated pickup QR codes.
const QRCodeSize = 256

// OrderUseCase drives order placement and the order lifecycle.
type OrderUseCase struct {
	orders   repository.OrderRepository
	plans    repository.PlanRepository
	points   repository.PickupPointRepository
	notifier Notifier
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	plans repository.PlanRepository,
	points repository.PickupPointRepository,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, plans: plans, points: points, notifier: notifier, now: time.Now}
}

// Create places an order for the calling customer.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, input model.NewOrder) (*model.Order, error) {
	if err := requireRole(actor, model.UserTypeCustomer); err != nil {
		return nil, err
	}

	var fields []domainErrors.FieldError
	if input.Quantity <= 0 {
		fields = append(fields, domainErrors.FieldError{Field: "quantity", Message: "la quantità deve essere maggiore di zero"})
	}
	if input.DeliveryDate.IsZero() {
		fields = append(fields, domainErrors.FieldError{Field: "deliveryDate", Message: "la data di consegna è obbligatoria"})
	} else if input.DeliveryDate.Before(truncateDay(u.now())) {
		fields = append(fields, domainErrors.FieldError{Field: "deliveryDate", Message: "la data di consegna non può essere nel passato"})
	}
	if len(fields) > 0 {
		return nil, &domainErrors.ValidationError{Fields: fields}
	}

	plan, err := u.plans.GetByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, notFound("plan", input.PlanID, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	if input.RestaurantID != 0 && input.RestaurantID != plan.RestaurantID {
		return nil, domainErrors.Invalid("restaurantId", "il piano non appartiene al ristorante indicato")
	}
	if !plan.Active {
		return nil, domainErrors.Invalid("planId", "il piano non è più disponibile")
	}

	if input.PickupPointID != nil {
		point, err := u.points.GetByID(ctx, *input.PickupPointID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, notFound("pickup point", *input.PickupPointID, domainErrors.ErrNotFound)
			}
			return nil, err
		}
		if point.RestaurantID != plan.RestaurantID {
			return nil, domainErrors.Invalid("pickupPointId", "il punto di ritiro non appartiene al ristorante")
		}
	}

	input.CustomerID = actor.UserID
	input.RestaurantID = plan.RestaurantID
	input.Notes = strings.TrimSpace(input.Notes)
	order, err := u.orders.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, model.Notification{
		UserID:    order.RestaurantID,
		Type:      model.NotificationOrderCreated,
		Title:     "Nuovo ordine",
		Message:   fmt.Sprintf("Hai ricevuto l'ordine #%d per %q (quantità %d).", order.ID, plan.Name, order.Quantity),
		RelatedID: int64Ptr(order.ID),
	})
	return order, nil
}

// List returns the orders visible to the caller: placed by a customer or
// received by a restaurant.
func (u *OrderUseCase) List(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	switch actor.UserType {
	case model.UserTypeCustomer:
		return u.orders.ListByCustomer(ctx, actor.UserID)
	case model.UserTypeRestaurant:
		return u.orders.ListByRestaurant(ctx, actor.UserID)
	}
	return nil, fmt.Errorf("orders: %w", domainErrors.ErrForbidden)
}

// Get returns an order to one of its parties.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id int64) (*model.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.InvolvesUser(actor.UserID) {
		return nil, fmt.Errorf("order %d: %w", id, domainErrors.ErrForbidden)
	}
	return order, nil
}

// UpdateStatus moves an order to next. Restaurants advance their own orders,
// either party may cancel a non-terminal order. Donation has its own flow.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, actor model.Actor, id int64, next model.OrderStatus) (*model.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, domainErrors.Invalid("status", "stato non valido")
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch next {
	case model.OrderStatusConfirmed, model.OrderStatusReady, model.OrderStatusCompleted:
		if !actor.Is(model.UserTypeRestaurant) || order.RestaurantID != actor.UserID {
			return nil, fmt.Errorf("order %d: %w", id, domainErrors.ErrForbidden)
		}
		if !order.Status.CanAdvanceTo(next) {
			return nil, fmt.Errorf("order %d %s -> %s: %w", id, order.Status, next, domainErrors.ErrInvalidTransition)
		}
	case model.OrderStatusCancelled:
		if !order.InvolvesUser(actor.UserID) {
			return nil, fmt.Errorf("order %d: %w", id, domainErrors.ErrForbidden)
		}
		if !order.Status.Cancellable() {
			return nil, fmt.Errorf("order %d %s -> %s: %w", id, order.Status, next, domainErrors.ErrInvalidTransition)
		}
	default:
		// pending is never a target; donated goes through DonationUseCase.Create.
		return nil, fmt.Errorf("order %d -> %s: %w", id, next, domainErrors.ErrInvalidTransition)
	}

	updated, err := u.orders.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}

	recipient := updated.CustomerID
	if actor.UserID == updated.CustomerID {
		recipient = updated.RestaurantID
	}
	u.notifier.Notify(ctx, model.Notification{
		UserID:    recipient,
		Type:      model.NotificationOrderStatus,
		Title:     "Aggiornamento ordine",
		Message:   fmt.Sprintf("L'ordine #%d è ora %s.", updated.ID, statusLabel(next)),
		RelatedID: int64Ptr(updated.ID),
	})
	return updated, nil
}

// QRCode renders the pickup code of an order as PNG.
func (u *OrderUseCase) QRCode(ctx context.Context, actor model.Actor, id int64) ([]byte, error) {
	order, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusCancelled || order.Status == model.OrderStatusDonated {
		return nil, fmt.Errorf("order %d is %s: %w", id, order.Status, domainErrors.ErrConflict)
	}
	return qrcode.Encode(PickupPayload(*order), qrcode.Medium, QRCodeSize)
}

// PickupPayload is the text encoded in the pickup QR code.
func PickupPayload(order model.Order) string {
	return fmt.Sprintf("thermopolio:order:%d:customer:%d:date:%s",
		order.ID, order.CustomerID, order.DeliveryDate.Format(time.DateOnly))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func statusLabel(s model.OrderStatus) string {
	switch s {
	case model.OrderStatusConfirmed:
		return "confermato"
	case model.OrderStatusReady:
		return "pronto per il ritiro"
	case model.OrderStatusCompleted:
		return "completato"
	case model.OrderStatusDonated:
		return "donato"
	case model.OrderStatusCancelled:
		return "annullato"
	}
	return string(s)
}
