package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

var orderRowColumns = []string{
	"id", "customer_id", "plan_id", "restaurant_id", "quantity", "delivery_date", "status",
	"pickup_point_id", "notes", "created_at", "updated_at",
}

func orderRows(id int64, status model.OrderStatus) *pgxmockv3.Rows {
	now := time.Now()
	return pgxmockv3.NewRows(orderRowColumns).
		AddRow(id, int64(1), int64(10), int64(2), 2, now, status, nil, "", now, now)
}

var donationRowColumns = []string{"id", "order_id", "donor_id", "onlus_id", "donation_date", "status", "notes"}

func donationRows(id, orderID int64, status model.DonationStatus) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(donationRowColumns).
		AddRow(id, orderID, int64(1), int64(3), time.Now(), status, "")
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	delivery := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	pickup := int64(4)
	input := model.NewOrder{CustomerID: 1, PlanID: 10, RestaurantID: 2, Quantity: 2, DeliveryDate: delivery, PickupPointID: &pickup}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), int64(10), int64(2), 2, delivery, model.OrderStatusPending, &pickup, "").
		WillReturnRows(orderRows(7, model.OrderStatusPending))
	order, err := repo.Create(context.Background(), input)
	if err != nil || order.ID != 7 || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected result: order=%+v err=%v", order, err)
	}

	mock.ExpectQuery("INSERT INTO orders").WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
	if _, err := repo.Create(context.Background(), input); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(7)).WillReturnRows(orderRows(7, model.OrderStatusReady))
	order, err := repo.GetByID(context.Background(), 7)
	if err != nil || order.Status != model.OrderStatusReady || order.PickupPointID != nil {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 8); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	now := time.Now()
	mock.ExpectQuery("FROM orders WHERE customer_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(1), int64(1), int64(10), int64(2), 1, now, model.OrderStatusPending, nil, "", now, now).
			AddRow(int64(2), int64(1), int64(10), int64(2), 3, now, model.OrderStatusDonated, nil, "", now, now),
	)
	orders, err := repo.ListByCustomer(context.Background(), 1)
	if err != nil || len(orders) != 2 {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders WHERE restaurant_id=").WithArgs(int64(2)).WillReturnRows(orderRows(1, model.OrderStatusPending))
	orders, err = repo.ListByRestaurant(context.Background(), 2)
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders WHERE restaurant_id=").WithArgs(int64(3)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByRestaurant(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM orders WHERE customer_id=").WithArgs(int64(4)).WillReturnRows(
		pgxmockv3.NewRows(orderRowColumns).
			AddRow("bad", int64(1), int64(10), int64(2), 1, now, model.OrderStatusPending, nil, "", now, now),
	)
	if _, err := repo.ListByCustomer(context.Background(), 4); err == nil {
		t.Fatal("expected scan error")
	}

	mock.ExpectQuery("FROM orders WHERE customer_id=").WithArgs(int64(5)).WillReturnRows(
		orderRows(1, model.OrderStatusPending).RowError(0, errors.New("row err")),
	)
	if _, err := repo.ListByCustomer(context.Background(), 5); err == nil || err.Error() != "row err" {
		t.Fatalf("expected row err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("UPDATE orders SET status=").
		WithArgs(int64(7), model.OrderStatusPending, model.OrderStatusConfirmed).
		WillReturnRows(orderRows(7, model.OrderStatusConfirmed))
	order, err := repo.UpdateStatus(context.Background(), 7, model.OrderStatusPending, model.OrderStatusConfirmed)
	if err != nil || order.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected result: %+v err=%v", order, err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").
		WithArgs(int64(7), model.OrderStatusPending, model.OrderStatusConfirmed).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(7)).WillReturnRows(orderRows(7, model.OrderStatusCancelled))
	if _, err := repo.UpdateStatus(context.Background(), 7, model.OrderStatusPending, model.OrderStatusConfirmed); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").
		WithArgs(int64(9), model.OrderStatusPending, model.OrderStatusConfirmed).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.UpdateStatus(context.Background(), 9, model.OrderStatusPending, model.OrderStatusConfirmed); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").
		WithArgs(int64(10), model.OrderStatusReady, model.OrderStatusCompleted).
		WillReturnError(errors.New("update"))
	if _, err := repo.UpdateStatus(context.Background(), 10, model.OrderStatusReady, model.OrderStatusCompleted); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDonationRepositoryCreateFromOrder(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &donationRepository{storage: storage}

	input := model.Donation{OrderID: 7, DonorID: 1, OnlusID: 3, Notes: "grazie"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id=").WithArgs(int64(7)).
			WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusCompleted))
		mock.ExpectQuery("INSERT INTO donations").
			WithArgs(int64(7), int64(1), int64(3), model.DonationStatusPending, "grazie").
			WillReturnRows(donationRows(11, 7, model.DonationStatusPending))
		mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(7), model.OrderStatusDonated).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		donation, err := repo.CreateFromOrder(context.Background(), input)
		if err != nil || donation.ID != 11 || donation.Status != model.DonationStatusPending {
			t.Fatalf("unexpected result: %+v err=%v", donation, err)
		}
	})

	t.Run("already donated", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id=").WithArgs(int64(7)).
			WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusDonated))
		mock.ExpectRollback()

		if _, err := repo.CreateFromOrder(context.Background(), input); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id=").WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		if _, err := repo.CreateFromOrder(context.Background(), input); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("unique index", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id=").WithArgs(int64(7)).
			WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusConfirmed))
		mock.ExpectQuery("INSERT INTO donations").WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
		mock.ExpectRollback()

		if _, err := repo.CreateFromOrder(context.Background(), input); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("order update failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id=").WithArgs(int64(7)).
			WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusPending))
		mock.ExpectQuery("INSERT INTO donations").WillReturnRows(donationRows(12, 7, model.DonationStatusPending))
		mock.ExpectExec("UPDATE orders SET status=").WillReturnError(errors.New("update"))
		mock.ExpectRollback()

		if _, err := repo.CreateFromOrder(context.Background(), input); err == nil {
			t.Fatal("expected error")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDonationRepositoryQueries(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &donationRepository{storage: storage}

	mock.ExpectQuery("FROM donations WHERE id=").WithArgs(int64(11)).WillReturnRows(donationRows(11, 7, model.DonationStatusAccepted))
	if d, err := repo.GetByID(context.Background(), 11); err != nil || d.Status != model.DonationStatusAccepted {
		t.Fatalf("unexpected result: %+v err=%v", d, err)
	}

	mock.ExpectQuery("FROM donations WHERE id=").WithArgs(int64(12)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 12); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM donations WHERE donor_id=").WithArgs(int64(1)).WillReturnRows(donationRows(11, 7, model.DonationStatusPending))
	if list, err := repo.ListByDonor(context.Background(), 1); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM donations WHERE onlus_id=").WithArgs(int64(3)).WillReturnRows(donationRows(11, 7, model.DonationStatusPending))
	if list, err := repo.ListByOnlus(context.Background(), 3); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM donations WHERE onlus_id=").WithArgs(int64(4)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByOnlus(context.Background(), 4); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("UPDATE donations SET status=").
		WithArgs(int64(11), model.DonationStatusPending, model.DonationStatusAccepted).
		WillReturnRows(donationRows(11, 7, model.DonationStatusAccepted))
	if d, err := repo.UpdateStatus(context.Background(), 11, model.DonationStatusPending, model.DonationStatusAccepted); err != nil || d.Status != model.DonationStatusAccepted {
		t.Fatalf("unexpected result: %+v err=%v", d, err)
	}

	mock.ExpectQuery("UPDATE donations SET status=").
		WithArgs(int64(11), model.DonationStatusPending, model.DonationStatusAccepted).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM donations WHERE id=").WithArgs(int64(11)).WillReturnRows(donationRows(11, 7, model.DonationStatusCompleted))
	if _, err := repo.UpdateStatus(context.Background(), 11, model.DonationStatusPending, model.DonationStatusAccepted); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
