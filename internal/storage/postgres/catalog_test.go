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

var planRowColumns = []string{"id", "restaurant_id", "name", "description", "plan_type", "base_price", "active", "created_at"}

func planRows(id, restaurantID int64) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(planRowColumns).
		AddRow(id, restaurantID, "Menu pranzo", "Primo e secondo", model.PlanTypeCompleto, 9.5, true, time.Now())
}

func TestPlanRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &planRepository{storage: storage}
	ctx := context.Background()

	plan := model.SubscriptionPlan{RestaurantID: 2, Name: "Menu pranzo", Description: "Primo e secondo", PlanType: model.PlanTypeCompleto, BasePrice: 9.5, Active: true}
	mock.ExpectQuery("INSERT INTO subscription_plans").
		WithArgs(int64(2), "Menu pranzo", "Primo e secondo", model.PlanTypeCompleto, 9.5, true).
		WillReturnRows(planRows(10, 2))
	created, err := repo.Create(ctx, plan)
	if err != nil || created.ID != 10 || created.PlanType != model.PlanTypeCompleto {
		t.Fatalf("unexpected result: %+v err=%v", created, err)
	}

	mock.ExpectQuery("FROM subscription_plans WHERE id=").WithArgs(int64(10)).WillReturnRows(planRows(10, 2))
	if p, err := repo.GetByID(ctx, 10); err != nil || p.RestaurantID != 2 {
		t.Fatalf("unexpected result: %+v err=%v", p, err)
	}

	mock.ExpectQuery("FROM subscription_plans WHERE id=").WithArgs(int64(11)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM subscription_plans WHERE restaurant_id=").WithArgs(int64(2)).WillReturnRows(planRows(10, 2))
	if list, err := repo.List(ctx, 2); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM subscription_plans ORDER BY id").WithoutArgs().WillReturnRows(planRows(10, 2))
	if list, err := repo.List(ctx, 0); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM subscription_plans ORDER BY id").WillReturnError(errors.New("query"))
	if _, err := repo.List(ctx, 0); err == nil {
		t.Fatal("expected error")
	}

	created.Name = "Menu cena"
	mock.ExpectQuery("UPDATE subscription_plans").
		WithArgs(int64(10), "Menu cena", "Primo e secondo", model.PlanTypeCompleto, 9.5, true).
		WillReturnRows(planRows(10, 2))
	if _, err := repo.Update(ctx, *created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("UPDATE subscription_plans").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Update(ctx, *created); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM subscription_plans").WithArgs(int64(10)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM subscription_plans").WithArgs(int64(10)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(ctx, 10); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM subscription_plans").WithArgs(int64(10)).WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
	if err := repo.Delete(ctx, 10); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPickupPointRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &pickupPointRepository{storage: storage}
	ctx := context.Background()

	columns := []string{"id", "restaurant_id", "name", "address", "latitude", "longitude", "business_hours", "created_at"}
	rows := func() *pgxmockv3.Rows {
		return pgxmockv3.NewRows(columns).AddRow(int64(4), int64(2), "Duomo", "Piazza del Duomo", 45.4641, 9.1919, "12-15", time.Now())
	}

	point := model.PickupPoint{RestaurantID: 2, Name: "Duomo", Address: "Piazza del Duomo", Latitude: 45.4641, Longitude: 9.1919, BusinessHours: "12-15"}
	mock.ExpectQuery("INSERT INTO pickup_points").
		WithArgs(int64(2), "Duomo", "Piazza del Duomo", 45.4641, 9.1919, "12-15").
		WillReturnRows(rows())
	if created, err := repo.Create(ctx, point); err != nil || created.ID != 4 {
		t.Fatalf("unexpected result: %+v err=%v", created, err)
	}

	mock.ExpectQuery("FROM pickup_points WHERE id=").WithArgs(int64(4)).WillReturnRows(rows())
	if p, err := repo.GetByID(ctx, 4); err != nil || p.Name != "Duomo" {
		t.Fatalf("unexpected result: %+v err=%v", p, err)
	}

	mock.ExpectQuery("FROM pickup_points WHERE id=").WithArgs(int64(5)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, 5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM pickup_points WHERE restaurant_id=").WithArgs(int64(2)).WillReturnRows(rows())
	if list, err := repo.List(ctx, 2); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM pickup_points ORDER BY id").WillReturnRows(rows())
	if list, err := repo.List(ctx, 0); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	ctx := context.Background()

	columns := []string{"id", "customer_id", "restaurant_id", "plan_id", "rating", "comment", "created_at"}
	planID := int64(10)
	rows := func() *pgxmockv3.Rows {
		return pgxmockv3.NewRows(columns).AddRow(int64(1), int64(1), int64(2), &planID, 5, "Ottimo", time.Now())
	}

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(1), int64(2), &planID, 5, "Ottimo").
		WillReturnRows(rows())
	created, err := repo.Create(ctx, model.Review{CustomerID: 1, RestaurantID: 2, PlanID: &planID, Rating: 5, Comment: "Ottimo"})
	if err != nil || created.Rating != 5 || created.PlanID == nil || *created.PlanID != planID {
		t.Fatalf("unexpected result: %+v err=%v", created, err)
	}

	mock.ExpectQuery("INSERT INTO reviews").WillReturnError(&pgconn.PgError{Code: pgCheckViolation})
	if _, err := repo.Create(ctx, model.Review{CustomerID: 1, RestaurantID: 2, Rating: 9}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	mock.ExpectQuery("FROM reviews WHERE plan_id=").WithArgs(int64(10)).WillReturnRows(rows())
	if list, err := repo.List(ctx, model.ReviewFilter{RestaurantID: 2, PlanID: 10}); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM reviews WHERE restaurant_id=").WithArgs(int64(2)).WillReturnRows(rows())
	if list, err := repo.List(ctx, model.ReviewFilter{RestaurantID: 2}); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM reviews ORDER BY created_at").WillReturnError(errors.New("query"))
	if _, err := repo.List(ctx, model.ReviewFilter{}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestNotificationRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &notificationRepository{storage: storage}
	ctx := context.Background()

	columns := []string{"id", "user_id", "type", "title", "message", "read", "related_id", "created_at"}
	related := int64(7)
	rows := func(read bool) *pgxmockv3.Rows {
		return pgxmockv3.NewRows(columns).
			AddRow(int64(1), int64(2), model.NotificationOrderCreated, "Nuovo ordine", "Ordine #7", read, &related, time.Now())
	}

	n := model.Notification{UserID: 2, Type: model.NotificationOrderCreated, Title: "Nuovo ordine", Message: "Ordine #7", RelatedID: &related}
	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(2), model.NotificationOrderCreated, "Nuovo ordine", "Ordine #7", &related).
		WillReturnRows(rows(false))
	if created, err := repo.Create(ctx, n); err != nil || created.ID != 1 || created.Read {
		t.Fatalf("unexpected result: %+v err=%v", created, err)
	}

	mock.ExpectQuery("FROM notifications WHERE id=").WithArgs(int64(1)).WillReturnRows(rows(true))
	if got, err := repo.GetByID(ctx, 1); err != nil || !got.Read {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM notifications WHERE user_id=").WithArgs(int64(2)).WillReturnRows(rows(false))
	if list, err := repo.ListByUser(ctx, 2); err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectExec("UPDATE notifications SET read=TRUE").WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkRead(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE notifications SET read=TRUE").WithArgs(int64(5)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkRead(ctx, 5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE notifications SET read=TRUE").WithArgs(int64(6)).WillReturnError(errors.New("update"))
	if err := repo.MarkRead(ctx, 6); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
