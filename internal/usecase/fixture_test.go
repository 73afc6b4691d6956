package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	testhelpers "github.com/thermopolio/thermopolio/internal/test"
)

type fixture struct {
	repos    *testhelpers.Repositories
	notifier *testhelpers.NotifierStub
	pusher   *testhelpers.PusherStub

	auth          *AuthUseCase
	restaurants   *RestaurantUseCase
	plans         *PlanUseCase
	points        *PickupPointUseCase
	orders        *OrderUseCase
	donations     *DonationUseCase
	reviews       *ReviewUseCase
	notifications *NotificationUseCase

	customer   model.User
	restaurant model.User
	onlus      model.User
	plan       model.SubscriptionPlan
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := testhelpers.NewRepositories()
	f := &fixture{
		repos:    repos,
		notifier: &testhelpers.NotifierStub{},
		pusher:   &testhelpers.PusherStub{},
	}
	f.auth = NewAuthUseCase(repos.Users, repos.Sessions, testhelpers.HasherStub{}, testhelpers.SignerStub{}, AuthOptions{SessionTTL: time.Hour})
	f.restaurants = NewRestaurantUseCase(repos.Users)
	f.plans = NewPlanUseCase(repos.Plans)
	f.points = NewPickupPointUseCase(repos.PickupPoints)
	f.orders = NewOrderUseCase(repos.Orders, repos.Plans, repos.PickupPoints, f.notifier)
	f.donations = NewDonationUseCase(repos.Donations, repos.Orders, repos.Users, f.notifier)
	f.reviews = NewReviewUseCase(repos.Reviews, repos.Users, repos.Plans, f.notifier)
	f.notifications = NewNotificationUseCase(repos.Notifications, repos.Users, f.pusher, discardLogger())

	ctx := context.Background()
	f.customer = f.mustUser(t, model.User{Username: "cliente", Email: "c@example.com", UserType: model.UserTypeCustomer})
	f.restaurant = f.mustUser(t, model.User{
		Username:     "ristorante",
		Email:        "r@example.com",
		UserType:     model.UserTypeRestaurant,
		BusinessName: "Da Giulia",
		Latitude:     floatPtr(45.4642),
		Longitude:    floatPtr(9.1900),
	})
	f.onlus = f.mustUser(t, model.User{Username: "onlus", Email: "o@example.com", UserType: model.UserTypeOnlus, Name: "Banco"})

	plan, err := repos.Plans.Create(ctx, model.SubscriptionPlan{
		RestaurantID: f.restaurant.ID,
		Name:         "Pranzo completo",
		PlanType:     model.PlanTypeCompleto,
		BasePrice:    9.5,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	f.plan = *plan
	return f
}

func (f *fixture) mustUser(t *testing.T, u model.User) model.User {
	t.Helper()
	u.PasswordHash = "hash:password"
	created, err := f.repos.Users.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user %s: %v", u.Username, err)
	}
	return *created
}

func actorOf(u model.User) model.Actor {
	return model.Actor{UserID: u.ID, UserType: u.UserType}
}

func tomorrow() time.Time {
	return truncateDay(time.Now()).AddDate(0, 0, 1)
}

func (f *fixture) placeOrder(t *testing.T) *model.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), actorOf(f.customer), model.NewOrder{
		PlanID:       f.plan.ID,
		Quantity:     2,
		DeliveryDate: tomorrow(),
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}
