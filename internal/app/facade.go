package app

import (
	"context"
	"net/http"
	"time"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/geo"
	"github.com/thermopolio/thermopolio/internal/usecase"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether an external dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NotificationStream upgrades a request into a live notification feed.
type NotificationStream interface {
	Serve(w http.ResponseWriter, r *http.Request, userID int64) error
}

// Services groups the use cases behind the facade.
type Services struct {
	Auth          *usecase.AuthUseCase
	Restaurants   *usecase.RestaurantUseCase
	Plans         *usecase.PlanUseCase
	PickupPoints  *usecase.PickupPointUseCase
	Orders        *usecase.OrderUseCase
	Donations     *usecase.DonationUseCase
	Reviews       *usecase.ReviewUseCase
	Notifications *usecase.NotificationUseCase
	Bot           *usecase.BotUseCase
}

// MarketplaceFacade adapts the use cases to the HTTP layer.
type MarketplaceFacade struct {
	svc    Services
	stream NotificationStream
	checks map[string]HealthChecker
}

func NewMarketplaceFacade(svc Services, stream NotificationStream, checks map[string]HealthChecker) *MarketplaceFacade {
	return &MarketplaceFacade{svc: svc, stream: stream, checks: checks}
}

func (f *MarketplaceFacade) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	return f.svc.Auth.Register(ctx, reg)
}

func (f *MarketplaceFacade) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	return f.svc.Auth.Authenticate(ctx, username, password)
}

func (f *MarketplaceFacade) Logout(ctx context.Context, token string) error {
	return f.svc.Auth.Logout(ctx, token)
}

func (f *MarketplaceFacade) ResolveSession(ctx context.Context, token string) (model.Actor, error) {
	return f.svc.Auth.Resolve(ctx, token)
}

func (f *MarketplaceFacade) CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error) {
	return f.svc.Auth.CurrentUser(ctx, actor)
}

func (f *MarketplaceFacade) Restaurants(ctx context.Context) ([]model.User, error) {
	return f.svc.Restaurants.List(ctx)
}

func (f *MarketplaceFacade) NearbyRestaurants(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.User], error) {
	return f.svc.Restaurants.Nearby(ctx, origin, radiusKm)
}

func (f *MarketplaceFacade) Restaurant(ctx context.Context, id int64) (*model.User, error) {
	return f.svc.Restaurants.Get(ctx, id)
}

func (f *MarketplaceFacade) Charities(ctx context.Context) ([]model.User, error) {
	return f.svc.Restaurants.Charities(ctx)
}

func (f *MarketplaceFacade) AddFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	return f.svc.Restaurants.AddFavorite(ctx, actor, restaurantID)
}

func (f *MarketplaceFacade) RemoveFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	return f.svc.Restaurants.RemoveFavorite(ctx, actor, restaurantID)
}

func (f *MarketplaceFacade) Plans(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error) {
	return f.svc.Plans.List(ctx, restaurantID)
}

func (f *MarketplaceFacade) Plan(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	return f.svc.Plans.Get(ctx, id)
}

func (f *MarketplaceFacade) CreatePlan(ctx context.Context, actor model.Actor, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	return f.svc.Plans.Create(ctx, actor, plan)
}

func (f *MarketplaceFacade) UpdatePlan(ctx context.Context, actor model.Actor, id int64, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	return f.svc.Plans.Update(ctx, actor, id, plan)
}

func (f *MarketplaceFacade) DeletePlan(ctx context.Context, actor model.Actor, id int64) error {
	return f.svc.Plans.Delete(ctx, actor, id)
}

func (f *MarketplaceFacade) PickupPoints(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error) {
	return f.svc.PickupPoints.List(ctx, restaurantID)
}

func (f *MarketplaceFacade) NearbyPickupPoints(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.PickupPoint], error) {
	return f.svc.PickupPoints.Nearby(ctx, origin, radiusKm)
}

func (f *MarketplaceFacade) CreatePickupPoint(ctx context.Context, actor model.Actor, point model.PickupPoint) (*model.PickupPoint, error) {
	return f.svc.PickupPoints.Create(ctx, actor, point)
}

func (f *MarketplaceFacade) CreateOrder(ctx context.Context, actor model.Actor, input model.NewOrder) (*model.Order, error) {
	return f.svc.Orders.Create(ctx, actor, input)
}

func (f *MarketplaceFacade) Orders(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	return f.svc.Orders.List(ctx, actor)
}

func (f *MarketplaceFacade) Order(ctx context.Context, actor model.Actor, id int64) (*model.Order, error) {
	return f.svc.Orders.Get(ctx, actor, id)
}

func (f *MarketplaceFacade) UpdateOrderStatus(ctx context.Context, actor model.Actor, id int64, status model.OrderStatus) (*model.Order, error) {
	return f.svc.Orders.UpdateStatus(ctx, actor, id, status)
}

func (f *MarketplaceFacade) OrderQRCode(ctx context.Context, actor model.Actor, id int64) ([]byte, error) {
	return f.svc.Orders.QRCode(ctx, actor, id)
}

func (f *MarketplaceFacade) Donate(ctx context.Context, actor model.Actor, orderID, onlusID int64, notes string) (*model.Donation, error) {
	return f.svc.Donations.Create(ctx, actor, orderID, onlusID, notes)
}

func (f *MarketplaceFacade) Donations(ctx context.Context, actor model.Actor) ([]model.Donation, error) {
	return f.svc.Donations.List(ctx, actor)
}

func (f *MarketplaceFacade) UpdateDonationStatus(ctx context.Context, actor model.Actor, id int64, status model.DonationStatus) (*model.Donation, error) {
	return f.svc.Donations.UpdateStatus(ctx, actor, id, status)
}

func (f *MarketplaceFacade) Reviews(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	return f.svc.Reviews.List(ctx, filter)
}

func (f *MarketplaceFacade) CreateReview(ctx context.Context, actor model.Actor, review model.Review) (*model.Review, error) {
	return f.svc.Reviews.Create(ctx, actor, review)
}

func (f *MarketplaceFacade) Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	return f.svc.Notifications.List(ctx, actor)
}

func (f *MarketplaceFacade) MarkNotificationRead(ctx context.Context, actor model.Actor, id int64) error {
	return f.svc.Notifications.MarkRead(ctx, actor, id)
}

// StreamNotifications hands the request to the realtime hub for the actor's user.
func (f *MarketplaceFacade) StreamNotifications(w http.ResponseWriter, r *http.Request, actor model.Actor) error {
	if !actor.Authenticated() {
		return domainErrors.ErrUnauthenticated
	}
	return f.stream.Serve(w, r, actor.UserID)
}

func (f *MarketplaceFacade) AskBot(ctx context.Context, message string) (model.BotReply, error) {
	return f.svc.Bot.Reply(ctx, message)
}

func (f *MarketplaceFacade) BotStats() model.BotStats {
	return f.svc.Bot.Stats()
}

// Health pings every registered dependency with a short timeout.
func (f *MarketplaceFacade) Health(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	out := make(map[string]error, len(f.checks))
	for name, check := range f.checks {
		out[name] = check.HealthCheck(ctx)
	}
	return out
}
