package handlers

import (
	"context"
	"net/http"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (model.Actor, error)
	CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error)
}

// CatalogFacade exposes restaurants, charities, plans and pickup points.
type CatalogFacade interface {
	Restaurants(ctx context.Context) ([]model.User, error)
	NearbyRestaurants(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.User], error)
	Restaurant(ctx context.Context, id int64) (*model.User, error)
	Charities(ctx context.Context) ([]model.User, error)
	AddFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error
	RemoveFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error

	Plans(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error)
	Plan(ctx context.Context, id int64) (*model.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, actor model.Actor, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, actor model.Actor, id int64, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, actor model.Actor, id int64) error

	PickupPoints(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error)
	NearbyPickupPoints(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.PickupPoint], error)
	CreatePickupPoint(ctx context.Context, actor model.Actor, point model.PickupPoint) (*model.PickupPoint, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor model.Actor, input model.NewOrder) (*model.Order, error)
	Orders(ctx context.Context, actor model.Actor) ([]model.Order, error)
	Order(ctx context.Context, actor model.Actor, id int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, actor model.Actor, id int64, status model.OrderStatus) (*model.Order, error)
	OrderQRCode(ctx context.Context, actor model.Actor, id int64) ([]byte, error)
}

// DonationFacade provides donation related operations.
type DonationFacade interface {
	Donate(ctx context.Context, actor model.Actor, orderID, onlusID int64, notes string) (*model.Donation, error)
	Donations(ctx context.Context, actor model.Actor) ([]model.Donation, error)
	UpdateDonationStatus(ctx context.Context, actor model.Actor, id int64, status model.DonationStatus) (*model.Donation, error)
}

type ReviewFacade interface {
	Reviews(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error)
	CreateReview(ctx context.Context, actor model.Actor, review model.Review) (*model.Review, error)
}

// NotificationFacade serves the inbox and the realtime stream.
type NotificationFacade interface {
	Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, actor model.Actor, id int64) error
	StreamNotifications(w http.ResponseWriter, r *http.Request, actor model.Actor) error
}

type BotFacade interface {
	AskBot(ctx context.Context, message string) (model.BotReply, error)
	BotStats() model.BotStats
}

// HealthFacade reports the state of external dependencies; a nil error means healthy.
type HealthFacade interface {
	Health(ctx context.Context) map[string]error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	DonationFacade
	ReviewFacade
	NotificationFacade
	BotFacade
	HealthFacade
}
