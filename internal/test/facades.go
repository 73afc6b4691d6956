package test

import (
	"context"
	"net/http"
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// AuthFacadeStub provides controllable behaviour for authentication endpoints.
type AuthFacadeStub struct {
	RegisterFn    func(context.Context, model.Registration) (*model.User, string, error)
	LoginFn       func(context.Context, string, string) (*model.User, string, error)
	LogoutFn      func(context.Context, string) error
	ResolveFn     func(context.Context, string) (model.Actor, error)
	CurrentUserFn func(context.Context, model.Actor) (*model.User, error)
}

// Register echoes the registration back as user 1.
func (s AuthFacadeStub) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.User{ID: 1, Username: reg.Username, Email: reg.Email, UserType: reg.UserType}, "token", nil
}

// Login returns a customer session by default.
func (s AuthFacadeStub) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return &model.User{ID: 1, Username: username, UserType: model.UserTypeCustomer}, "token", nil
}

// Logout delegates to provided function.
func (s AuthFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

// ResolveSession resolves every token to customer 1 unless configured.
func (s AuthFacadeStub) ResolveSession(ctx context.Context, token string) (model.Actor, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return model.Actor{UserID: 1, UserType: model.UserTypeCustomer}, nil
}

// CurrentUser returns a user matching the actor.
func (s AuthFacadeStub) CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, actor)
	}
	return &model.User{ID: actor.UserID, UserType: actor.UserType}, nil
}

// CatalogFacadeStub simulates restaurants, plans and pickup points.
type CatalogFacadeStub struct {
	RestaurantsFn        func(context.Context) ([]model.User, error)
	NearbyRestaurantsFn  func(context.Context, geo.Point, float64) ([]geo.Located[model.User], error)
	RestaurantFn         func(context.Context, int64) (*model.User, error)
	CharitiesFn          func(context.Context) ([]model.User, error)
	AddFavoriteFn        func(context.Context, model.Actor, int64) error
	RemoveFavoriteFn     func(context.Context, model.Actor, int64) error
	PlansFn              func(context.Context, int64) ([]model.SubscriptionPlan, error)
	PlanFn               func(context.Context, int64) (*model.SubscriptionPlan, error)
	CreatePlanFn         func(context.Context, model.Actor, model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	UpdatePlanFn         func(context.Context, model.Actor, int64, model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	DeletePlanFn         func(context.Context, model.Actor, int64) error
	PickupPointsFn       func(context.Context, int64) ([]model.PickupPoint, error)
	NearbyPickupPointsFn func(context.Context, geo.Point, float64) ([]geo.Located[model.PickupPoint], error)
	CreatePickupPointFn  func(context.Context, model.Actor, model.PickupPoint) (*model.PickupPoint, error)
}

func (s CatalogFacadeStub) Restaurants(ctx context.Context) ([]model.User, error) {
	if s.RestaurantsFn != nil {
		return s.RestaurantsFn(ctx)
	}
	return []model.User{{ID: 2, Username: "ristorante", UserType: model.UserTypeRestaurant}}, nil
}

func (s CatalogFacadeStub) NearbyRestaurants(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.User], error) {
	if s.NearbyRestaurantsFn != nil {
		return s.NearbyRestaurantsFn(ctx, origin, radiusKm)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Restaurant(ctx context.Context, id int64) (*model.User, error) {
	if s.RestaurantFn != nil {
		return s.RestaurantFn(ctx, id)
	}
	return &model.User{ID: id, UserType: model.UserTypeRestaurant}, nil
}

func (s CatalogFacadeStub) Charities(ctx context.Context) ([]model.User, error) {
	if s.CharitiesFn != nil {
		return s.CharitiesFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) AddFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	if s.AddFavoriteFn != nil {
		return s.AddFavoriteFn(ctx, actor, restaurantID)
	}
	return nil
}

func (s CatalogFacadeStub) RemoveFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	if s.RemoveFavoriteFn != nil {
		return s.RemoveFavoriteFn(ctx, actor, restaurantID)
	}
	return nil
}

func (s CatalogFacadeStub) Plans(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error) {
	if s.PlansFn != nil {
		return s.PlansFn(ctx, restaurantID)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Plan(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	if s.PlanFn != nil {
		return s.PlanFn(ctx, id)
	}
	return &model.SubscriptionPlan{ID: id, PlanType: model.PlanTypePrimo, Active: true}, nil
}

func (s CatalogFacadeStub) CreatePlan(ctx context.Context, actor model.Actor, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	if s.CreatePlanFn != nil {
		return s.CreatePlanFn(ctx, actor, plan)
	}
	plan.ID = 1
	plan.RestaurantID = actor.UserID
	return &plan, nil
}

func (s CatalogFacadeStub) UpdatePlan(ctx context.Context, actor model.Actor, id int64, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	if s.UpdatePlanFn != nil {
		return s.UpdatePlanFn(ctx, actor, id, plan)
	}
	plan.ID = id
	return &plan, nil
}

func (s CatalogFacadeStub) DeletePlan(ctx context.Context, actor model.Actor, id int64) error {
	if s.DeletePlanFn != nil {
		return s.DeletePlanFn(ctx, actor, id)
	}
	return nil
}

func (s CatalogFacadeStub) PickupPoints(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error) {
	if s.PickupPointsFn != nil {
		return s.PickupPointsFn(ctx, restaurantID)
	}
	return nil, nil
}

func (s CatalogFacadeStub) NearbyPickupPoints(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.PickupPoint], error) {
	if s.NearbyPickupPointsFn != nil {
		return s.NearbyPickupPointsFn(ctx, origin, radiusKm)
	}
	return nil, nil
}

func (s CatalogFacadeStub) CreatePickupPoint(ctx context.Context, actor model.Actor, point model.PickupPoint) (*model.PickupPoint, error) {
	if s.CreatePickupPointFn != nil {
		return s.CreatePickupPointFn(ctx, actor, point)
	}
	point.ID = 1
	point.RestaurantID = actor.UserID
	return &point, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, model.Actor, model.NewOrder) (*model.Order, error)
	OrdersFn       func(context.Context, model.Actor) ([]model.Order, error)
	OrderFn        func(context.Context, model.Actor, int64) (*model.Order, error)
	UpdateStatusFn func(context.Context, model.Actor, int64, model.OrderStatus) (*model.Order, error)
	QRCodeFn       func(context.Context, model.Actor, int64) ([]byte, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, input model.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, input)
	}
	return &model.Order{
		ID:           1,
		CustomerID:   actor.UserID,
		PlanID:       input.PlanID,
		RestaurantID: input.RestaurantID,
		Quantity:     input.Quantity,
		DeliveryDate: input.DeliveryDate,
		Status:       model.OrderStatusPending,
		CreatedAt:    time.Unix(0, 0),
	}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor)
	}
	return []model.Order{{ID: 1, CustomerID: actor.UserID, Status: model.OrderStatusPending}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, id)
	}
	return &model.Order{ID: id, CustomerID: actor.UserID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, actor model.Actor, id int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, actor, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s OrderFacadeStub) OrderQRCode(ctx context.Context, actor model.Actor, id int64) ([]byte, error) {
	if s.QRCodeFn != nil {
		return s.QRCodeFn(ctx, actor, id)
	}
	return []byte("\x89PNG"), nil
}

// DonationFacadeStub simulates donation operations.
type DonationFacadeStub struct {
	DonateFn       func(context.Context, model.Actor, int64, int64, string) (*model.Donation, error)
	DonationsFn    func(context.Context, model.Actor) ([]model.Donation, error)
	UpdateStatusFn func(context.Context, model.Actor, int64, model.DonationStatus) (*model.Donation, error)
}

func (s DonationFacadeStub) Donate(ctx context.Context, actor model.Actor, orderID, onlusID int64, notes string) (*model.Donation, error) {
	if s.DonateFn != nil {
		return s.DonateFn(ctx, actor, orderID, onlusID, notes)
	}
	return &model.Donation{ID: 1, OrderID: orderID, DonorID: actor.UserID, OnlusID: onlusID, Status: model.DonationStatusPending, Notes: notes}, nil
}

func (s DonationFacadeStub) Donations(ctx context.Context, actor model.Actor) ([]model.Donation, error) {
	if s.DonationsFn != nil {
		return s.DonationsFn(ctx, actor)
	}
	return nil, nil
}

func (s DonationFacadeStub) UpdateDonationStatus(ctx context.Context, actor model.Actor, id int64, status model.DonationStatus) (*model.Donation, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, actor, id, status)
	}
	return &model.Donation{ID: id, OnlusID: actor.UserID, Status: status}, nil
}

// ReviewFacadeStub simulates review operations.
type ReviewFacadeStub struct {
	ReviewsFn func(context.Context, model.ReviewFilter) ([]model.Review, error)
	CreateFn  func(context.Context, model.Actor, model.Review) (*model.Review, error)
}

func (s ReviewFacadeStub) Reviews(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	if s.ReviewsFn != nil {
		return s.ReviewsFn(ctx, filter)
	}
	return nil, nil
}

func (s ReviewFacadeStub) CreateReview(ctx context.Context, actor model.Actor, review model.Review) (*model.Review, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, review)
	}
	review.ID = 1
	review.CustomerID = actor.UserID
	return &review, nil
}

// NotificationFacadeStub simulates the notification inbox and stream.
type NotificationFacadeStub struct {
	NotificationsFn func(context.Context, model.Actor) ([]model.Notification, error)
	MarkReadFn      func(context.Context, model.Actor, int64) error
	StreamFn        func(http.ResponseWriter, *http.Request, model.Actor) error
}

func (s NotificationFacadeStub) Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	if s.NotificationsFn != nil {
		return s.NotificationsFn(ctx, actor)
	}
	return nil, nil
}

func (s NotificationFacadeStub) MarkNotificationRead(ctx context.Context, actor model.Actor, id int64) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, actor, id)
	}
	return nil
}

func (s NotificationFacadeStub) StreamNotifications(w http.ResponseWriter, r *http.Request, actor model.Actor) error {
	if s.StreamFn != nil {
		return s.StreamFn(w, r, actor)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// BotFacadeStub simulates the support bot.
type BotFacadeStub struct {
	AskFn   func(context.Context, string) (model.BotReply, error)
	StatsFn func() model.BotStats
}

func (s BotFacadeStub) AskBot(ctx context.Context, message string) (model.BotReply, error) {
	if s.AskFn != nil {
		return s.AskFn(ctx, message)
	}
	return model.BotReply{Intent: "default", Message: "ok"}, nil
}

func (s BotFacadeStub) BotStats() model.BotStats {
	if s.StatsFn != nil {
		return s.StatsFn()
	}
	return model.BotStats{ByIntent: map[string]int64{}}
}

// HealthFacadeStub reports configured dependency errors.
type HealthFacadeStub struct {
	Checks map[string]error
}

func (s HealthFacadeStub) Health(context.Context) map[string]error {
	if s.Checks == nil {
		return map[string]error{"postgres": nil}
	}
	return s.Checks
}

// MarketplaceFacadeStub combines all facade stubs into one implementation.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	DonationFacadeStub
	ReviewFacadeStub
	NotificationFacadeStub
	BotFacadeStub
	HealthFacadeStub
}
