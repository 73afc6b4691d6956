package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Now().UTC()
	s.Next++
	stored := user
	s.Users[user.Username] = &stored
	s.ByID[user.ID] = &stored
	return copyUser(&stored), nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return copyUser(user), nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return copyUser(user), nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByType returns users of the given role ordered by id.
func (s *UserRepositoryStub) ListByType(ctx context.Context, userType model.UserType) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0)
	for _, u := range s.ByID {
		if u.UserType == userType {
			users = append(users, *copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// AddFavorite appends restaurantID unless already present.
func (s *UserRepositoryStub) AddFavorite(ctx context.Context, userID, restaurantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if !user.HasFavorite(restaurantID) {
		user.FavoriteRestaurants = append(user.FavoriteRestaurants, restaurantID)
	}
	return nil
}

// RemoveFavorite drops restaurantID from the favourites.
func (s *UserRepositoryStub) RemoveFavorite(ctx context.Context, userID, restaurantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	kept := user.FavoriteRestaurants[:0]
	for _, id := range user.FavoriteRestaurants {
		if id != restaurantID {
			kept = append(kept, id)
		}
	}
	user.FavoriteRestaurants = kept
	return nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.FavoriteRestaurants = append([]int64(nil), u.FavoriteRestaurants...)
	c.Activities = append([]string(nil), u.Activities...)
	return &c
}

// PlanRepositoryStub stores subscription plans in-memory.
type PlanRepositoryStub struct {
	mu    sync.Mutex
	Plans map[int64]*model.SubscriptionPlan
	Next  int64
	Err   error
}

// NewPlanRepositoryStub constructs an empty plan repository.
func NewPlanRepositoryStub() *PlanRepositoryStub {
	return &PlanRepositoryStub{Plans: make(map[int64]*model.SubscriptionPlan), Next: 1}
}

// Create stores plan with the next identifier.
func (s *PlanRepositoryStub) Create(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	plan.ID = s.Next
	plan.CreatedAt = time.Now().UTC()
	s.Next++
	stored := plan
	s.Plans[plan.ID] = &stored
	return &plan, nil
}

// GetByID returns a stored plan.
func (s *PlanRepositoryStub) GetByID(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Plans[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns plans of restaurantID or all plans.
func (s *PlanRepositoryStub) List(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	plans := make([]model.SubscriptionPlan, 0)
	for _, p := range s.Plans {
		if restaurantID == 0 || p.RestaurantID == restaurantID {
			plans = append(plans, *p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

// Update replaces a stored plan.
func (s *PlanRepositoryStub) Update(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Plans[plan.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	stored := plan
	s.Plans[plan.ID] = &stored
	return &plan, nil
}

// Delete removes a stored plan.
func (s *PlanRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Plans[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Plans, id)
	return nil
}

// PickupPointRepositoryStub stores pickup points in-memory.
type PickupPointRepositoryStub struct {
	mu     sync.Mutex
	Points map[int64]*model.PickupPoint
	Next   int64
	Err    error
}

// NewPickupPointRepositoryStub constructs an empty pickup point repository.
func NewPickupPointRepositoryStub() *PickupPointRepositoryStub {
	return &PickupPointRepositoryStub{Points: make(map[int64]*model.PickupPoint), Next: 1}
}

// Create stores point with the next identifier.
func (s *PickupPointRepositoryStub) Create(ctx context.Context, point model.PickupPoint) (*model.PickupPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	point.ID = s.Next
	point.CreatedAt = time.Now().UTC()
	s.Next++
	stored := point
	s.Points[point.ID] = &stored
	return &point, nil
}

// GetByID returns a stored point.
func (s *PickupPointRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PickupPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Points[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns points of restaurantID or all points.
func (s *PickupPointRepositoryStub) List(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	points := make([]model.PickupPoint, 0)
	for _, p := range s.Points {
		if restaurantID == 0 || p.RestaurantID == restaurantID {
			points = append(points, *p)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ID < points[j].ID })
	return points, nil
}

// OrderRepositoryStub stores orders in-memory and enforces the conditional
// status update of the real repository.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[int64]*model.Order
	Next   int64
	Err    error
}

// NewOrderRepositoryStub constructs an empty order repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create stores a pending order.
func (s *OrderRepositoryStub) Create(ctx context.Context, input model.NewOrder) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now := time.Now().UTC()
	order := model.Order{
		ID:            s.Next,
		CustomerID:    input.CustomerID,
		PlanID:        input.PlanID,
		RestaurantID:  input.RestaurantID,
		Quantity:      input.Quantity,
		DeliveryDate:  input.DeliveryDate,
		Status:        model.OrderStatusPending,
		PickupPointID: input.PickupPointID,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Next++
	stored := order
	s.Orders[order.ID] = &stored
	return &order, nil
}

// GetByID returns a stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if o, ok := s.Orders[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns orders placed by customerID.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.filter(func(o *model.Order) bool { return o.CustomerID == customerID })
}

// ListByRestaurant returns orders received by restaurantID.
func (s *OrderRepositoryStub) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	return s.filter(func(o *model.Order) bool { return o.RestaurantID == restaurantID })
}

func (s *OrderRepositoryStub) filter(keep func(*model.Order) bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	orders := make([]model.Order, 0)
	for _, o := range s.Orders {
		if keep(o) {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

// UpdateStatus moves an order from one status to another.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != from {
		return nil, domainErrors.ErrConflict
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	c := *o
	return &c, nil
}

// DonationRepositoryStub stores donations in-memory. CreateFromOrder flips
// the linked order in Orders under the same lock as the insert.
type DonationRepositoryStub struct {
	mu        sync.Mutex
	Orders    *OrderRepositoryStub
	Donations map[int64]*model.Donation
	Next      int64
	Err       error
}

// NewDonationRepositoryStub constructs an empty donation repository bound to orders.
func NewDonationRepositoryStub(orders *OrderRepositoryStub) *DonationRepositoryStub {
	return &DonationRepositoryStub{Orders: orders, Donations: make(map[int64]*model.Donation), Next: 1}
}

// CreateFromOrder records the donation and marks the order donated.
func (s *DonationRepositoryStub) CreateFromOrder(ctx context.Context, donation model.Donation) (*model.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Orders.mu.Lock()
	defer s.Orders.mu.Unlock()

	order, ok := s.Orders.Orders[donation.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !order.Status.Donatable() {
		return nil, domainErrors.ErrConflict
	}
	for _, d := range s.Donations {
		if d.OrderID == donation.OrderID {
			return nil, domainErrors.ErrConflict
		}
	}

	donation.ID = s.Next
	donation.DonationDate = time.Now().UTC()
	if donation.Status == "" {
		donation.Status = model.DonationStatusPending
	}
	s.Next++
	stored := donation
	s.Donations[donation.ID] = &stored
	order.Status = model.OrderStatusDonated
	order.UpdatedAt = donation.DonationDate
	return &donation, nil
}

// GetByID returns a stored donation.
func (s *DonationRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if d, ok := s.Donations[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByDonor returns donations made by donorID.
func (s *DonationRepositoryStub) ListByDonor(ctx context.Context, donorID int64) ([]model.Donation, error) {
	return s.filter(func(d *model.Donation) bool { return d.DonorID == donorID })
}

// ListByOnlus returns donations received by onlusID.
func (s *DonationRepositoryStub) ListByOnlus(ctx context.Context, onlusID int64) ([]model.Donation, error) {
	return s.filter(func(d *model.Donation) bool { return d.OnlusID == onlusID })
}

func (s *DonationRepositoryStub) filter(keep func(*model.Donation) bool) ([]model.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	donations := make([]model.Donation, 0)
	for _, d := range s.Donations {
		if keep(d) {
			donations = append(donations, *d)
		}
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].ID > donations[j].ID })
	return donations, nil
}

// UpdateStatus moves a donation from one status to another.
func (s *DonationRepositoryStub) UpdateStatus(ctx context.Context, id int64, from, to model.DonationStatus) (*model.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	d, ok := s.Donations[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if d.Status != from {
		return nil, domainErrors.ErrConflict
	}
	d.Status = to
	c := *d
	return &c, nil
}

// ReviewRepositoryStub stores reviews in-memory.
type ReviewRepositoryStub struct {
	mu      sync.Mutex
	Reviews []model.Review
	Next    int64
	Err     error
}

// Create appends a review.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	review.ID = s.Next
	review.CreatedAt = time.Now().UTC()
	s.Reviews = append(s.Reviews, review)
	return &review, nil
}

// List applies the filter the same way the database query does.
func (s *ReviewRepositoryStub) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	reviews := make([]model.Review, 0)
	for _, r := range s.Reviews {
		switch {
		case filter.PlanID != 0:
			if r.PlanID == nil || *r.PlanID != filter.PlanID {
				continue
			}
		case filter.RestaurantID != 0:
			if r.RestaurantID != filter.RestaurantID {
				continue
			}
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// NotificationRepositoryStub stores notifications in-memory.
type NotificationRepositoryStub struct {
	mu            sync.Mutex
	Notifications map[int64]*model.Notification
	Next          int64
	Err           error
}

// NewNotificationRepositoryStub constructs an empty notification repository.
func NewNotificationRepositoryStub() *NotificationRepositoryStub {
	return &NotificationRepositoryStub{Notifications: make(map[int64]*model.Notification), Next: 1}
}

// Create stores a notification.
func (s *NotificationRepositoryStub) Create(ctx context.Context, n model.Notification) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	n.ID = s.Next
	n.CreatedAt = time.Now().UTC()
	s.Next++
	stored := n
	s.Notifications[n.ID] = &stored
	return &n, nil
}

// GetByID returns a stored notification.
func (s *NotificationRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if n, ok := s.Notifications[id]; ok {
		c := *n
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns notifications of userID, newest first.
func (s *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.Notification, 0)
	for _, n := range s.Notifications {
		if n.UserID == userID {
			items = append(items, *n)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

// MarkRead flags a notification as read.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n, ok := s.Notifications[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	n.Read = true
	return nil
}

// Count returns the number of stored notifications.
func (s *NotificationRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Notifications)
}

// SessionRepositoryStub keeps sessions in a map and records the TTL used.
type SessionRepositoryStub struct {
	mu       sync.Mutex
	Sessions map[string]model.Session
	LastTTL  time.Duration
	Err      error
}

// NewSessionRepositoryStub constructs an empty session store.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Sessions: make(map[string]model.Session)}
}

// Save stores session.
func (s *SessionRepositoryStub) Save(ctx context.Context, session model.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sessions[session.ID] = session
	s.LastTTL = ttl
	return nil
}

// Get returns a stored session.
func (s *SessionRepositoryStub) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if session, ok := s.Sessions[id]; ok {
		return &session, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes a session.
func (s *SessionRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Sessions, id)
	return nil
}

// Repositories bundles in-memory repositories sharing one dataset.
type Repositories struct {
	Users         *UserRepositoryStub
	Plans         *PlanRepositoryStub
	PickupPoints  *PickupPointRepositoryStub
	Orders        *OrderRepositoryStub
	Donations     *DonationRepositoryStub
	Reviews       *ReviewRepositoryStub
	Notifications *NotificationRepositoryStub
	Sessions      *SessionRepositoryStub
}

// NewRepositories constructs an empty in-memory dataset.
func NewRepositories() *Repositories {
	orders := NewOrderRepositoryStub()
	return &Repositories{
		Users:         NewUserRepositoryStub(),
		Plans:         NewPlanRepositoryStub(),
		PickupPoints:  NewPickupPointRepositoryStub(),
		Orders:        orders,
		Donations:     NewDonationRepositoryStub(orders),
		Reviews:       &ReviewRepositoryStub{},
		Notifications: NewNotificationRepositoryStub(),
		Sessions:      NewSessionRepositoryStub(),
	}
}

var (
	_ repository.UserRepository         = (*UserRepositoryStub)(nil)
	_ repository.PlanRepository         = (*PlanRepositoryStub)(nil)
	_ repository.PickupPointRepository  = (*PickupPointRepositoryStub)(nil)
	_ repository.OrderRepository        = (*OrderRepositoryStub)(nil)
	_ repository.DonationRepository     = (*DonationRepositoryStub)(nil)
	_ repository.ReviewRepository       = (*ReviewRepositoryStub)(nil)
	_ repository.NotificationRepository = (*NotificationRepositoryStub)(nil)
	_ repository.SessionRepository      = (*SessionRepositoryStub)(nil)
)
