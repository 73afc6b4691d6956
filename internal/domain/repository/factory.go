package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Plans() PlanRepository
	PickupPoints() PickupPointRepository
	Orders() OrderRepository
	Donations() DonationRepository
	Reviews() ReviewRepository
	Notifications() NotificationRepository
}
