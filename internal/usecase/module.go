package usecase

import (
	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthOptions,
	NewAuthUseCase,
	NewRestaurantUseCase,
	NewPlanUseCase,
	NewPickupPointUseCase,
	NewOrderUseCase,
	NewDonationUseCase,
	NewReviewUseCase,
	NewNotificationUseCase,
	NewBotUseCase,
)

func newAuthOptions(cfg *config.Config) AuthOptions {
	return AuthOptions{SessionTTL: cfg.SessionTTL}
}
