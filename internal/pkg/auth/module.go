package auth

import (
	"github.com/thermopolio/thermopolio/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newSessionSigner),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSessionSigner(p signerParams) Signer {
	return NewHMACSigner(p.Config.SessionSecret)
}
