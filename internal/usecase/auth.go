package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
	"github.com/thermopolio/thermopolio/internal/geo"
	pkgAuth "github.com/thermopolio/thermopolio/internal/pkg/auth"
)

// AuthOptions tunes session handling.
type AuthOptions struct {
	SessionTTL time.Duration
}

// AuthUseCase handles registration, credentials and server-side sessions.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   pkgAuth.PasswordHasher
	signer   pkgAuth.Signer
	opts     AuthOptions
	now      func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher pkgAuth.PasswordHasher,
	signer pkgAuth.Signer,
	opts AuthOptions,
) *AuthUseCase {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &AuthUseCase{users: users, sessions: sessions, hasher: hasher, signer: signer, opts: opts, now: time.Now}
}

// Register creates a new account and opens a session for it. The returned
// token is the signed session id to be stored in the cookie.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := validateRegistration(reg); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooShort) {
			return nil, "", domainErrors.Invalid("password", fmt.Sprintf("la password deve avere almeno %d caratteri", pkgAuth.MinPasswordLength))
		}
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{
		Username:       reg.Username,
		Email:          reg.Email,
		PasswordHash:   hash,
		UserType:       reg.UserType,
		Name:           strings.TrimSpace(reg.Name),
		Phone:          strings.TrimSpace(reg.Phone),
		Address:        strings.TrimSpace(reg.Address),
		Latitude:       reg.Latitude,
		Longitude:      reg.Longitude,
		BusinessName:   strings.TrimSpace(reg.BusinessName),
		BusinessType:   strings.TrimSpace(reg.BusinessType),
		AssistanceType: strings.TrimSpace(reg.AssistanceType),
		Activities:     reg.Activities,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("username %q: %w", reg.Username, domainErrors.ErrAlreadyExists)
		}
		return nil, "", err
	}

	token, err := u.openSession(ctx, usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials and opens a session.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.openSession(ctx, usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Resolve maps a signed session token to the caller identity.
func (u *AuthUseCase) Resolve(ctx context.Context, token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, domainErrors.ErrUnauthenticated
	}
	id, err := u.signer.Verify(token)
	if err != nil {
		return model.Actor{}, domainErrors.ErrUnauthenticated
	}
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Actor{}, domainErrors.ErrUnauthenticated
		}
		return model.Actor{}, err
	}
	return session.Actor(), nil
}

// Logout drops the session behind token. Invalid tokens are ignored.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	id, err := u.signer.Verify(token)
	if err != nil {
		return nil
	}
	return u.sessions.Delete(ctx, id)
}

// CurrentUser returns the account of the caller.
func (u *AuthUseCase) CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	return usr, nil
}

func (u *AuthUseCase) openSession(ctx context.Context, usr *model.User) (string, error) {
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    usr.ID,
		UserType:  usr.UserType,
		CreatedAt: u.now().UTC(),
	}
	if err := u.sessions.Save(ctx, session, u.opts.SessionTTL); err != nil {
		return "", err
	}
	return u.signer.Sign(session.ID), nil
}

func validateRegistration(reg model.Registration) error {
	var fields []domainErrors.FieldError
	add := func(field, msg string) {
		fields = append(fields, domainErrors.FieldError{Field: field, Message: msg})
	}

	if n := len(reg.Username); n < 3 || n > 50 {
		add("username", "lo username deve avere tra 3 e 50 caratteri")
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		add("email", "indirizzo email non valido")
	}
	if !reg.UserType.Valid() {
		add("userType", "tipo utente non valido")
	}
	if (reg.Latitude == nil) != (reg.Longitude == nil) {
		add("latitude", "latitudine e longitudine vanno indicate insieme")
	} else if reg.Latitude != nil && !(geo.Point{Lat: *reg.Latitude, Lng: *reg.Longitude}).Valid() {
		add("latitude", "coordinate non valide")
	}
	switch reg.UserType {
	case model.UserTypeRestaurant:
		if strings.TrimSpace(reg.BusinessName) == "" {
			add("businessName", "il nome dell'attività è obbligatorio")
		}
	case model.UserTypeOnlus:
		if strings.TrimSpace(reg.Name) == "" {
			add("name", "il nome dell'associazione è obbligatorio")
		}
	}

	if len(fields) > 0 {
		return &domainErrors.ValidationError{Fields: fields}
	}
	return nil
}

var demoAccounts = []model.Registration{
	{
		Username:  "cliente",
		Password:  "cliente123",
		Email:     "cliente@thermopolio.it",
		UserType:  model.UserTypeCustomer,
		Name:      "Mario Rossi",
		Address:   "Via Torino 12, Milano",
		Latitude:  floatPtr(45.4627),
		Longitude: floatPtr(9.1866),
	},
	{
		Username:     "ristorante",
		Password:     "ristorante123",
		Email:        "ristorante@thermopolio.it",
		UserType:     model.UserTypeRestaurant,
		Name:         "Giulia Bianchi",
		Address:      "Corso di Porta Ticinese 40, Milano",
		Latitude:     floatPtr(45.4560),
		Longitude:    floatPtr(9.1817),
		BusinessName: "Tavola Calda da Giulia",
		BusinessType: "tavola calda",
	},
	{
		Username:       "onlus",
		Password:       "onlus123",
		Email:          "onlus@thermopolio.it",
		UserType:       model.UserTypeOnlus,
		Name:           "Banco Solidale Milano",
		Address:        "Viale Monza 150, Milano",
		Latitude:       floatPtr(45.5036),
		Longitude:      floatPtr(9.2228),
		AssistanceType: "distribuzione pasti",
		Activities:     []string{"mensa", "raccolta alimentare"},
	},
}

// SeedDemoUsers creates the demo accounts that are not registered yet.
func (u *AuthUseCase) SeedDemoUsers(ctx context.Context) (int, error) {
	created := 0
	for _, reg := range demoAccounts {
		if _, err := u.users.GetByUsername(ctx, reg.Username); err == nil {
			continue
		} else if !errors.Is(err, domainErrors.ErrNotFound) {
			return created, err
		}

		hash, err := u.hasher.Hash(reg.Password)
		if err != nil {
			return created, err
		}
		usr := model.User{
			Username:       reg.Username,
			Email:          reg.Email,
			PasswordHash:   hash,
			UserType:       reg.UserType,
			Name:           reg.Name,
			Address:        reg.Address,
			Latitude:       reg.Latitude,
			Longitude:      reg.Longitude,
			BusinessName:   reg.BusinessName,
			BusinessType:   reg.BusinessType,
			AssistanceType: reg.AssistanceType,
			Activities:     reg.Activities,
		}
		if _, err := u.users.Create(ctx, usr); err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", reg.Username, err)
		}
		created++
	}
	return created, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
