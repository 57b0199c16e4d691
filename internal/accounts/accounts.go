package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalog_service/internal/lib/jwt"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"
	"catalog_service/internal/storage"
	"catalog_service/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// PasswordHashCost matches the cost the service has always used.
const PasswordHashCost = 8

type Accounts struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	tokenSecret string
	tokenTTL    time.Duration
	hashCost    int
}

type UserSaver interface {
	SaveUser(ctx context.Context, user models.NewUser) (models.User, error)
}

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	tokenSecret string,
	tokenTTL time.Duration,
	hashCost int,
) *Accounts {
	if hashCost == 0 {
		hashCost = PasswordHashCost
	}

	return &Accounts{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
		hashCost:    hashCost,
	}
}

// Register validates the submission, rejects duplicate emails, hashes the
// password and persists the account. The returned record carries no
// credential material.
func (a *Accounts) Register(ctx context.Context, in validation.RegisterInput) (models.PublicUser, error) {
	const op = "accounts.Register"

	log := a.log.With(slog.String("op", op))

	if err := validation.ValidateRegistration(in); err != nil {
		return models.PublicUser{}, err
	}

	// Friendly pre-check only; the unique constraint on email is the real
	// guarantee when two registrations race.
	_, err := a.usrProvider.UserByEmail(ctx, in.Email)
	if err == nil {
		log.Warn("user already exists")
		return models.PublicUser{}, ErrUserExists
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		log.Error("failed to check existing user", sl.Err(err))
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.hashCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.usrSaver.SaveUser(ctx, models.NewUser{
		Name:     in.Name,
		Email:    in.Email,
		PassHash: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
			return models.PublicUser{}, ErrUserExists
		}

		log.Error("failed to save user", sl.Err(err))
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("uid", user.ID))

	return user.Public(), nil
}

// Login checks the credentials and issues a session token bound to the
// account id. A missing account and a wrong password are indistinguishable
// to the caller.
func (a *Accounts) Login(ctx context.Context, in validation.LoginInput) (models.PublicUser, string, error) {
	const op = "accounts.Login"

	log := a.log.With(slog.String("op", op))

	if err := validation.ValidateLogin(in); err != nil {
		return models.PublicUser{}, "", err
	}

	user, err := a.usrProvider.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return models.PublicUser{}, "", ErrInvalidCredentials
		}

		log.Error("failed to get user", sl.Err(err))
		return models.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(in.Password)); err != nil {
		log.Info("invalid credentials")
		return models.PublicUser{}, "", ErrInvalidCredentials
	}

	token, err := jwt.NewToken(user.ID, a.tokenSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate session token", sl.Err(err))
		return models.PublicUser{}, "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.Int64("uid", user.ID))

	return user.Public(), token, nil
}

// UserByID returns the account an authenticated session resolved to.
func (a *Accounts) UserByID(ctx context.Context, id int64) (models.PublicUser, error) {
	const op = "accounts.UserByID"

	user, err := a.usrProvider.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.PublicUser{}, ErrUserNotFound
		}

		a.log.Error("failed to get user", slog.String("op", op), sl.Err(err))
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	return user.Public(), nil
}

// UserByEmail is used by the forgot-password flow to address the outgoing
// mail; it never reveals whether the account exists to API callers.
func (a *Accounts) UserByEmail(ctx context.Context, email string) (models.PublicUser, error) {
	const op = "accounts.UserByEmail"

	user, err := a.usrProvider.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.PublicUser{}, ErrUserNotFound
		}

		a.log.Error("failed to get user", slog.String("op", op), sl.Err(err))
		return models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	return user.Public(), nil
}
