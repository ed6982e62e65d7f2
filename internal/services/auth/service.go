package authservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"signdesk/internal/models"
	"signdesk/internal/validator"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const pkg = "authService/"

type AuthService struct {
	log           *slog.Logger
	userAdder     UserAdder
	userProvider  UserProvider
	sessionStorer SessionStorer
	adminEmails   map[string]struct{}
}

// New builds the auth service. adminEmails seeds the role column for new
// registrations only; once a profile row exists its stored role is
// authoritative.
func New(
	log *slog.Logger,
	userAdder UserAdder,
	userProvider UserProvider,
	sessionStorer SessionStorer,
	adminEmails []string,
) *AuthService {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allow[email] = struct{}{}
		}
	}

	return &AuthService{
		log:           log,
		userAdder:     userAdder,
		userProvider:  userProvider,
		sessionStorer: sessionStorer,
		adminEmails:   allow,
	}
}

func (a *AuthService) Register(ctx context.Context, email string, name string, password string) (string, error) {
	op := pkg + "Register"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to register user")

	if !validator.IsValidEmail(email) || !validator.IsValidName(name) || !validator.IsValidPassword(password) {
		log.Warn("invalid email, name or password format")
		return "", models.ErrInvalidParams
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", slog.String("error", err.Error()))
		return "", models.ErrInternal
	}

	role := models.RoleUser
	if _, ok := a.adminEmails[strings.ToLower(email)]; ok {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:       uuid.NewV4().String(),
		Email:    strings.ToLower(email),
		Name:     name,
		PassHash: passHash,
		Role:     role,
	}

	err = a.userAdder.AddUser(ctx, user)
	if err != nil {
		var uce *models.UniqueConstraintError
		if errors.As(err, &uce) || errors.Is(err, models.ErrUserExists) {
			log.Warn("user already exists", slog.String("email", user.Email))
			return "", models.ErrUserExists
		}

		log.Error("failed to add user", slog.String("error", err.Error()))
		return "", models.ErrInternal
	}

	log.Debug("user registered successfully")

	return user.Email, nil
}

func (a *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	op := pkg + "Login"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Debug("attempting to login user")

	user, err := a.userProvider.UserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("user not found", slog.String("error", models.ErrUserNotFound.Error()))
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}

		log.Error("failed to get user", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token := uuid.NewV4().String()

	userJSON, err := json.Marshal(user)
	if err != nil {
		log.Error("failed to marshal user", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	err = a.sessionStorer.SaveSession(ctx, token, string(userJSON))
	if err != nil {
		log.Error("failed to store token", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged in successfully")

	return token, nil
}

func (a *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	op := pkg + "UserByToken"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Debug("attempting to get user by session token")

	userJSON, err := a.sessionStorer.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found", slog.String("error", err.Error()))
			return nil, models.ErrInvalidCredentials
		}
		log.Error("failed to get user by session token", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	var user models.User

	err = json.Unmarshal([]byte(userJSON), &user)
	if err != nil {
		log.Error("failed to unmarshal user from json", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	log.Debug("user was founded successfully")

	return &user, nil
}

func (a *AuthService) Logout(ctx context.Context, token string) error {
	op := pkg + "Logout"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to logout user")

	err := a.sessionStorer.DeleteSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found", slog.String("session", token))

			return models.ErrSessionNotFound
		}
		log.Error("failed to delete session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged out successfully")

	return nil
}
