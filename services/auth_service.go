package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// Session is an issued login: the user plus the signed token that carries it.
type Session struct {
	User   *models.User
	Token  string
	Claims *utils.SessionClaims
}

type AuthService struct {
	users            *repository.UserRepository
	tokens           *utils.TokenIssuer
	sessions         SessionStore
	allowAdminSignup bool
}

func NewAuthService(users *repository.UserRepository, tokens *utils.TokenIssuer, sessions SessionStore, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		tokens:           tokens,
		sessions:         sessions,
		allowAdminSignup: allowAdminSignup,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.NewValidation("A valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, utils.NewValidation("Password must be at least %d characters", minPasswordLength)
	}

	role := models.RoleCustomer
	if strings.TrimSpace(in.Role) != "" {
		parsed, ok := models.ParseRole(in.Role)
		if !ok {
			return nil, utils.NewValidation("Invalid role: %s", in.Role)
		}
		role = parsed
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, utils.NewValidation("Admin accounts cannot be self-registered")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, utils.NewConflict("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: email, Password: string(hashed), Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.NewConflict("Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewUnauthorized("Invalid credentials")
	}

	utils.InfoLogger.WithField("user_id", user.ID).Info("user logged in")
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, claims, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{User: user, Token: token, Claims: claims}, nil
}

// Logout revokes the caller's session id for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, id *utils.Identity) error {
	if err := s.sessions.Revoke(ctx, id.SessionID, id.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	utils.InfoLogger.WithField("user_id", id.UserID).Info("user logged out")
	return nil
}

// Authenticate turns a session token into the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.Identity, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, utils.NewUnauthorized("Not authenticated")
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return nil, utils.NewUnauthorized("Not authenticated")
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, utils.NewUnauthorized("Not authenticated")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &utils.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		SessionID: claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}
