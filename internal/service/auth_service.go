package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthOptions configures token issuance and password policy.
type AuthOptions struct {
	Secret            string
	TokenTTL          time.Duration
	MinPasswordLength int
	BcryptCost        int
	AllowAdminSignup  bool
}

const (
	defaultTokenTTL          = 24 * time.Hour
	defaultMinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input
	maxPasswordBytes = 72

	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "invalid or expired token"
)

// AuthService handles user auth logic
type AuthService struct {
	users  repository.Users
	events repository.Events
	opts   AuthOptions

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.Users, events repository.Events, opts AuthOptions) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = defaultMinPasswordLength
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, events: events, opts: opts}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Register validates the input, stores a new user and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role, ok := models.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return nil, models.NewValidationError("role must be user or admin")
	}
	if role == models.RoleAdmin && !s.opts.AllowAdminSignup {
		return nil, models.NewForbiddenError("admin signup is disabled")
	}

	u, err := s.createUser(ctx, in, role)
	if err != nil {
		return nil, err
	}
	return s.authResult(u)
}

// CreateAdmin registers an administrator regardless of the signup policy.
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	u, err := s.createUser(ctx, in, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, models.NewValidationError("email is invalid")
	}
	if len(in.Password) < s.opts.MinPasswordLength {
		return nil, models.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", s.opts.MinPasswordLength))
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, models.NewValidationError(
			fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewStorageError("lookup user", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("username already exists")
	}
	existing, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, models.NewStorageError("lookup user", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, models.NewValidationError(
			fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	if err != nil {
		return nil, models.NewStorageError("hash password", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("username or email already exists")
		}
		return nil, models.NewStorageError("create user", err)
	}

	err = s.events.Append(ctx, models.AuditEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  u.CreatedAt,
		Type:        models.EventUserRegistered,
		Description: fmt.Sprintf("user %s registered as %s", u.Username, u.Role),
		ActorID:     u.ID,
		SubjectID:   u.ID,
	})
	if err != nil {
		return nil, models.NewStorageError("append event", err)
	}
	return &u, nil
}

// Login checks credentials by username, falling back to email.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if in.Password == "" || (username == "" && email == "") {
		return nil, models.NewValidationError("username or email and password are required")
	}

	u, err := s.findUser(ctx, username, email)
	if err != nil {
		return nil, models.NewStorageError("lookup user", err)
	}
	if u == nil {
		// Compare anyway so a miss costs as much as a wrong password.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(in.Password))
		return nil, models.NewAuthError(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.NewAuthError(msgInvalidCredentials)
	}
	return s.authResult(u)
}

func (s *AuthService) findUser(ctx context.Context, username, email string) (*models.User, error) {
	if username != "" {
		u, err := s.users.GetByUsername(ctx, username)
		if err != nil || u != nil {
			return u, err
		}
		// The login form has a single field; accept an email typed into it.
		if email == "" && strings.Contains(username, "@") {
			email = username
		}
	}
	if email == "" {
		return nil, nil
	}
	return s.users.GetByEmail(ctx, email)
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.opts.BcryptCost)
	})
	return s.dummyHash
}

// Me returns the public view of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewStorageError("lookup user", err)
	}
	if u == nil {
		return nil, models.NewNotFoundError("user", userID)
	}
	pub := u.Public()
	return &pub, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, models.NewAuthError("missing token")
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	})
	if err != nil {
		return nil, &models.AppError{Kind: models.KindUnauthorized, Message: msgInvalidToken, Err: err}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, models.NewAuthError(msgInvalidToken)
	}
	return claims, nil
}

func (s *AuthService) authResult(u *models.User) (*AuthResult, error) {
	token, err := s.issueToken(u)
	if err != nil {
		return nil, models.NewStorageError("sign token", err)
	}
	return &AuthResult{Token: token, User: u.Public()}, nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	return token.SignedString([]byte(s.opts.Secret))
}
