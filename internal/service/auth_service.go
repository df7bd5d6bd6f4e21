package service

import (
	"context"
	"errors"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// Login failures never distinguish wrong password from unknown email,
	// to avoid account enumeration.
	ErrInvalidCredentials = apperrors.New(apperrors.KindInvalidCredentials, "invalid email or password")
	ErrAccountInactive    = apperrors.New(apperrors.KindUnauthorized, "account is not active")
	ErrTokenInvalid       = apperrors.New(apperrors.KindUnauthorized, "invalid token")
	ErrTokenExpired       = apperrors.New(apperrors.KindTokenExpired, "token has expired")
	ErrSessionRevoked     = apperrors.New(apperrors.KindUnauthorized, "session is no longer valid")
	ErrUserAlreadyExists  = apperrors.New(apperrors.KindConflict, "user with this email already exists")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, "user not found")
	ErrHashingFailed      = apperrors.New(apperrors.KindInternal, "failed to hash password")
	ErrTokenGeneration    = apperrors.New(apperrors.KindInternal, "failed to generate authentication token")
)

// AuthService covers login/logout, token resolution, the caller's own
// profile, and admin user management.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, payload map[string]any) (*domain.User, error)

	// Admin surface
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, name, email, password string, role domain.Role, profileType string) (*domain.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, payload map[string]any) (*domain.User, error)

	// EnsureAdmin seeds the first admin account when no users exist.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// --- JWT Claims ---

// jwtClaims defines the structure of the JWT payload. SessionID ties the
// token to a revocable session row.
type jwtClaims struct {
	UserID    string      `json:"uid"`
	Role      domain.Role `json:"role"`
	SessionID string      `json:"sid"`
	jwt.RegisteredClaims
}

// Login authenticates a user, opens a session, and returns a signed token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return "", nil, ErrAccountInactive
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.jwtExpiration),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.generateJWT(user, session)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	// Best effort; a failed stamp should not fail the login.
	_ = s.userRepo.SetLastLogin(ctx, user.ID, now)
	user.LastLoginAt = &now

	user.PasswordHash = ""
	return token, user, nil
}

// Authenticate resolves a bearer token back to its user and session. Every
// failure is an unauthorized condition; the distinct sentinels only shape
// the message.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*domain.User, *domain.Session, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, ErrTokenExpired
		}
		return nil, nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, nil, ErrTokenInvalid
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSessionRevoked
		}
		return nil, nil, err
	}
	if session.IsExpired(time.Now().UTC()) {
		return nil, nil, ErrTokenExpired
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil || userID != session.UserID {
		return nil, nil, ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSessionRevoked
		}
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, ErrAccountInactive
	}

	user.PasswordHash = ""
	return user, session, nil
}

// Logout revokes the session behind the presented token. Idempotent.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// profileFields is what a user may change about themselves. Role and status
// are deliberately absent.
var profileFields = map[string]bool{
	"name":        true,
	"email":       true,
	"profileType": true,
}

// UpdateProfile applies a partial update to the caller's own record. A
// "password" key is rehashed into the stored digest; the digest itself can
// never be set directly.
func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, payload map[string]any) (*domain.User, error) {
	set, _ := sanitizeUpdate(payload, profileFields)

	if raw, ok := payload["password"]; ok {
		password, ok := raw.(string)
		if !ok || password == "" {
			return nil, apperrors.New(apperrors.KindValidation, "password must be a non-empty string")
		}
		digest, err := HashPassword(password)
		if err != nil {
			return nil, ErrHashingFailed
		}
		set["passwordHash"] = digest
	}

	if len(set) > 0 {
		if err := s.userRepo.Update(ctx, userID, set); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, ErrUserAlreadyExists
			}
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// === Admin user management ===

// ListUsers returns every account. Admin only; enforced by middleware.
func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// CreateUser registers a new account.
func (s *authService) CreateUser(ctx context.Context, name, email, password string, role domain.Role, profileType string) (*domain.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, apperrors.New(apperrors.KindValidation, "name, email, password, and role are required")
	}

	digest, err := HashPassword(password)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
		ProfileType:  profileType,
		Status:       domain.UserStatusActive,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// adminUserFields is what an admin may change on any account.
var adminUserFields = map[string]bool{
	"name":        true,
	"email":       true,
	"profileType": true,
	"role":        true,
	"status":      true,
}

// UpdateUser applies a partial update to any account. Admin only.
func (s *authService) UpdateUser(ctx context.Context, id primitive.ObjectID, payload map[string]any) (*domain.User, error) {
	set, _ := sanitizeUpdate(payload, adminUserFields)

	if raw, ok := payload["password"]; ok {
		password, ok := raw.(string)
		if !ok || password == "" {
			return nil, apperrors.New(apperrors.KindValidation, "password must be a non-empty string")
		}
		digest, err := HashPassword(password)
		if err != nil {
			return nil, ErrHashingFailed
		}
		set["passwordHash"] = digest
	}

	if len(set) > 0 {
		if err := s.userRepo.Update(ctx, id, set); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, ErrUserAlreadyExists
			}
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin seeds the first admin account on an empty users collection.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil // Bootstrap not configured.
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateUser(ctx, name, email, password, domain.RoleAdmin, "")
	if err != nil && !errors.Is(err, ErrUserAlreadyExists) {
		return err
	}
	return nil
}

// --- JWT Helper ---

// generateJWT creates a signed token bound to the given session.
func (s *authService) generateJWT(user *domain.User, session *domain.Session) (string, error) {
	claims := &jwtClaims{
		UserID:    user.ID.Hex(),
		Role:      user.Role,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			Issuer:    "fit-flow-control",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
