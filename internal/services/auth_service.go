package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"udaanhub/internal/models"
	"udaanhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login failure. The same error covers
// an unknown email and a wrong password so callers cannot probe for accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// tokenClaims embeds the user ID in the signed token. The claim is named
// "id" to match what the frontend already expects.
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.StandardClaims
}

// AuthService handles registration, login and token issue/verification.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	hashCost   int
}

// NewAuthService creates a new AuthService. hashCost is the bcrypt work
// factor; values below bcrypt.MinCost fall back to the default cost of 10.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, hashCost int) *AuthService {
	if hashCost < bcrypt.MinCost {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		hashCost:   hashCost,
	}
}

// RegisterUser creates a new account with a bcrypt-hashed password. Email is
// lowercased so uniqueness is case-insensitive; role defaults to client.
// Returns repositories.ErrDuplicateEmail when the email is taken.
func (s *AuthService) RegisterUser(name, email, rawPassword, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = models.RoleClient
	}

	// Pre-check is an optimization only; the unique index on email is the
	// authoritative guard against concurrent registrations.
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, repositories.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser verifies credentials and returns the matching user.
func (s *AuthService) LoginUser(email, rawPassword string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.VerifyPassword(user, rawPassword) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// VerifyPassword checks a raw password against the stored hash. Timing
// characteristics are delegated to bcrypt.
func (s *AuthService) VerifyPassword(user *models.User, rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)) == nil
}

// SaveUser persists changes to an existing user. The password is re-hashed
// only when rawPassword is non-empty; saving unrelated field changes leaves
// the stored hash untouched, so repeated saves never double-hash.
// The caller must pass a record loaded with its hash (GetByEmail).
// No route mutates users today; this backs future account-management
// endpoints and keeps the hashing rules in one place.
func (s *AuthService) SaveUser(user *models.User, rawPassword string) error {
	if rawPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.hashCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	return s.userRepo.Update(user)
}

// GetUserByID resolves a token's user ID to the stored record, password
// hash excluded.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// IssueToken signs a time-bound token carrying the user's ID.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.tokenDurat).Unix(),
			IssuedAt:  now.Unix(),
		},
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, structure and expiry, returning the
// embedded user ID.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}
