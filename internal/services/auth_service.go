package services

import (
	"fmt"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims are the decoded fields of a verified access token.
// Authorization decisions are derived entirely from these claims; there is
// no database lookup and no revocation mechanism.
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
}

// AuthService handles password hashing, token issuance/verification and the
// user flows built on them.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. An empty signing secret is a
// fatal configuration error: the process must not serve authenticated
// traffic without one.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, apperrors.Config("JWT signing secret is not configured")
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// HashPassword produces a salted bcrypt hash of the password. Each call
// yields a different encoding, all verifying the same password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. A malformed hash
// verifies as false, never as an error.
func (s *AuthService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RegisterUser hashes the password and persists a new user with role USER.
// Uniqueness is ultimately enforced by the store; a duplicate username or
// email surfaces as a Conflict error from the repository.
func (s *AuthService) RegisterUser(username, email, password string) (*models.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the user by username and verifies the password.
// An unknown username and a wrong password both return (nil, nil) so the
// caller cannot distinguish the two cases.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !s.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// IssueToken produces a signed, time-limited token encoding the user's
// identity and role.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses and validates a token. A malformed, mis-signed or
// expired token fails with Unauthorized; on success the decoded claims are
// returned.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	userID, _ := claims["userId"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}
