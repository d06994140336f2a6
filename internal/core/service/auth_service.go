package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// LoginThrottle abstracts the attempt counter (Redis). Hit records one
// attempt for the key and returns the count within the current window.
type LoginThrottle interface {
	Hit(ctx context.Context, key string) (int64, error)
}

// AuthService implements signup, login, and token issue/verify.
type AuthService struct {
	repo        ports.UserRepository
	throttle    LoginThrottle
	jwtSecret   string
	tokenTTL    time.Duration
	maxAttempts int64
	logger      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, maxAttempts int64, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &AuthService{
		repo:        repo,
		throttle:    throttle,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, &domain.ValidationError{Fields: missingSignupFields(name, email, password)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are logged distinctly but both return ErrInvalidCredentials so
// the caller cannot tell which case occurred.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		attempts, err := s.throttle.Hit(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("login throttle unavailable, proceeding")
		} else if attempts > s.maxAttempts {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("login failed: unknown email")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	// bcrypt comparison is constant-time over the hash.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Info().Str("email", email).Msg("login failed: wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken produces a signed token binding to userID, expiring after the
// configured TTL. No server-side state is kept.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks signature and expiry and returns the bound user id.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}

func missingSignupFields(name, email, password string) []string {
	var fields []string
	if name == "" {
		fields = append(fields, "name")
	}
	if email == "" {
		fields = append(fields, "email")
	}
	if password == "" {
		fields = append(fields, "password")
	}
	return fields
}
