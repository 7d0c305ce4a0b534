package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"microwave/internal/models"
	"microwave/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 8 * time.Hour

// Domain errors for auth flows.
var (
	ErrEmptyCredentials   = errors.New("username and password are required")
	ErrNotConfigured      = errors.New("authentication is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptySigningKey    = errors.New("jwt signing key is empty")
)

// AuthService manages the single administrator credential.
type AuthService struct {
	authRepo   repository.AuthRepo
	signingKey []byte
	tokenTTL   time.Duration
	box        *secretBox
	now        func() time.Time
}

func NewAuthService(repo repository.AuthRepo, opts AuthOptions) (*AuthService, error) {
	if opts.SigningKey == "" {
		return nil, ErrEmptySigningKey
	}
	box, err := newSecretBox(opts.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("connection string cipher: %w", err)
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(opts.SigningKey),
		tokenTTL:   ttl,
		box:        box,
		now:        time.Now,
	}, nil
}

// Configure replaces the administrator credential. An empty connectionString
// clears the stored one.
func (s *AuthService) Configure(ctx context.Context, username, password, connectionString string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ErrEmptyCredentials
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	settings := models.AuthSettings{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if connectionString != "" {
		enc, err := s.box.Seal(connectionString)
		if err != nil {
			return fmt.Errorf("encrypt connection string: %w", err)
		}
		settings.EncryptedConnectionString = enc
	}

	return s.authRepo.Save(ctx, settings)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken checks the credential and returns a signed token. The
// username comparison ignores case.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (models.AuthToken, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return models.AuthToken{}, ErrInvalidCredentials
	}

	settings, err := s.authRepo.Load(ctx)
	if err != nil {
		return models.AuthToken{}, err
	}
	if settings == nil {
		return models.AuthToken{}, ErrNotConfigured
	}

	validUser := strings.EqualFold(settings.Username, strings.TrimSpace(username))
	if err := verifyPassword(settings.PasswordHash, password); err != nil || !validUser {
		return models.AuthToken{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	token, expiresAt, err := s.issueToken(settings.Username, now)
	if err != nil {
		return models.AuthToken{}, err
	}

	settings.LastLoginAt = &now
	if err := s.authRepo.Save(ctx, *settings); err != nil {
		return models.AuthToken{}, fmt.Errorf("record login: %w", err)
	}

	return models.AuthToken{Token: token, Username: settings.Username, ExpiresAt: expiresAt}, nil
}

// ParseToken parses JWT and returns the username it was issued to.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}

func (s *AuthService) IsConfigured(ctx context.Context) (bool, error) {
	settings, err := s.authRepo.Load(ctx)
	if err != nil {
		return false, err
	}
	return settings != nil, nil
}

// Status reports the public view of the configured credential.
func (s *AuthService) Status(ctx context.Context) (models.AuthStatus, error) {
	settings, err := s.authRepo.Load(ctx)
	if err != nil {
		return models.AuthStatus{}, err
	}
	if settings == nil {
		return models.AuthStatus{}, nil
	}
	created := settings.CreatedAt
	return models.AuthStatus{
		IsConfigured:        true,
		Username:            settings.Username,
		LastLoginAt:         settings.LastLoginAt,
		CreatedAt:           &created,
		HasConnectionString: settings.EncryptedConnectionString != "",
	}, nil
}

// ConnectionString returns the decrypted connection string, or "" when none
// is stored.
func (s *AuthService) ConnectionString(ctx context.Context) (string, error) {
	settings, err := s.authRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return "", ErrNotConfigured
	}
	if settings.EncryptedConnectionString == "" {
		return "", nil
	}
	return s.box.Open(settings.EncryptedConnectionString)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}
