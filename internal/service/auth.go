package service

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/config"
)

// RoleAdmin is the role required for moderation and prompt management.
const RoleAdmin = "admin"

var (
	// ErrInvalidCredentials wrong username or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken missing, malformed or expired token
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden token is valid but lacks the required role
	ErrForbidden = errors.New("insufficient permissions")
)

// Identity is the verified subject of a token.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthService issues and verifies signed session tokens. Authorization state
// is never trusted from the client; every admin route re-verifies the token.
type AuthService interface {
	// Login checks credentials and returns a signed token for the admin user.
	Login(username, password string) (string, *Identity, error)

	// Verify parses and validates a token and returns its identity.
	Verify(tokenString string) (*Identity, error)
}

type authService struct {
	secret   []byte
	username string
	password string
	tokenTTL time.Duration
}

func NewAuthService(cfg *config.Config) AuthService {
	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		// Never sign or verify with an empty key: anyone could mint an admin
		// token. A random per-process secret keeps login usable; sessions do
		// not survive a restart.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			klog.Fatalf("failed to generate session secret: %v", err)
		}
		klog.Warning("jwt secret not configured, using a random per-process secret")
	}
	return &authService{
		secret:   secret,
		username: cfg.Auth.AdminUsername,
		password: cfg.Auth.AdminPassword,
		tokenTTL: cfg.Auth.TokenTTL,
	}
}

func (s *authService) Login(username, password string) (string, *Identity, error) {
	// An unset admin password disables login entirely.
	if s.password == "" {
		return "", nil, ErrInvalidCredentials
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !usernameOK || !passwordOK {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     RoleAdmin,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &Identity{Username: username, Role: RoleAdmin}, nil
}

func (s *authService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Username: username, Role: role}, nil
}
