// internal/auth/service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccessToken = errors.New("invalid or expired access token")
)

type Service interface {
	Signup(ctx context.Context, email, password string, role Role, profileID string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	ParseAccessToken(tokenString string) (*Principal, error)
}

type service struct {
	repo        Repository
	jwtSecret   []byte
	tokenExpiry time.Duration
	bcryptCost  int
}

func NewService(repo Repository, jwtSecret string, tokenExpiry time.Duration, bcryptCost int) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:        repo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
		bcryptCost:  bcryptCost,
	}
}

// Signup registers an account and returns it with a fresh access token.
func (s *service) Signup(ctx context.Context, email, password string, role Role, profileID string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ProfileID:    profileID,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}
	RecordSignup(string(role))

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with an access token.
// Lookup failures and password mismatches both surface as
// ErrInvalidCredentials so the response does not leak which one failed.
func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	RecordLogin(string(user.Role))

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) generateAccessToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"role":       string(user.Role),
		"profile_id": user.ProfileID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies a bearer token and extracts the principal.
func (s *service) ParseAccessToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidAccessToken
	}

	userID, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	profileID, _ := claims["profile_id"].(string)

	role := Role(roleStr)
	if userID == "" || !ValidRole(role) {
		return nil, ErrInvalidAccessToken
	}

	return &Principal{
		UserID:    userID,
		Role:      role,
		ProfileID: profileID,
	}, nil
}
