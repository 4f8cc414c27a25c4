package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mwilczek/shortener/internal/errorz"
	"github.com/mwilczek/shortener/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type Auth struct {
	us       userStore
	l        *slog.Logger
	secret   []byte
	tokenTTL time.Duration
}

func NewAuth(us userStore, l *slog.Logger, secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		us:       us,
		l:        l,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (a *Auth) Register(ctx context.Context, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := a.us.CreateUser(ctx, email, string(hash))
	if errors.Is(err, errorz.ErrEmailTaken) {
		return 0, errorz.ErrEmailTaken
	} else if err != nil {
		a.l.Error("failed to create user", "error", err)
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// Login verifies credentials and issues a signed token. Unknown emails
// and bad passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.us.GetUserByEmail(ctx, email)
	if errors.Is(err, errorz.ErrNotFound) {
		return "", errorz.ErrInvalidCredentials
	} else if err != nil {
		a.l.Error("failed to get user", "error", err)
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errorz.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(a.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		a.l.Error("failed to sign token", "error", err)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken returns the user id a valid token was issued for.
func (a *Auth) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errorz.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errorz.ErrInvalidCredentials
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errorz.ErrInvalidCredentials
	}

	return int64(userID), nil
}
