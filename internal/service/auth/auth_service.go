package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ParseToken(token string) (domain.Identity, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*domain.User, error)
}

// Widths follow the users table.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,max=254,email"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
}

type ProfileInput struct {
	Email     string `json:"email" validate:"omitempty,max=254,email"`
	FirstName string `json:"first_name" validate:"max=30"`
	LastName  string `json:"last_name" validate:"max=30"`
}

type claims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)}
	}
	user := &domain.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.InfrastructureError{Op: "hash password", Err: err}
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		if domain.IsConflict(err) {
			return nil, domain.ConflictError{Resource: "user", Msg: "username already taken"}
		}
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login answers ErrUnauthorized for both unknown users and bad passwords.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, domain.InfrastructureError{Op: "sign token", Err: err}
	}
	return signed, user, nil
}

func (s *AuthService) ParseToken(token string) (domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || c.UserID <= 0 {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return domain.Identity{UserID: c.UserID, IsAdmin: c.IsAdmin}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

var _ AuthUseCase = (*AuthService)(nil)
