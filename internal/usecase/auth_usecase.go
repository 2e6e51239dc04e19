package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accessトークンの有効期限
const accessTokenTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type AuthOutput struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if !isValidEmailFormat(in.Email) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleBuyer
	}
	if role != model.RoleBuyer && role != model.RoleSeller {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	//重複チェック
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "username already exists")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already exists")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user, err := u.users.Create(ctx, model.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issueFor(user)
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if in.Username == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return u.issueFor(user)
}

func (u *AuthUsecase) issueFor(user model.User) (AuthOutput, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		User: UserDTO{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
		AccessToken: signed,
		ExpiresIn:   int(accessTokenTTL.Seconds()),
	}, nil
}

// メール形式チェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
