package usecase

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

// Test: 登録成功でトークンが返る
func TestRegisterSuccess(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	users.On("FindByUsername", mock.Anything, "taro").Return(model.User{}, repo.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.User{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Username == "taro" && u.Role == model.RoleBuyer && u.IsActive
	})).Return(model.User{ID: 1, Username: "taro", Email: "taro@example.com", Role: model.RoleBuyer}, nil)

	out, err := uc.Register(context.Background(), RegisterInput{
		Username: "taro",
		Email:    "taro@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "taro", out.User.Username)
	assert.NotEmpty(t, out.AccessToken)

	// トークンの中身を確認
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "buyer", claims["role"])
}

// Test: username重複は409
func TestRegisterDuplicateUsername(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	users.On("FindByUsername", mock.Anything, "taro").Return(model.User{ID: 1, Username: "taro"}, nil)

	_, err := uc.Register(context.Background(), RegisterInput{
		Username: "taro",
		Email:    "taro@example.com",
		Password: "password123",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Test: 短すぎるパスワードは拒否
func TestRegisterPasswordTooShort(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	_, err := uc.Register(context.Background(), RegisterInput{
		Username: "taro",
		Email:    "taro@example.com",
		Password: "short",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: 不正なロールは拒否
func TestRegisterInvalidRole(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	_, err := uc.Register(context.Background(), RegisterInput{
		Username: "taro",
		Email:    "taro@example.com",
		Password: "password123",
		Role:     "admin",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: ログイン成功
func TestLoginSuccess(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByUsername", mock.Anything, "taro").Return(model.User{
		ID:           1,
		Username:     "taro",
		PasswordHash: string(hashed),
		Role:         model.RoleSeller,
		IsActive:     true,
	}, nil)

	out, err := uc.Login(context.Background(), LoginInput{Username: "taro", Password: "password123"})

	assert.NoError(t, err)
	assert.Equal(t, "seller", out.User.Role)
	assert.NotEmpty(t, out.AccessToken)
}

// Test: パスワード不一致は401（存在有無を悟らせない）
func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByUsername", mock.Anything, "taro").Return(model.User{
		ID:           1,
		Username:     "taro",
		PasswordHash: string(hashed),
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), LoginInput{Username: "taro", Password: "wrong"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

// Test: 未知ユーザーも同じ401
func TestLoginUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	users.On("FindByUsername", mock.Anything, "nobody").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), LoginInput{Username: "nobody", Password: "password123"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

// Test: 無効化済みユーザーはログインできない
func TestLoginInactiveUser(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewAuthUsecase(testConfig(), users)

	users.On("FindByUsername", mock.Anything, "taro").Return(model.User{
		ID:       1,
		Username: "taro",
		IsActive: false,
	}, nil)

	_, err := uc.Login(context.Background(), LoginInput{Username: "taro", Password: "password123"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}
