package services

import (
	"errors"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "planner-test"
	userID := "user-123-uuid"

	setup := func() (*TokenService, *MockUserRepository) {
		mockRepo := new(MockUserRepository)
		return NewTokenService(secret, issuer, 1*time.Hour, mockRepo), mockRepo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		tokenString, err := service.GenerateToken(domain.Identity{UserID: userID})
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		id, err := service.ValidateToken(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, domain.Identity{UserID: userID}, id)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Success: Demo token skips the user lookup", func(t *testing.T) {
		service, mockRepo := setup()

		tokenString, err := service.GenerateToken(domain.DemoIdentity())
		require.NoError(t, err)

		id, err := service.ValidateToken(tokenString)
		assert.NoError(t, err)
		assert.True(t, id.Demo)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Fail: Demo flag on another subject", func(t *testing.T) {
		service, _ := setup()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "someone-else",
			"demo": true,
			"iss":  issuer,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		tokenString, _ := token.SignedString([]byte(secret))

		_, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Should reject valid token if user is deleted (DB check)", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, errors.New("user not found"))

		tokenString, err := service.GenerateToken(domain.Identity{UserID: userID})
		require.NoError(t, err)

		id, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user no longer exists")
		assert.Empty(t, id.UserID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Non-demo token without accounts", func(t *testing.T) {
		service := NewTokenService(secret, issuer, time.Hour, nil)
		tokenString, _ := service.GenerateToken(domain.Identity{UserID: userID})

		_, err := service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, domain.ErrAccountsDisabled)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		service := NewTokenService(secret, issuer, -1*time.Second, new(MockUserRepository))

		tokenString, err := service.GenerateToken(domain.Identity{UserID: userID})
		require.NoError(t, err)

		id, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token is expired")
		assert.Empty(t, id.UserID)
	})

	t.Run("Fail: Should reject token with wrong secret (Tampered)", func(t *testing.T) {
		service, _ := setup()
		tokenString, _ := service.GenerateToken(domain.Identity{UserID: userID})

		attackerService := NewTokenService("wrong-key", issuer, 1*time.Hour, new(MockUserRepository))

		_, err := attackerService.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
	})

	t.Run("Fail: Should reject token with wrong issuer", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		serviceA := NewTokenService(secret, "correct-issuer", 1*time.Hour, mockRepo)
		tokenString, _ := serviceA.GenerateToken(domain.Identity{UserID: userID})

		serviceB := NewTokenService(secret, "wrong-issuer", 1*time.Hour, mockRepo)

		_, err := serviceB.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Equal(t, "invalid token issuer", err.Error())
	})

	t.Run("Fail: Should reject 'None' algorithm attack", func(t *testing.T) {
		token := jwt.New(jwt.SigningMethodNone)
		claims := token.Claims.(jwt.MapClaims)
		claims["sub"] = userID
		claims["iss"] = issuer

		fakeTokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		service, _ := setup()
		_, err := service.ValidateToken(fakeTokenString)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected signing method")
	})

	t.Run("Fail: Should reject malformed token string", func(t *testing.T) {
		service, _ := setup()

		_, err := service.ValidateToken("this-is-not-a-jwt")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
	})
}
