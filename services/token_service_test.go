package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shop-service/models"
	"shop-service/services"
)

func TestGenerate_TokenCarriesIdentityClaims(t *testing.T) {
	svc := services.NewTokenService("test-secret")
	user := &models.User{
		ID:          uuid.New(),
		Username:    "superuser_1",
		IsSuperuser: true,
		IsStaff:     true,
	}

	token, err := svc.Generate(user)
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "superuser_1", claims["username"])
	assert.Equal(t, true, claims["is_superuser"])
	assert.Equal(t, true, claims["is_staff"])
}

func TestValidate_RejectsTokenSignedWithDifferentSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a")
	verifier := services.NewTokenService("secret-b")

	token, err := issuer.Generate(&models.User{ID: uuid.New(), Username: "alice"})
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	svc := services.NewTokenService(secret)

	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	_, err = svc.Validate(expired)
	assert.Error(t, err)
}

func TestValidate_RejectsUnsignedToken(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.Validate(unsigned)
	assert.Error(t, err)
}

func TestNewTokenService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { services.NewTokenService("") })
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}
