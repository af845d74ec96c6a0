package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/auth"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/testutil"
	"github.com/jhoicas/Facturador-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "s3cr3t", ExpMinutes: 5, Issuer: "facturador"}

func TestRegisterLogin(t *testing.T) {
	uc := auth.NewAuthUseCase(testutil.NewUserRepo(), jwtCfg)

	user, err := uc.RegisterUser(dto.RegisterRequest{Email: "Ana@Example.com", Password: "password123", FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	login, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	gotID, gotEmail, err := jwt.Parse(jwtCfg.Secret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, "ana@example.com", gotEmail)

	me, err := uc.CurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.FirstName)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := auth.NewAuthUseCase(testutil.NewUserRepo(), jwtCfg)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.CurrentUser("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
