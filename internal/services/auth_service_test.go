package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/models"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, auth.NewJWTService("test-secret")), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	resp, err := svc.Register(&models.RegisterRequest{
		Email:        "Owner@Example.com",
		Name:         "Owner",
		BusinessName: "Corner Bakery",
		BusinessType: "retail",
		Password:     "s3cure-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	assert.Equal(t, models.BusinessRetail, resp.User.BusinessType)

	login, err := svc.Login(&models.LoginRequest{Email: "owner@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&models.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthFixture()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Name: "A", Password: "longenough"}},
		{"bad email", models.RegisterRequest{Email: "nope", Name: "A", Password: "longenough"}},
		{"short password", models.RegisterRequest{Email: "a@b.co", Name: "A", Password: "short"}},
		{"missing name", models.RegisterRequest{Email: "a@b.co", Password: "longenough"}},
		{"bad business type", models.RegisterRequest{Email: "a@b.co", Name: "A", Password: "longenough", BusinessType: "crypto"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.req)
			assert.Error(t, err)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(&models.RegisterRequest{Email: "a@b.co", Name: "A", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(&models.RegisterRequest{Email: "A@B.CO", Name: "B", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Login(&models.LoginRequest{Email: "ghost@b.co", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
