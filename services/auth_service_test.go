package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/user"
)

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := NewAuthService(st, testSecret)

	view, token, err := svc.Register(context.Background(), &user.RegisterRequest{
		Username: "karim",
		Email:    "karim@example.com",
		Password: "secret123",
	}, i18n.LocaleEn)
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "karim", view.Username)
	assert.Equal(t, 0, view.Points)
	assert.Empty(t, view.CompletedChallenges)
	assert.Empty(t, view.RedeemedRewards)

	// plaintext must never reach the document
	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.NotEmpty(t, doc.Users[0].PasswordHash)
	assert.NotContains(t, doc.Users[0].PasswordHash, "secret123")
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newTestStore(t), testSecret)

	cases := []user.RegisterRequest{
		{Username: "", Email: "a@b.c", Password: "secret123"},
		{Username: "a", Email: "", Password: "secret123"},
		{Username: "a", Email: "a@b.c", Password: ""},
		{Username: "a", Email: "a@b.c", Password: "short"},
	}
	for _, req := range cases {
		_, _, err := svc.Register(context.Background(), &req, i18n.LocaleAr)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	}
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := NewAuthService(st, testSecret)

	_, _, err := svc.Register(context.Background(), &user.RegisterRequest{Username: "karim", Email: "a@b.c", Password: "secret123"}, i18n.LocaleAr)
	require.NoError(t, err)

	// same username, different case
	_, _, err = svc.Register(context.Background(), &user.RegisterRequest{Username: "KARIM", Email: "other@b.c", Password: "secret123"}, i18n.LocaleAr)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// same email
	_, _, err = svc.Register(context.Background(), &user.RegisterRequest{Username: "other", Email: "A@B.C", Password: "secret123"}, i18n.LocaleAr)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// the failed attempts must not have been persisted
	doc, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Users, 1)
}

func TestLogin_SuccessAndFailure(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := NewAuthService(st, testSecret)
	registerTestUser(t, st, "karim")

	view, token, err := svc.Login(context.Background(), &user.LoginRequest{Username: "karim", Password: "secret123"}, i18n.LocaleEn)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "karim", view.Username)

	// wrong password and unknown user must be indistinguishable
	_, _, errWrongPass := svc.Login(context.Background(), &user.LoginRequest{Username: "karim", Password: "nope12"}, i18n.LocaleEn)
	_, _, errNoUser := svc.Login(context.Background(), &user.LoginRequest{Username: "ghost", Password: "secret123"}, i18n.LocaleEn)

	assert.ErrorIs(t, errWrongPass, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, apperr.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}
