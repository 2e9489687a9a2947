package domain_test

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/account-hub/internal/common/clock"
	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/user/domain"
)

func activeUser() domain.User {
	return domain.User{
		ID:                1,
		Email:             "jeongdalma@gmail.com",
		Nickname:          "jeongdalma",
		Address:           "Seoul",
		Status:            domain.StatusActive,
		CertificationCode: "test-code",
	}
}

func TestNewUser_IsPendingWithCode(t *testing.T) {
	in := domain.UserCreate{
		Email:    gofakeit.Email(),
		Nickname: gofakeit.Username(),
		Address:  gofakeit.City(),
	}

	u := domain.NewUser(in, "code-1")

	assert.Equal(t, in.Email, u.Email)
	assert.Equal(t, in.Nickname, u.Nickname)
	assert.Equal(t, in.Address, u.Address)
	assert.Equal(t, domain.StatusPending, u.Status)
	assert.Equal(t, "code-1", u.CertificationCode)
	assert.Zero(t, u.LastLoginAt)
	assert.False(t, u.IsPersisted())
}

func TestUser_UpdateChangesOnlyProfileFields(t *testing.T) {
	u := activeUser()
	u.LastLoginAt = 99

	updated := u.Update(domain.UserUpdate{Nickname: "new-nick", Address: "Pangyo"})

	assert.Equal(t, "new-nick", updated.Nickname)
	assert.Equal(t, "Pangyo", updated.Address)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, u.Email, updated.Email)
	assert.Equal(t, u.Status, updated.Status)
	assert.Equal(t, u.CertificationCode, updated.CertificationCode)
	assert.Equal(t, int64(99), updated.LastLoginAt)
	assert.Equal(t, "jeongdalma", u.Nickname)
}

func TestUser_LoginStampsClock(t *testing.T) {
	u := activeUser().Login(clock.NewMockClockMillis(1678530673958))

	assert.Equal(t, int64(1678530673958), u.LastLoginAt)
}

func TestUser_CertificateMatchingCodeActivates(t *testing.T) {
	u := activeUser()
	u.Status = domain.StatusPending

	certified, err := u.Certificate("test-code")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, certified.Status)
}

func TestUser_CertificateIsIdempotentForActiveUser(t *testing.T) {
	certified, err := activeUser().Certificate("test-code")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, certified.Status)
}

func TestUser_CertificateRejectsMismatch(t *testing.T) {
	cases := []string{"", "TEST-CODE", "test-code ", "other"}

	for _, code := range cases {
		u := activeUser()
		u.Status = domain.StatusPending

		got, err := u.Certificate(code)

		assert.ErrorIs(t, err, domain.ErrCertificationCodeNotMatched, code)
		assert.Equal(t, domain.StatusPending, got.Status, code)
		assert.Equal(t, domain.StatusPending, u.Status, code)
	}
}

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := domain.NotFound(int64(1234567))

	assert.True(t, errors.Is(err, commonerrors.ErrResourceNotFound))
	assert.EqualError(t, err, "Users not found: 1234567")
}
