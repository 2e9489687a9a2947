package domain

import (
	"github.com/AlibekovAA/account-hub/internal/common/clock"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
)

// User is an account. ID is zero until the user has been persisted.
// Address is private to the owner and never shown to other users.
type User struct {
	ID                int64
	Email             string
	Nickname          string
	Address           string
	Status            Status
	CertificationCode string
	LastLoginAt       int64
}

type UserCreate struct {
	Email    string
	Nickname string
	Address  string
}

type UserUpdate struct {
	Nickname string
	Address  string
}

// NewUser builds a PENDING user waiting for certificationCode.
func NewUser(in UserCreate, certificationCode string) User {
	return User{
		Email:             in.Email,
		Nickname:          in.Nickname,
		Address:           in.Address,
		Status:            StatusPending,
		CertificationCode: certificationCode,
	}
}

func (u User) IsPersisted() bool {
	return u.ID != 0
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// Update replaces nickname and address. Every other field is kept.
func (u User) Update(in UserUpdate) User {
	u.Nickname = in.Nickname
	u.Address = in.Address
	return u
}

func (u User) Login(c clock.Clock) User {
	u.LastLoginAt = clock.NowMillis(c)
	return u
}

// Certificate activates the user when code matches the issued one exactly.
// The status is not checked, so an ACTIVE user certifies again idempotently.
func (u User) Certificate(code string) (User, error) {
	if u.CertificationCode != code {
		return u, ErrCertificationCodeNotMatched
	}
	u.Status = StatusActive
	return u, nil
}
