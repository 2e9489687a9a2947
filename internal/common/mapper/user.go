package mapper

import (
	"github.com/AlibekovAA/account-hub/internal/common/dto"
	userdomain "github.com/AlibekovAA/account-hub/internal/user/domain"
)

func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:          user.ID,
		Email:       user.Email,
		Nickname:    user.Nickname,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
	}
}

func MyProfileToDTO(user userdomain.User) dto.MyProfile {
	return dto.MyProfile{
		User:    UserToDTO(user),
		Address: user.Address,
	}
}
