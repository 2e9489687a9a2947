package mapper

import (
	"github.com/AlibekovAA/account-hub/internal/common/dto"
	postdomain "github.com/AlibekovAA/account-hub/internal/post/domain"
)

func PostToDTO(post postdomain.Post) dto.Post {
	return dto.Post{
		ID:         post.ID,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt,
		ModifiedAt: post.ModifiedAt,
		Writer:     UserToDTO(post.Writer),
	}
}
