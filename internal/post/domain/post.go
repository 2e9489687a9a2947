package domain

import (
	"github.com/AlibekovAA/account-hub/internal/common/clock"
	userdomain "github.com/AlibekovAA/account-hub/internal/user/domain"
)

const ResourcePosts = "Posts"

// Post timestamps are epoch milliseconds. ModifiedAt stays zero until the
// first edit.
type Post struct {
	ID         int64
	Content    string
	CreatedAt  int64
	ModifiedAt int64
	Writer     userdomain.User
}

type PostCreate struct {
	WriterID int64
	Content  string
}

type PostUpdate struct {
	Content string
}

func NewPost(writer userdomain.User, in PostCreate, c clock.Clock) Post {
	return Post{
		Content:   in.Content,
		CreatedAt: clock.NowMillis(c),
		Writer:    writer,
	}
}

// Update replaces the content and stamps ModifiedAt. CreatedAt and Writer are kept.
func (p Post) Update(in PostUpdate, c clock.Clock) Post {
	p.Content = in.Content
	p.ModifiedAt = clock.NowMillis(c)
	return p
}
