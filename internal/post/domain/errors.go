package domain

import commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"

func NotFound(id int64) error {
	return commonerrors.NewNotFound(ResourcePosts, id)
}
