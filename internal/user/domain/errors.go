package domain

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
)

const ResourceUsers = "Users"

var ErrCertificationCodeNotMatched = commonerrors.NewDomainError(
	"CERTIFICATION_CODE_NOT_MATCHED",
	commonerrors.CategoryForbidden,
	http.StatusForbidden,
	"certification code does not match",
)

func NotFound(key any) error {
	return commonerrors.NewNotFound(ResourceUsers, key)
}
