package http

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidID = errors.New("invalid id")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct returns field -> failed rule for every violation, or nil.
func ValidateStruct(v any) map[string]any {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]any{"body": err.Error()}
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[fe.Field()] = rule
	}
	return details
}

// ParseID reads a positive int64 path value.
func ParseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// RequireID is ParseID that answers 400 INVALID_PATH on failure.
func RequireID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := ParseID(r, name)
	if err != nil {
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeInvalidPath, name+" must be a positive integer", nil, TraceIDFromContext(r.Context()))
		return 0, false
	}
	return id, true
}
