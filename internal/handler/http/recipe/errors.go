package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"fork-kitchen/internal/domain/entity"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

var (
	publicOnly  = entity.VisibilityPublic
	privateOnly = entity.VisibilityPrivate

	errNoUser = errors.New("unauthorized: no authenticated user")
)

// parsePositiveInt parses a positive numeric query parameter.
func parsePositiveInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid numeric parameter")
	}
	return n, nil
}

// statusFor maps use case errors to HTTP status codes. Edit-lock
// failures are conflicts: the request was well-formed, the resource
// state forbids it.
func statusFor(err error) int {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, recipeUC.ErrRecipeNotFound),
		errors.Is(err, recipeUC.ErrParentNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		if _, ok := entity.IsPrecondition(err); ok {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	}
}
