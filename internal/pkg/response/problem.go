package response

import (
	"errors"
	"net/http"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

// Problem maps a domain error onto the HTTP error taxonomy: validation 400,
// duplicate email 409, bad credentials 401, ownership violations 403 with no
// resource data, everything else 500.
func Problem(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidEmail),
		errors.Is(err, entity.ErrPasswordTooShort),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidFormat):
		Error(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, entity.ErrEmailTaken):
		Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrInvalidToken):
		Error(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, entity.ErrProjectAccess),
		errors.Is(err, entity.ErrRoomAccess):
		Forbidden(w)

	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrProjectNotFound),
		errors.Is(err, entity.ErrRoomNotFound):
		Error(w, http.StatusNotFound, err.Error())

	case errors.Is(err, entity.ErrReportFailed):
		Error(w, http.StatusInternalServerError, "failed to generate report")

	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
