package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"healthhive/internal/apperr"
	"healthhive/internal/usecase"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	User     *UserHandler
	Medicine *MedicineHandler
	Order    *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:     NewUserHandler(service.Account, log),
		Medicine: NewMedicineHandler(service.Listing, log),
		Order:    NewOrderHandler(service.Order, log),
	}
}

// decodeBody reads a JSON body into dst. An empty body is accepted when
// optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	utils.ResponseBadRequest(w, "Invalid request body", nil)
	return false
}

// subject returns the verified caller set by the auth middleware.
func subject(r *http.Request) string {
	email, _ := utils.GetSubjectFromContext(r.Context())
	return email
}

// handleServiceError maps the error taxonomy onto HTTP statuses. Internal
// details are logged, never returned.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *apperr.ValidationError

	switch {
	case errors.As(err, &verr):
		utils.ResponseBadRequest(w, "Validation failed: "+verr.Error(), verr.Fields)
	case errors.Is(err, apperr.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, apperr.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Unauthorized access")
	case errors.Is(err, apperr.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Request failed", zap.String("operation", operation), zap.Error(err))
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}
