package adaptor

import (
	"net/http"

	"healthhive/internal/dto/request"
	"healthhive/internal/dto/response"
	"healthhive/internal/usecase"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewUserHandler(service usecase.AccountService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Register handles POST /users/request
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	user, err := h.service.Register(r.Context(), subject(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register user")
		return
	}

	utils.ResponseCreated(w, "User registered successfully", user)
}

// UpdateLoginTime handles PUT /users/update-login-time/{email}
func (h *UserHandler) UpdateLoginTime(w http.ResponseWriter, r *http.Request) {
	var req request.LoginTimeRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	resp, err := h.service.RecordLogin(r.Context(), utils.URLParamEmail(r, "email"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update login time")
		return
	}

	utils.ResponseSuccess(w, "Last login time updated", resp)
}

// CheckExists handles GET /users/check/{email}
func (h *UserHandler) CheckExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.CheckExists(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "check user")
		return
	}

	utils.ResponseSuccess(w, "success", response.ExistsResponse{Exists: exists})
}

// GetUser handles GET /users/{email}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), subject(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// ListPendingSellers handles GET /applied/sellers
func (h *UserHandler) ListPendingSellers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListPendingSellers(r.Context(), subject(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch seller applications")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// ListSellers handles GET /sellers/all
func (h *UserHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListSellers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "fetch sellers")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// ResolveApplication handles PATCH /user/approval
func (h *UserHandler) ResolveApplication(w http.ResponseWriter, r *http.Request) {
	var req request.ApprovalRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	resp, err := h.service.ResolveApplication(r.Context(), subject(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user approval")
		return
	}

	utils.ResponseSuccess(w, "User "+string(resp.Status), resp)
}
