package adaptor

import (
	"net/http"

	"healthhive/internal/dto/request"
	"healthhive/internal/usecase"
	"healthhive/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MedicineHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewMedicineHandler(service usecase.ListingService, log *zap.Logger) *MedicineHandler {
	return &MedicineHandler{
		service: service,
		log:     log.With(zap.String("handler", "medicine")),
	}
}

// Create handles POST /medicine/post
func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMedicineRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	medicine, err := h.service.Create(r.Context(), subject(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create medicine")
		return
	}

	utils.ResponseCreated(w, "Medicine created successfully", medicine)
}

// List handles GET /medicines, optionally filtered by ?category=
func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.service.ListAll(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch medicines")
		return
	}

	utils.ResponseSuccess(w, "success", medicines)
}

// ListBySeller handles GET /medicine/seller/{email}
func (h *MedicineHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.service.ListBySeller(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch seller medicines")
		return
	}

	utils.ResponseSuccess(w, "success", medicines)
}

// ListDiscounted handles GET /medicines/discount
func (h *MedicineHandler) ListDiscounted(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.service.ListDiscounted(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "fetch discounted medicines")
		return
	}

	utils.ResponseSuccess(w, "success", medicines)
}

// Update handles PUT /medicine/update/{id}
func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMedicineRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	medicine, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), subject(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update medicine")
		return
	}

	utils.ResponseSuccess(w, "Medicine updated successfully", medicine)
}

// Delete handles DELETE /medicine/{id}
func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteMedicineRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), subject(r), &req); err != nil {
		handleServiceError(w, h.log, err, "delete medicine")
		return
	}

	utils.ResponseSuccess(w, "Medicine deleted successfully", nil)
}

// AdminUpdate handles PATCH /admin/medicine/update/{id}
func (h *MedicineHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMedicineRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	medicine, err := h.service.AdminUpdate(r.Context(), chi.URLParam(r, "id"), subject(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update medicine")
		return
	}

	utils.ResponseSuccess(w, "Medicine updated successfully", medicine)
}

// AdminDelete handles DELETE /admin/medicine/delete/{id}
func (h *MedicineHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AdminDelete(r.Context(), chi.URLParam(r, "id"), subject(r)); err != nil {
		handleServiceError(w, h.log, err, "delete medicine")
		return
	}

	utils.ResponseSuccess(w, "Medicine deleted successfully", nil)
}
