package adaptor

import (
	"encoding/json"
	"net/http"

	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/usecase"
	"muthawwif-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MuthawwifHandler struct {
	service usecase.MuthawwifService
	log     *zap.Logger
}

func NewMuthawwifHandler(service usecase.MuthawwifService, log *zap.Logger) *MuthawwifHandler {
	return &MuthawwifHandler{
		service: service,
		log:     log.With(zap.String("handler", "muthawwif")),
	}
}

// List handles GET /api/muthawwif (public)
func (h *MuthawwifHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListMuthawwifRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Nationality: query.Get("nationality"),
		ServiceType: query.Get("service_type"),
		StartDate:   query.Get("start_date"),
		EndDate:     query.Get("end_date"),
	}

	muthawwif, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list muthawwif")
		return
	}

	utils.ResponseSuccess(w, "success", muthawwif)
}

// Detail handles GET /api/muthawwif/{id} (public)
func (h *MuthawwifHandler) Detail(w http.ResponseWriter, r *http.Request) {
	muthawwifID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid muthawwif ID", nil)
		return
	}

	detail, err := h.service.Detail(r.Context(), muthawwifID)
	if err != nil {
		handleServiceError(w, h.log, err, "get muthawwif detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// Nationalities handles GET /api/nationalities (public)
func (h *MuthawwifHandler) Nationalities(w http.ResponseWriter, r *http.Request) {
	nationalities, err := h.service.Nationalities(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list nationalities")
		return
	}

	utils.ResponseSuccess(w, "success", nationalities)
}

// CreateService handles POST /api/muthawwif/services (protected, muthawwif)
func (h *MuthawwifHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.CreateService(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/muthawwif/services/{id} (protected, muthawwif)
func (h *MuthawwifHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.UpdateService(r.Context(), userID, serviceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeleteService handles DELETE /api/muthawwif/services/{id} (protected, muthawwif)
func (h *MuthawwifHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	if err := h.service.DeleteService(r.Context(), userID, serviceID); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetMyServices handles GET /api/muthawwif/services (protected, muthawwif)
func (h *MuthawwifHandler) GetMyServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	services, err := h.service.GetMyServices(r.Context(), userID, query.Get("sort"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get my services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}
