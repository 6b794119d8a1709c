package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/usecase"
	"muthawwif-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// Add handles POST /api/availability (protected, muthawwif)
func (h *AvailabilityHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.AddRange(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add availability")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// Remove handles DELETE /api/availability (protected, muthawwif)
func (h *AvailabilityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RemoveAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Remove(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "remove availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetMine handles GET /api/availability (protected, muthawwif)
func (h *AvailabilityHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	h.list(w, r, userID)
}

// GetByMuthawwif handles GET /api/muthawwif/{id}/availability (public)
func (h *AvailabilityHandler) GetByMuthawwif(w http.ResponseWriter, r *http.Request) {
	muthawwifID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid muthawwif ID", nil)
		return
	}

	h.list(w, r, muthawwifID)
}

func (h *AvailabilityHandler) list(w http.ResponseWriter, r *http.Request, muthawwifID uuid.UUID) {
	var from, to *time.Time
	query := r.URL.Query()

	if raw := query.Get("start_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid start_date", nil)
			return
		}
		from = &date
	}
	if raw := query.Get("end_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid end_date", nil)
			return
		}
		to = &date
	}

	calendar, err := h.service.List(r.Context(), muthawwifID, from, to)
	if err != nil {
		handleServiceError(w, h.log, err, "list availability")
		return
	}

	utils.ResponseSuccess(w, "success", calendar)
}
