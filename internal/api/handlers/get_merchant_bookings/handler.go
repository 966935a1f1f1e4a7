package get_merchant_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	"github.com/m04kA/LSB-BookingService/internal/api/middleware"
	"github.com/m04kA/LSB-BookingService/internal/service/bookings"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgInvalidQuery      = "некорректные параметры фильтрации"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMerchantNotFound  = "мерчант не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/bookings?startDate=&endDate=&status=&includeTerminal=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/bookings - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /merchants/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(merchantID, actorID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/bookings - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetMerchantBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrMerchantNotFound):
			h.logger.Warn("GET /merchants/{id}/bookings - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /merchants/{id}/bookings - Access denied: merchant_id=%d, actor_id=%d",
				merchantID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /merchants/{id}/bookings - Invalid filter: merchant_id=%d", merchantID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /merchants/{id}/bookings - Failed: merchant_id=%d, error=%v", merchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /merchants/{id}/bookings - Bookings retrieved: merchant_id=%d, count=%d",
		merchantID, len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainBookings(result))
}
