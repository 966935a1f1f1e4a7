package get_merchant_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	"github.com/m04kA/LSB-BookingService/internal/service/schedule"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgNotFound          = "расписание мерчанта не настроено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/schedule - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	cfg, err := h.service.Get(r.Context(), merchantID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("GET /merchants/{id}/schedule - Schedule not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /merchants/{id}/schedule - Failed: merchant_id=%d, error=%v", merchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /merchants/{id}/schedule - Schedule retrieved: merchant_id=%d", merchantID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSchedule(cfg))
}
