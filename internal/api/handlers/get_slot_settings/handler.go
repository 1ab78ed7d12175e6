package get_slot_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig"
)

const (
	msgInvalidLocationID = "некорректный ID площадки"
	msgLocationNotFound  = "площадка не найдена"
)

type Handler struct {
	service SlotConfigService
	logger  Logger
}

func NewHandler(service SlotConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/slot-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationIDStr := vars["locationId"]

	locationID, err := strconv.ParseInt(locationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/slot-settings - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.service.GetLocationSettings(r.Context(), locationID)
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/slot-settings - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /locations/{id}/slot-settings - Failed: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/slot-settings - Retrieved: location_id=%d, count=%d",
		locationID, len(result.Settings))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
