package update_slot_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig"
)

const (
	msgInvalidLocationID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgLocationNotFound   = "площадка не найдена"
	msgInvalidSlotWidth   = "некорректная ширина слота"
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

// Handle PUT /api/v1/locations/{locationId}/slot-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationIDStr := vars["locationId"]

	locationID, err := strconv.ParseInt(locationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /locations/{id}/slot-settings - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req UpdateSlotSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id}/slot-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), req.ToServiceRequest(locationID))
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrLocationNotFound):
			h.logger.Warn("PUT /locations/{id}/slot-settings - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, slotconfig.ErrInvalidSlotWidth), errors.Is(err, slotconfig.ErrInvalidInput):
			h.logger.Warn("PUT /locations/{id}/slot-settings - Invalid slot width: location_id=%d, width=%d",
				locationID, req.SlotWidthMinutes)
			handlers.RespondBadRequest(w, msgInvalidSlotWidth)

		default:
			h.logger.Error("PUT /locations/{id}/slot-settings - Failed to update: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /locations/{id}/slot-settings - Updated: location_id=%d, settings_id=%d, width=%d",
		locationID, result.ID, result.SlotWidthMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
