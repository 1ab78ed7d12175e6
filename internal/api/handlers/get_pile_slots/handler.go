package get_pile_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	getPileSlots "github.com/m04kA/SMC-ChargingService/internal/usecase/get_pile_slots"
)

const (
	msgInvalidPileID = "некорректный ID зарядного столба"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPileNotFound  = "зарядный столб не найден"
)

type Handler struct {
	useCase GetPileSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetPileSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/piles/{pileId}/slots
// Query params: date (required, YYYY-MM-DD), viewerId (optional).
// Флаг mine в ответе выставляется по viewerId, либо по X-User-ID,
// если заголовок передан.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pileIDStr := vars["pileId"]
	pileID, err := strconv.ParseInt(pileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /piles/{id}/slots - Invalid pile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPileID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /piles/{id}/slots - Missing date: pile_id=%d", pileID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	viewerUserID := h.resolveViewer(r)

	useCaseReq, err := ToUseCaseRequest(pileID, dateStr, viewerUserID)
	if err != nil {
		h.logger.Warn("GET /piles/{id}/slots - Invalid date: pile_id=%d, date=%s", pileID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getPileSlots.ErrPileNotFound):
			h.logger.Warn("GET /piles/{id}/slots - Pile not found: pile_id=%d", pileID)
			handlers.RespondNotFound(w, msgPileNotFound)

		case errors.Is(err, getPileSlots.ErrInvalidInput):
			h.logger.Warn("GET /piles/{id}/slots - Invalid input: pile_id=%d, date=%s", pileID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /piles/{id}/slots - Failed to get slots: pile_id=%d, error=%v", pileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /piles/{id}/slots - Slots retrieved: pile_id=%d, date=%s, slots=%d",
		pileID, dateStr, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// resolveViewer определяет, чьи бронирования помечать как mine:
// явный query параметр viewerId имеет приоритет над X-User-ID.
func (h *Handler) resolveViewer(r *http.Request) *int64 {
	if raw := r.URL.Query().Get("viewerId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			return &id
		}
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return &userID
	}

	return nil
}
