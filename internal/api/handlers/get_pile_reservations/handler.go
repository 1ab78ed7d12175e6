package get_pile_reservations

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

const (
	msgInvalidPileID = "некорректный ID зарядного столба"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/piles/{pileId}/reservations
// Query params: date (optional, YYYY-MM-DD), includeTerminal (optional, bool).
// Журнал для операторов: без фильтра по владельцу.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pileIDStr := vars["pileId"]

	pileID, err := strconv.ParseInt(pileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /piles/{id}/reservations - Invalid pile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPileID)
		return
	}

	req := &models.GetPileReservationsRequest{PileID: pileID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /piles/{id}/reservations - Invalid date: pile_id=%d, date=%s", pileID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := r.URL.Query().Get("includeTerminal"); raw != "" {
		req.IncludeTerminal, _ = strconv.ParseBool(raw)
	}

	result, err := h.service.GetPileReservations(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /piles/{id}/reservations - Failed: pile_id=%d, error=%v", pileID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /piles/{id}/reservations - Retrieved: pile_id=%d, count=%d",
		pileID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(pileID, result))
}
