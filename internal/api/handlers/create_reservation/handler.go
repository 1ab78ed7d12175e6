package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPileNotFound       = "зарядный столб не найден"
	msgPileUnavailable    = "зарядный столб выведен из эксплуатации"
	msgVehicleNotFound    = "автомобиль не найден"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidInterval    = "некорректный временной интервал"
	msgIntervalConflict   = "интервал пересекается с существующим бронированием"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createReservation.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /reservations - Interval conflict: user_id=%d, pile_id=%d, blocked_by=%d",
				userID, req.PileID, conflictErr.ReservationID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Message:                  msgIntervalConflict,
				ConflictingReservationID: conflictErr.ReservationID,
			})

		case errors.Is(err, createReservation.ErrPileNotFound):
			h.logger.Warn("POST /reservations - Pile not found: user_id=%d, pile_id=%d", userID, req.PileID)
			handlers.RespondNotFound(w, msgPileNotFound)

		case errors.Is(err, createReservation.ErrPileUnavailable):
			h.logger.Warn("POST /reservations - Pile unavailable: user_id=%d, pile_id=%d", userID, req.PileID)
			handlers.RespondError(w, http.StatusConflict, msgPileUnavailable)

		case errors.Is(err, createReservation.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations - Vehicle not found: user_id=%d, vehicle_id=%d", userID, req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: user_id=%d, pile_id=%d, date=%s",
				userID, req.PileID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInterval), errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, pile_id=%d, interval=%s-%s",
				userID, req.PileID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, pile_id=%d, error=%v",
				userID, req.PileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, pile_id=%d",
		result.ID, userID, req.PileID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
