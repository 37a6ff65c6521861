package updateStatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"roombooker/internal/booking"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected cancelled"`
}

type StatusResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusUpdater
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// New handles POST /event-bookings/{id}/status. A cancelled target status
// archives the booking instead of mutating it.
func New(log *slog.Logger, updater StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.updateStatus.New"

		log = log.With(slog.String("op", op))

		idStr := chi.URLParam(r, "id")
		if idStr == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Error("invalid booking id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))
			return
		}

		log = log.With(slog.Int64("booking_id", id))

		var req StatusRequest

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if err = updater.UpdateStatus(r.Context(), id, req.Status); err != nil {
			log.Error("failed to update booking status", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Booking not found."))
			case errors.Is(err, booking.ErrInvalidStatus):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("unknown booking status"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update booking status"))
			}
			return
		}

		log.Info("booking status updated", slog.String("status", req.Status))

		render.JSON(w, r, StatusResponse{Response: response.OK()})
	}
}
