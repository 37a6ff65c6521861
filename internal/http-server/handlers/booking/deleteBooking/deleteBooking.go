package deleteBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roombooker/internal/booking"
	"roombooker/internal/http-server/middleware/identity"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

type DeleteResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingDeleter
type BookingDeleter interface {
	DeleteByAdmin(ctx context.Context, ident models.Identity, id int64) error
}

// New handles DELETE /event-bookings/{id}. Administrator only; the booking
// is archived, not hard-deleted.
func New(log *slog.Logger, deleter BookingDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.deleteBooking.New"

		log = log.With(slog.String("op", op))

		ident, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("request without caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid booking id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))
			return
		}

		log = log.With(slog.Int64("booking_id", id))

		if err = deleter.DeleteByAdmin(r.Context(), ident, id); err != nil {
			log.Error("failed to delete booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Booking not found."))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Unauthorized"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to delete booking"))
			}
			return
		}

		log.Info("booking deleted and moved to cancelled table")

		render.JSON(w, r, DeleteResponse{Response: response.OK()})
	}
}
