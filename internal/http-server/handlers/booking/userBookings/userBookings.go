package userBookings

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

type UserBookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserBookingsProvider
type UserBookingsProvider interface {
	ByUser(ctx context.Context, userID int64) ([]models.Booking, error)
}

// New handles GET /event-bookings/user/{id}: a user's bookings, newest
// booking date first.
func New(log *slog.Logger, provider UserBookingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.userBookings.New"

		log = log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid user id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id format"))
			return
		}

		bookings, err := provider.ByUser(r.Context(), userID)
		if err != nil {
			log.Error("failed to get user bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get user bookings"))
			return
		}

		log.Info("user bookings retrieved", slog.Int64("user_id", userID), slog.Int("count", len(bookings)))

		render.JSON(w, r, UserBookingsResponse{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
