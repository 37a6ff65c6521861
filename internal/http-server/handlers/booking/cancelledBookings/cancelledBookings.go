package cancelledBookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

type CancelledResponse struct {
	response.Response
	Bookings []models.ArchivedBooking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ArchiveProvider
type ArchiveProvider interface {
	Cancelled(ctx context.Context) ([]models.ArchivedBooking, error)
}

// New handles GET /event-bookings/cancelled: the archive, newest booking
// date first.
func New(log *slog.Logger, provider ArchiveProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelledBookings.New"

		log = log.With(slog.String("op", op))

		bookings, err := provider.Cancelled(r.Context())
		if err != nil {
			log.Error("failed to get cancelled bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get cancelled bookings"))
			return
		}

		log.Info("cancelled bookings retrieved", slog.Int("count", len(bookings)))

		render.JSON(w, r, CancelledResponse{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
