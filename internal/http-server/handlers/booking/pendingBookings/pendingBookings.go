package pendingBookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roombooker/internal/booking"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
)

type PendingResponse struct {
	response.Response
	Bookings []booking.AnnotatedBooking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PendingProvider
type PendingProvider interface {
	PendingWithConflicts(ctx context.Context) ([]booking.AnnotatedBooking, error)
}

// New handles GET /dashboard/pending: every pending booking with the
// informational overlap flag for administrator review.
func New(log *slog.Logger, provider PendingProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.pendingBookings.New"

		log = log.With(slog.String("op", op))

		bookings, err := provider.PendingWithConflicts(r.Context())
		if err != nil {
			log.Error("failed to get pending bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get pending bookings"))
			return
		}

		log.Info("pending bookings retrieved", slog.Int("count", len(bookings)))

		render.JSON(w, r, PendingResponse{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
