package acceptedToday

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

type AcceptedResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AcceptedProvider
type AcceptedProvider interface {
	AcceptedFromToday(ctx context.Context) ([]models.Booking, error)
}

// New handles GET /event-bookings/accepted-today: accepted bookings dated
// today or later.
func New(log *slog.Logger, provider AcceptedProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.acceptedToday.New"

		log = log.With(slog.String("op", op))

		bookings, err := provider.AcceptedFromToday(r.Context())
		if err != nil {
			log.Error("failed to get accepted bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get accepted bookings"))
			return
		}

		log.Info("accepted bookings retrieved", slog.Int("count", len(bookings)))

		render.JSON(w, r, AcceptedResponse{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
