package getBookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

// BookingView is the calendar-facing shape of a booking: event name as
// title, a derived css class and the denormalized owner/room snapshot.
type BookingView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Room          string `json:"room"`
	BookingDate   string `json:"booking_date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Status        string `json:"status"`
	CSSClass      string `json:"cssClass"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	UserID        int64  `json:"user_id"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location"`
	PermitPicture string `json:"permit_picture,omitempty"`
}

type BookingsResponse struct {
	response.Response
	Bookings []BookingView `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsProvider
type BookingsProvider interface {
	All(ctx context.Context) ([]models.Booking, error)
}

// New handles GET /event-bookings.
func New(log *slog.Logger, provider BookingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBookings.New"

		log = log.With(slog.String("op", op))

		bookings, err := provider.All(r.Context())
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		log.Info("bookings retrieved", slog.Int("count", len(bookings)))

		views := make([]BookingView, 0, len(bookings))
		for _, b := range bookings {
			views = append(views, BookingView{
				ID:            b.ID,
				Title:         b.EventName,
				Room:          b.Room,
				BookingDate:   b.BookingDate,
				Start:         b.StartTime,
				End:           b.EndTime,
				Status:        b.Status,
				CSSClass:      b.CSSClass(),
				Name:          b.Name,
				Role:          b.Role,
				UserID:        b.UserID,
				Description:   b.Description,
				Location:      b.Location,
				PermitPicture: b.PermitPicture,
			})
		}

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: views,
		})
	}
}
