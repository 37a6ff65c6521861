package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"roombooker/internal/booking"
	"roombooker/internal/http-server/middleware/identity"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
)

// Conflict and not-found messages match the fixed wire messages clients
// already depend on.
const (
	msgConflict     = "The room is already booked for the selected date and time."
	msgRoomNotFound = "Room not found."
)

const maxUploadBytes = 2 << 20

type BookingRequest struct {
	Room        string `json:"room" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	EventType   string `json:"event_type" validate:"required"`
	EventName   string `json:"event_name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=pending accepted rejected cancelled"`
}

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	Create(ctx context.Context, ident models.Identity, req booking.CreateRequest) (*models.Booking, error)
}

// New handles POST /event-bookings. The body is either JSON or, when a
// permit picture is attached, multipart/form-data with the same field names.
func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log = log.With(slog.String("op", op))

		ident, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("request without caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		req, permit, err := decodeRequest(r)
		if err != nil {
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

		created, err := creator.Create(r.Context(), ident, booking.CreateRequest{
			Room:        req.Room,
			BookingDate: req.BookingDate,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			EventType:   req.EventType,
			EventName:   req.EventName,
			Description: req.Description,
			Status:      req.Status,
			Permit:      permit,
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrConflict):
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error(msgConflict))
			case errors.Is(err, booking.ErrRoomNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(msgRoomNotFound))
			case errors.Is(err, booking.ErrInvalidTimeRange):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("end time must be after start time"))
			case errors.Is(err, booking.ErrInvalidStatus):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("unknown booking status"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create booking"))
			}
			return
		}

		log.Info("booking created", slog.Int64("id", created.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, BookingResponse{
			Response: response.OK(),
			Booking:  created,
		})
	}
}

func decodeRequest(r *http.Request) (BookingRequest, *booking.PermitUpload, error) {
	var req BookingRequest

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, nil, err
	}

	req = BookingRequest{
		Room:        r.FormValue("room"),
		BookingDate: r.FormValue("booking_date"),
		StartTime:   r.FormValue("start_time"),
		EndTime:     r.FormValue("end_time"),
		EventType:   r.FormValue("event_type"),
		EventName:   r.FormValue("event_name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}

	file, header, err := r.FormFile("permit_picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// Treated as "no attachment"; the workflow logs it.
			return req, nil, nil
		}
		return req, nil, err
	}

	return req, &booking.PermitUpload{Filename: header.Filename, Data: file}, nil
}
