package bulkUpdate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
)

type BulkRequest struct {
	// Statuses maps booking id to target status.
	Statuses map[int64]string `json:"statuses"`
}

type BulkResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BulkStatusUpdater
type BulkStatusUpdater interface {
	BulkUpdateStatus(ctx context.Context, statuses map[int64]string) error
}

// New handles POST /event-bookings/bulk-update. Each id/status pair is
// applied independently; ids that no longer exist are skipped without error.
func New(log *slog.Logger, updater BulkStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.bulkUpdate.New"

		log = log.With(slog.String("op", op))

		var req BulkRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Int("count", len(req.Statuses)))

		if err := updater.BulkUpdateStatus(r.Context(), req.Statuses); err != nil {
			log.Error("failed to bulk update statuses", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update statuses"))
			return
		}

		log.Info("statuses updated")

		render.JSON(w, r, BulkResponse{Response: response.OK()})
	}
}
