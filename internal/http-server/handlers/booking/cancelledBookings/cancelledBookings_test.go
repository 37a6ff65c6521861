package cancelledBookings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"roombooker/internal/http-server/handlers/booking/cancelledBookings/mocks"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
)

func TestCancelledBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockProvider := mocks.NewArchiveProvider(t)

	mockProvider.On("Cancelled", mock.Anything).Return([]models.ArchivedBooking{
		{ID: 9, Room: "Room A", BookingDate: "2025-03-10", Status: models.StatusAccepted},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/event-bookings/cancelled", nil)
	rr := httptest.NewRecorder()

	New(logger, mockProvider).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":9`)
}

func TestCancelledBookingsHandlerError(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockProvider := mocks.NewArchiveProvider(t)
	mockProvider.On("Cancelled", mock.Anything).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/event-bookings/cancelled", nil)
	rr := httptest.NewRecorder()

	New(logger, mockProvider).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
