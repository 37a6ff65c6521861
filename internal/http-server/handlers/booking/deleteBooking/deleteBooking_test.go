package deleteBooking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roombooker/internal/booking"
	"roombooker/internal/http-server/handlers/booking/deleteBooking/mocks"
	"roombooker/internal/http-server/middleware/identity"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
)

func TestDeleteBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	admin := models.Identity{ID: 1, Name: "Root", Role: models.RoleAdmin}
	staff := models.Identity{ID: 7, Name: "Bob", Role: "staff"}

	testCases := []struct {
		name           string
		bookingID      string
		ident          *models.Identity
		mockSetup      func(m *mocks.BookingDeleter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Admin delete",
			bookingID: "5",
			ident:     &admin,
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("DeleteByAdmin", mock.Anything, admin, int64(5)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:      "Forbidden for non-admin",
			bookingID: "5",
			ident:     &staff,
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("DeleteByAdmin", mock.Anything, staff, int64(5)).Return(booking.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"Unauthorized"}`,
		},
		{
			name:      "Not found",
			bookingID: "99",
			ident:     &admin,
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("DeleteByAdmin", mock.Anything, admin, int64(99)).Return(booking.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Booking not found."}`,
		},
		{
			name:           "Anonymous",
			bookingID:      "5",
			ident:          nil,
			mockSetup:      func(m *mocks.BookingDeleter) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authentication required"}`,
		},
		{
			name:           "Invalid id",
			bookingID:      "abc",
			ident:          &admin,
			mockSetup:      func(m *mocks.BookingDeleter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:      "Internal error",
			bookingID: "5",
			ident:     &admin,
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("DeleteByAdmin", mock.Anything, admin, int64(5)).Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockDeleter := mocks.NewBookingDeleter(t)
			tc.mockSetup(mockDeleter)

			router := chi.NewRouter()
			router.Delete("/event-bookings/{id}", New(logger, mockDeleter))

			req, err := http.NewRequest(http.MethodDelete, "/event-bookings/"+tc.bookingID, nil)
			require.NoError(t, err)

			if tc.ident != nil {
				req = req.WithContext(identity.WithIdentity(req.Context(), *tc.ident))
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
