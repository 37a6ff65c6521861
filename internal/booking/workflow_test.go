package booking

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/internal/conflict"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"roombooker/internal/storage"
)

// fakeStore reproduces the store contract in memory, including the
// conflict-checked create, so workflow tests exercise the full creation and
// archival semantics.
type fakeStore struct {
	nextID  int64
	live    map[int64]models.Booking
	archive []models.ArchivedBooking
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, live: make(map[int64]models.Booking)}
}

func (s *fakeStore) CreateBooking(_ context.Context, b *models.Booking) (int64, error) {
	var peers []models.Booking
	for _, p := range s.live {
		if p.RoomID == b.RoomID && p.BookingDate == b.BookingDate && p.Status == models.StatusAccepted {
			peers = append(peers, p)
		}
	}

	overlaps, err := conflict.HasConflict(b.StartTime, b.EndTime, peers, 0)
	if err != nil {
		return 0, err
	}
	if overlaps {
		return 0, storage.ErrBookingConflict
	}

	id := s.nextID
	s.nextID++

	stored := *b
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.live[id] = stored

	return id, nil
}

func (s *fakeStore) Booking(_ context.Context, id int64) (*models.Booking, error) {
	b, ok := s.live[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return &b, nil
}

func (s *fakeStore) Bookings(_ context.Context) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(s.live))
	for _, b := range s.live {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) BookingsByStatus(_ context.Context, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.live {
		if b.Status == status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) BookingsByUser(_ context.Context, userID int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.live {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingDate > out[j].BookingDate })
	return out, nil
}

func (s *fakeStore) AcceptedBookingsFrom(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.live {
		if b.Status == models.StatusAccepted && b.BookingDate >= date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) SetBookingStatus(_ context.Context, id int64, status string) error {
	b, ok := s.live[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = status
	s.live[id] = b
	return nil
}

func (s *fakeStore) ArchiveBooking(_ context.Context, id int64) error {
	b, ok := s.live[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	s.archive = append(s.archive, models.ArchivedBooking{
		ID: b.ID, Room: b.Room, RoomID: b.RoomID,
		BookingDate: b.BookingDate, StartTime: b.StartTime, EndTime: b.EndTime,
		EventType: b.EventType, EventName: b.EventName, Description: b.Description,
		Status: b.Status, UserID: b.UserID, Name: b.Name, Role: b.Role,
		Location: b.Location, PermitPicture: b.PermitPicture,
	})
	delete(s.live, id)
	return nil
}

func (s *fakeStore) ArchivedBookings(_ context.Context) ([]models.ArchivedBooking, error) {
	out := make([]models.ArchivedBooking, len(s.archive))
	copy(out, s.archive)
	sort.Slice(out, func(i, j int) bool { return out[i].BookingDate > out[j].BookingDate })
	return out, nil
}

type fakeRooms struct {
	rooms map[string]models.Room
}

func (r *fakeRooms) RoomByName(_ context.Context, name string) (*models.Room, error) {
	room, ok := r.rooms[name]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	return &room, nil
}

type fakeFiles struct {
	saved []string
}

func (f *fakeFiles) SavePermit(filename string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	name := "stored-" + filename
	f.saved = append(f.saved, name)
	return name, nil
}

func newTestWorkflow() (*Workflow, *fakeStore, *fakeFiles) {
	store := newFakeStore()
	rooms := &fakeRooms{rooms: map[string]models.Room{
		"Room A": {ID: 1, Name: "Room A", Location: "Building 1, Floor 2"},
		"Room B": {ID: 2, Name: "Room B", Location: "Building 1, Floor 3"},
	}}
	files := &fakeFiles{}

	return New(slogdiscard.NewDiscardLogger(), store, rooms, files), store, files
}

func validRequest() CreateRequest {
	return CreateRequest{
		Room:        "Room A",
		BookingDate: "2025-03-10",
		StartTime:   "10:00",
		EndTime:     "12:00",
		EventType:   "Team Meeting",
		EventName:   "Sprint Planning",
		Status:      models.StatusPending,
	}
}

func ident() models.Identity {
	return models.Identity{ID: 42, Name: "Alice", Role: "staff"}
}

func TestCreateSnapshotsOwnerAndRoom(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "staff", created.Role)
	assert.Equal(t, int64(1), created.RoomID)
	assert.Equal(t, "Building 1, Floor 2", created.Location)
	assert.Equal(t, models.StatusPending, created.Status)
}

func TestCreateKeepsCallerSuppliedStatus(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	req := validRequest()
	req.Status = models.StatusAccepted

	created, err := wf.Create(context.Background(), ident(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, created.Status)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{
			name:    "end equals start",
			mutate:  func(r *CreateRequest) { r.EndTime = r.StartTime },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "end before start",
			mutate:  func(r *CreateRequest) { r.StartTime = "14:00"; r.EndTime = "12:00" },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "malformed start time",
			mutate:  func(r *CreateRequest) { r.StartTime = "ten" },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "malformed date",
			mutate:  func(r *CreateRequest) { r.BookingDate = "10-03-2025" },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "unknown status",
			mutate:  func(r *CreateRequest) { r.Status = "approved" },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "unknown room",
			mutate:  func(r *CreateRequest) { r.Room = "Room Z" },
			wantErr: ErrRoomNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			wf, store, _ := newTestWorkflow()

			req := validRequest()
			tc.mutate(&req)

			_, err := wf.Create(context.Background(), ident(), req)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, store.live, "nothing may be persisted on a failed create")
		})
	}
}

func TestCreateConflictAgainstAccepted(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, wf *Workflow) {
		req := validRequest()
		req.Status = models.StatusAccepted

		_, err := wf.Create(context.Background(), ident(), req)
		require.NoError(t, err)
	}

	testCases := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{
			name:    "overlapping range rejected",
			mutate:  func(r *CreateRequest) { r.StartTime = "11:00"; r.EndTime = "13:00" },
			wantErr: ErrConflict,
		},
		{
			name:    "boundary touch rejected",
			mutate:  func(r *CreateRequest) { r.StartTime = "12:00"; r.EndTime = "13:00" },
			wantErr: ErrConflict,
		},
		{
			name:   "same time different room allowed",
			mutate: func(r *CreateRequest) { r.Room = "Room B"; r.StartTime = "12:00"; r.EndTime = "13:00" },
		},
		{
			name:   "same room different date allowed",
			mutate: func(r *CreateRequest) { r.BookingDate = "2025-03-11" },
		},
		{
			name:   "disjoint range allowed",
			mutate: func(r *CreateRequest) { r.StartTime = "13:00"; r.EndTime = "14:00" },
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			wf, _, _ := newTestWorkflow()
			seed(t, wf)

			req := validRequest()
			tc.mutate(&req)

			_, err := wf.Create(context.Background(), ident(), req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreatePendingDoesNotBlock(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	// A pending booking is not a hard conflict source.
	_, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	_, err = wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)
}

func TestCreateSavesPermit(t *testing.T) {
	t.Parallel()

	wf, _, files := newTestWorkflow()

	req := validRequest()
	req.Permit = &PermitUpload{Filename: "permit.png", Data: strings.NewReader("png-bytes")}

	created, err := wf.Create(context.Background(), ident(), req)
	require.NoError(t, err)

	assert.Equal(t, "stored-permit.png", created.PermitPicture)
	assert.Equal(t, []string{"stored-permit.png"}, files.saved)
}

func TestUpdateStatusInPlace(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	require.NoError(t, wf.UpdateStatus(context.Background(), created.ID, models.StatusAccepted))

	assert.Equal(t, models.StatusAccepted, store.live[created.ID].Status)
	assert.Empty(t, store.archive)
}

func TestUpdateStatusCancelledArchives(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	require.NoError(t, wf.UpdateStatus(context.Background(), created.ID, models.StatusCancelled))

	assert.Empty(t, store.live, "cancelled booking must leave the live store")
	require.Len(t, store.archive, 1)

	got := store.archive[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Room, got.Room)
	assert.Equal(t, created.BookingDate, got.BookingDate)
	assert.Equal(t, created.StartTime, got.StartTime)
	assert.Equal(t, created.EndTime, got.EndTime)
	assert.Equal(t, created.EventName, got.EventName)
	assert.Equal(t, created.UserID, got.UserID)
}

func TestUpdateStatusErrors(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	assert.ErrorIs(t, wf.UpdateStatus(context.Background(), 99, models.StatusAccepted), ErrBookingNotFound)
	assert.ErrorIs(t, wf.UpdateStatus(context.Background(), 99, "approved"), ErrInvalidStatus)
}

func TestBulkUpdateSkipsUnknownIDs(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	err = wf.BulkUpdateStatus(context.Background(), map[int64]string{
		created.ID: models.StatusAccepted,
		999:        models.StatusRejected,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAccepted, store.live[created.ID].Status)
}

func TestBulkUpdateMixedTransitions(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	ids := make([]int64, 0, 3)
	for i, span := range [][2]string{{"08:00", "09:00"}, {"13:00", "14:00"}, {"15:00", "16:00"}} {
		req := validRequest()
		req.StartTime, req.EndTime = span[0], span[1]
		req.EventName = "Event " + string(rune('A'+i))

		created, err := wf.Create(context.Background(), ident(), req)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	err := wf.BulkUpdateStatus(context.Background(), map[int64]string{
		ids[0]: models.StatusAccepted,
		ids[1]: models.StatusRejected,
		ids[2]: models.StatusCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAccepted, store.live[ids[0]].Status)
	assert.Equal(t, models.StatusRejected, store.live[ids[1]].Status)

	_, stillLive := store.live[ids[2]]
	assert.False(t, stillLive, "bulk-cancelled booking must leave the live store")
	require.Len(t, store.archive, 1)
	assert.Equal(t, ids[2], store.archive[0].ID)
}

func TestBulkUpdateNoConflictRecheck(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	first, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	second, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	// Both pending bookings overlap; bulk accept applies anyway.
	err = wf.BulkUpdateStatus(context.Background(), map[int64]string{
		first.ID:  models.StatusAccepted,
		second.ID: models.StatusAccepted,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAccepted, store.live[first.ID].Status)
	assert.Equal(t, models.StatusAccepted, store.live[second.ID].Status)
}

func TestCancelByUser(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	stranger := models.Identity{ID: 7, Name: "Mallory", Role: "staff"}
	assert.ErrorIs(t, wf.CancelByUser(context.Background(), stranger, created.ID), ErrForbidden)
	assert.Len(t, store.live, 1, "forbidden cancel must not touch the booking")

	require.NoError(t, wf.CancelByUser(context.Background(), ident(), created.ID))
	assert.Empty(t, store.live)
	assert.Len(t, store.archive, 1)

	assert.ErrorIs(t, wf.CancelByUser(context.Background(), ident(), created.ID), ErrBookingNotFound)
}

func TestDeleteByAdmin(t *testing.T) {
	t.Parallel()

	wf, store, _ := newTestWorkflow()

	created, err := wf.Create(context.Background(), ident(), validRequest())
	require.NoError(t, err)

	staff := models.Identity{ID: 7, Name: "Bob", Role: "staff"}
	assert.ErrorIs(t, wf.DeleteByAdmin(context.Background(), staff, created.ID), ErrForbidden)

	admin := models.Identity{ID: 1, Name: "Root", Role: models.RoleAdmin}
	assert.ErrorIs(t, wf.DeleteByAdmin(context.Background(), admin, 999), ErrBookingNotFound)

	require.NoError(t, wf.DeleteByAdmin(context.Background(), admin, created.ID))
	assert.Empty(t, store.live)
	assert.Len(t, store.archive, 1)
}

func TestPendingWithConflicts(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	seed := []struct {
		room       string
		start, end string
	}{
		{room: "Room A", start: "10:00", end: "12:00"},
		{room: "Room A", start: "11:00", end: "13:00"}, // overlaps the first
		{room: "Room A", start: "14:00", end: "15:00"},
		{room: "Room B", start: "10:00", end: "12:00"}, // other room, no conflict
	}

	for _, sp := range seed {
		req := validRequest()
		req.Room = sp.room
		req.StartTime, req.EndTime = sp.start, sp.end

		_, err := wf.Create(context.Background(), ident(), req)
		require.NoError(t, err)
	}

	annotated, err := wf.PendingWithConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, annotated, 4)

	flags := make(map[string]bool)
	for _, a := range annotated {
		flags[a.Room+" "+a.StartTime] = a.IsConflict
	}

	assert.True(t, flags["Room A 10:00"])
	assert.True(t, flags["Room A 11:00"])
	assert.False(t, flags["Room A 14:00"])
	assert.False(t, flags["Room B 10:00"])
}

func TestAcceptedFromToday(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()
	wf.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	seed := []struct {
		date   string
		status string
	}{
		{date: "2025-03-09", status: models.StatusAccepted}, // past
		{date: "2025-03-10", status: models.StatusAccepted},
		{date: "2025-03-11", status: models.StatusAccepted},
		{date: "2025-03-12", status: models.StatusPending}, // not accepted
	}

	for _, sp := range seed {
		req := validRequest()
		req.BookingDate = sp.date
		req.Status = sp.status

		_, err := wf.Create(context.Background(), ident(), req)
		require.NoError(t, err)
	}

	got, err := wf.AcceptedFromToday(context.Background())
	require.NoError(t, err)

	dates := make([]string, 0, len(got))
	for _, b := range got {
		dates = append(dates, b.BookingDate)
	}
	assert.ElementsMatch(t, []string{"2025-03-10", "2025-03-11"}, dates)
}

func TestByUserNewestFirst(t *testing.T) {
	t.Parallel()

	wf, _, _ := newTestWorkflow()

	for _, date := range []string{"2025-03-10", "2025-03-12", "2025-03-11"} {
		req := validRequest()
		req.BookingDate = date

		_, err := wf.Create(context.Background(), ident(), req)
		require.NoError(t, err)
	}

	got, err := wf.ByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2025-03-12", got[0].BookingDate)
	assert.Equal(t, "2025-03-11", got[1].BookingDate)
	assert.Equal(t, "2025-03-10", got[2].BookingDate)
}
