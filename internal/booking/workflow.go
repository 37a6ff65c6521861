// Package booking orchestrates the booking lifecycle: creation with
// conflict checking, administrator status transitions, user self-cancel
// and the archival of cancelled bookings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"roombooker/internal/conflict"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
	"roombooker/internal/storage"
)

var (
	ErrConflict         = errors.New("the room is already booked for the selected date and time")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidStatus    = errors.New("unknown booking status")
)

// BookingStore persists live bookings and owns the atomic operations the
// workflow relies on: the conflict-checked create and the archive migrate.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) (int64, error)
	Booking(ctx context.Context, id int64) (*models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
	BookingsByStatus(ctx context.Context, status string) ([]models.Booking, error)
	BookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	AcceptedBookingsFrom(ctx context.Context, date string) ([]models.Booking, error)
	SetBookingStatus(ctx context.Context, id int64, status string) error
	ArchiveBooking(ctx context.Context, id int64) error
	ArchivedBookings(ctx context.Context) ([]models.ArchivedBooking, error)
}

// RoomDirectory resolves a room name to its id and location.
type RoomDirectory interface {
	RoomByName(ctx context.Context, name string) (*models.Room, error)
}

// FileStore keeps uploaded permit pictures.
type FileStore interface {
	SavePermit(filename string, r io.Reader) (string, error)
}

type Workflow struct {
	log   *slog.Logger
	store BookingStore
	rooms RoomDirectory
	files FileStore
	now   func() time.Time
}

func New(log *slog.Logger, store BookingStore, rooms RoomDirectory, files FileStore) *Workflow {
	return &Workflow{
		log:   log,
		store: store,
		rooms: rooms,
		files: files,
		now:   time.Now,
	}
}

// PermitUpload is an optional uploaded permit picture.
type PermitUpload struct {
	Filename string
	Data     io.Reader
}

// CreateRequest carries the validated request fields for a new booking.
// Status is caller-supplied rather than forced to pending; it must still be
// a known status value.
type CreateRequest struct {
	Room        string
	BookingDate string // "2006-01-02"
	StartTime   string // "15:04"
	EndTime     string // "15:04"
	EventType   string
	EventName   string
	Description string
	Status      string
	Permit      *PermitUpload
}

// Create validates the request, resolves the room, stores the optional
// permit upload and persists the booking. The overlap check against
// accepted bookings for the same room and date happens inside the store's
// create transaction, so a concurrent create cannot slip past it. Owner
// name, role and room location are snapshotted onto the record.
func (w *Workflow) Create(ctx context.Context, ident models.Identity, req CreateRequest) (*models.Booking, error) {
	const op = "booking.Create"

	if !models.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return nil, fmt.Errorf("%w: invalid booking date", ErrInvalidTimeRange)
	}

	start, err := conflict.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	end, err := conflict.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if end <= start {
		return nil, ErrInvalidTimeRange
	}

	room, err := w.rooms.RoomByName(ctx, req.Room)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	permitPath := ""
	if req.Permit != nil {
		permitPath, err = w.files.SavePermit(req.Permit.Filename, req.Permit.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		w.log.Info("no permit file uploaded", slog.String("op", op))
	}

	b := &models.Booking{
		Room:          room.Name,
		RoomID:        room.ID,
		BookingDate:   req.BookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		EventType:     req.EventType,
		EventName:     req.EventName,
		Description:   req.Description,
		Status:        req.Status,
		UserID:        ident.ID,
		Name:          ident.Name,
		Role:          ident.Role,
		Location:      room.Location,
		PermitPicture: permitPath,
	}

	id, err := w.store.CreateBooking(ctx, b)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBookingConflict):
			return nil, ErrConflict
		case errors.Is(err, storage.ErrRoomNotFound):
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := w.store.Booking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("booking created",
		slog.Int64("id", created.ID),
		slog.String("room", created.Room),
		slog.String("date", created.BookingDate),
	)

	return created, nil
}

// UpdateStatus applies a single administrator transition. A cancelled
// target archives the booking and removes it from the live store; any
// other known status is written in place. No conflict re-check is done on
// transitions.
func (w *Workflow) UpdateStatus(ctx context.Context, id int64, status string) error {
	const op = "booking.UpdateStatus"

	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	var err error
	if status == models.StatusCancelled {
		err = w.store.ArchiveBooking(ctx, id)
	} else {
		err = w.store.SetBookingStatus(ctx, id, status)
	}
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("booking status updated", slog.Int64("id", id), slog.String("status", status))

	return nil
}

// BulkUpdateStatus applies each id/status pair independently and
// unconditionally, with no conflict re-check: an administrator can
// bulk-accept two overlapping pending bookings. Unknown ids are skipped
// silently. Cancelled entries go through the archive path like single
// cancels; a cancelled booking must never remain in the live store.
func (w *Workflow) BulkUpdateStatus(ctx context.Context, statuses map[int64]string) error {
	const op = "booking.BulkUpdateStatus"

	ids := make([]int64, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		status := statuses[id]

		var err error
		if status == models.StatusCancelled {
			err = w.store.ArchiveBooking(ctx, id)
		} else {
			err = w.store.SetBookingStatus(ctx, id, status)
		}
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				w.log.Info("bulk update skipped missing booking", slog.Int64("id", id))
				continue
			}
			return fmt.Errorf("%s: booking %d: %w", op, id, err)
		}
	}

	return nil
}

// CancelByUser archives a booking on behalf of its owner. Any caller other
// than the owning user is rejected.
func (w *Workflow) CancelByUser(ctx context.Context, ident models.Identity, id int64) error {
	const op = "booking.CancelByUser"

	b, err := w.store.Booking(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if b.UserID != ident.ID {
		return ErrForbidden
	}

	if err = w.store.ArchiveBooking(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("booking cancelled by user", slog.Int64("id", id), slog.Int64("user_id", ident.ID))

	return nil
}

// DeleteByAdmin archives any booking; only administrators may call it.
func (w *Workflow) DeleteByAdmin(ctx context.Context, ident models.Identity, id int64) error {
	const op = "booking.DeleteByAdmin"

	if _, err := w.store.Booking(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if !ident.IsAdmin() {
		return ErrForbidden
	}

	if err := w.store.ArchiveBooking(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("booking deleted by admin", slog.Int64("id", id), slog.Int64("admin_id", ident.ID))

	return nil
}

// AnnotatedBooking is a pending booking with the informational dashboard
// conflict flag.
type AnnotatedBooking struct {
	models.Booking
	IsConflict bool `json:"is_conflict"`
}

// PendingWithConflicts returns every pending booking flagged with whether
// its interval overlaps another pending booking for the same room and date.
// The flag is display-only; it never blocks a transition.
func (w *Workflow) PendingWithConflicts(ctx context.Context) ([]AnnotatedBooking, error) {
	const op = "booking.PendingWithConflicts"

	pending, err := w.store.BookingsByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	annotated := make([]AnnotatedBooking, 0, len(pending))
	for _, b := range pending {
		var peers []models.Booking
		for _, p := range pending {
			if p.Room == b.Room && p.BookingDate == b.BookingDate {
				peers = append(peers, p)
			}
		}

		overlaps, err := conflict.HasConflict(b.StartTime, b.EndTime, peers, b.ID)
		if err != nil {
			w.log.Error("failed to check pending conflict", slog.Int64("id", b.ID), sl.Err(err))
		}

		annotated = append(annotated, AnnotatedBooking{Booking: b, IsConflict: overlaps})
	}

	return annotated, nil
}

// All returns every live booking.
func (w *Workflow) All(ctx context.Context) ([]models.Booking, error) {
	return w.store.Bookings(ctx)
}

// AcceptedFromToday returns accepted bookings dated today or later.
func (w *Workflow) AcceptedFromToday(ctx context.Context) ([]models.Booking, error) {
	return w.store.AcceptedBookingsFrom(ctx, w.now().Format("2006-01-02"))
}

// ByUser returns a user's bookings, newest booking date first.
func (w *Workflow) ByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return w.store.BookingsByUser(ctx, userID)
}

// Cancelled returns the archive, newest booking date first.
func (w *Workflow) Cancelled(ctx context.Context) ([]models.ArchivedBooking, error) {
	return w.store.ArchivedBookings(ctx)
}
