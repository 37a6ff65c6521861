package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"roombooker/internal/config"
	"roombooker/internal/conflict"
	"roombooker/internal/models"
	"roombooker/internal/storage"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) RoomByName(ctx context.Context, name string) (*models.Room, error) {
	query := `
		SELECT id, name, location
		FROM rooms
		WHERE name = $1`

	var room models.Room
	err := s.DB.QueryRowContext(ctx, query, name).Scan(&room.ID, &room.Name, &room.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}

const bookingColumns = `
	id, room, room_id,
	to_char(booking_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'),
	event_type, event_name, COALESCE(description, ''),
	status, user_id, name, role,
	COALESCE(location, ''), COALESCE(permit_picture, ''),
	created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Room, &b.RoomID,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&b.EventType, &b.EventName, &b.Description,
		&b.Status, &b.UserID, &b.Name, &b.Role,
		&b.Location, &b.PermitPicture,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking inserts the booking unless it overlaps an accepted booking
// for the same room and date. The conflict check and the insert run in one
// transaction serialized on the room row, so two concurrent requests for the
// same room cannot both pass the check.
func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomID int64
	lockQuery := `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, lockQuery, b.RoomID).Scan(&roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrRoomNotFound
		}
		return 0, fmt.Errorf("failed to lock room: %w", err)
	}

	peersQuery := `
		SELECT id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM event_bookings
		WHERE room_id = $1 AND booking_date = $2 AND status = $3`

	rows, err := tx.QueryContext(ctx, peersQuery, b.RoomID, b.BookingDate, models.StatusAccepted)
	if err != nil {
		return 0, fmt.Errorf("failed to get accepted bookings: %w", err)
	}

	var peers []models.Booking
	for rows.Next() {
		var peer models.Booking
		if err = rows.Scan(&peer.ID, &peer.StartTime, &peer.EndTime); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		peers = append(peers, peer)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating bookings: %w", err)
	}
	rows.Close()

	overlaps, err := conflict.HasConflict(b.StartTime, b.EndTime, peers, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if overlaps {
		return 0, storage.ErrBookingConflict
	}

	insertQuery := `
		INSERT INTO event_bookings
			(room, room_id, booking_date, start_time, end_time,
			 event_type, event_name, description, status,
			 user_id, name, role, location, permit_picture,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, insertQuery,
		b.Room, b.RoomID, b.BookingDate, b.StartTime, b.EndTime,
		b.EventType, b.EventName, nullable(b.Description), b.Status,
		b.UserID, b.Name, b.Role, b.Location, nullable(b.PermitPicture),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (s *Storage) Booking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings WHERE id = $1`

	b, err := scanBooking(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

func (s *Storage) Bookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings ORDER BY booking_date, start_time`

	return s.queryBookings(ctx, query)
}

func (s *Storage) BookingsByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings WHERE status = $1 ORDER BY booking_date, start_time`

	return s.queryBookings(ctx, query, status)
}

func (s *Storage) BookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings WHERE user_id = $1 ORDER BY booking_date DESC`

	return s.queryBookings(ctx, query, userID)
}

// AcceptedBookingsFrom returns accepted bookings with a booking date on or
// after the given "YYYY-MM-DD" date.
func (s *Storage) AcceptedBookingsFrom(ctx context.Context, date string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM event_bookings
		WHERE status = $1 AND booking_date >= $2
		ORDER BY booking_date, start_time`

	return s.queryBookings(ctx, query, models.StatusAccepted, date)
}

func (s *Storage) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// SetBookingStatus updates the status of a live booking in place. When the
// target status is accepted it takes the same room lock as CreateBooking so
// accepts and creates for one room stay serialized.
func (s *Storage) SetBookingStatus(ctx context.Context, id int64, status string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomID int64
	err = tx.QueryRowContext(ctx, `SELECT room_id FROM event_bookings WHERE id = $1`, id).Scan(&roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if status == models.StatusAccepted {
		var locked int64
		err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&locked)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to lock room: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE event_bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ArchiveBooking moves a live booking into cancelled_event_bookings. Copy
// and delete share one transaction: a crash can never duplicate the record
// in both tables or lose it from both.
func (s *Storage) ArchiveBooking(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	copyQuery := `
		INSERT INTO cancelled_event_bookings
			(room, room_id, booking_date, start_time, end_time,
			 event_type, event_name, description, status,
			 user_id, name, role, location, permit_picture, created_at)
		SELECT room, room_id, booking_date, start_time, end_time,
			 event_type, event_name, description, status,
			 user_id, name, role, location, permit_picture, NOW()
		FROM event_bookings
		WHERE id = $1`

	result, err := tx.ExecContext(ctx, copyQuery, id)
	if err != nil {
		return fmt.Errorf("failed to archive booking: %w", err)
	}

	copied, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to archive booking: %w", err)
	}
	if copied == 0 {
		return storage.ErrBookingNotFound
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Storage) ArchivedBookings(ctx context.Context) ([]models.ArchivedBooking, error) {
	query := `
		SELECT id, room, room_id,
			to_char(booking_date, 'YYYY-MM-DD'),
			to_char(start_time, 'HH24:MI'),
			to_char(end_time, 'HH24:MI'),
			event_type, event_name, COALESCE(description, ''),
			status, user_id, name, COALESCE(role, ''),
			COALESCE(location, ''), COALESCE(permit_picture, ''),
			created_at
		FROM cancelled_event_bookings
		ORDER BY booking_date DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get cancelled bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.ArchivedBooking
	for rows.Next() {
		var b models.ArchivedBooking
		err = rows.Scan(
			&b.ID, &b.Room, &b.RoomID,
			&b.BookingDate, &b.StartTime, &b.EndTime,
			&b.EventType, &b.EventName, &b.Description,
			&b.Status, &b.UserID, &b.Name, &b.Role,
			&b.Location, &b.PermitPicture,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cancelled booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cancelled bookings: %w", err)
	}

	return bookings, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
