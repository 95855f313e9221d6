package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Reserve(ctx context.Context, req domain.ReservationRequest) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*domain.Booking, bool, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingFilter) (int, error)
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingSelect = `SELECT b.id, b.booking_id, b.user_id, b.travel_option_id, b.number_of_seats, b.total_price_cents, b.status, b.booked_at, b.updated_at,
	t.id, t.travel_id, t.travel_type, t.source, t.destination, t.departure_time, t.arrival_time, t.price_cents, t.available_seats, t.created_at, t.updated_at
	FROM bookings b JOIN travel_options t ON t.id = b.travel_option_id`

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	var t domain.TravelOption
	if err := row.Scan(&b.ID, &b.BookingID, &b.UserID, &b.TravelOptionID, &b.Seats, &b.TotalCents, &b.Status, &b.BookedAt, &b.UpdatedAt,
		&t.ID, &t.TravelID, &t.Type, &t.Source, &t.Destination, &t.DepartureTime, &t.ArrivalTime, &t.PriceCents, &t.AvailableSeats, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	b.TravelID = t.TravelID
	b.Travel = &t
	return &b, nil
}

// Reserve decrements the seat count and records the booking in one
// transaction. The conditional UPDATE is what keeps available_seats from
// going negative when requests race for the last seats.
func (r *PGBookingRepository) Reserve(ctx context.Context, req domain.ReservationRequest) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, wrapErr("begin reserve", "booking", err)
	}
	defer tx.Rollback(ctx)

	var (
		optionID   int64
		priceCents int64
	)
	err = tx.QueryRow(ctx, `UPDATE travel_options SET available_seats = available_seats - $2, updated_at = now()
		WHERE travel_id=$1 AND available_seats >= $2
		RETURNING id, price_cents`, req.TravelID, req.Seats).Scan(&optionID, &priceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		var remaining int
		if err := tx.QueryRow(ctx, `SELECT available_seats FROM travel_options WHERE travel_id=$1`, req.TravelID).Scan(&remaining); err != nil {
			return nil, wrapErr("check seats", "travel option", err)
		}
		return nil, domain.AvailabilityError{Requested: req.Seats, Remaining: remaining}
	}
	if err != nil {
		return nil, wrapErr("reserve seats", "travel option", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (booking_id, user_id, travel_option_id, number_of_seats, total_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, req.BookingID, req.UserID, optionID, req.Seats, priceCents*int64(req.Seats), domain.BookingStatusConfirmed).
		Scan(&id); err != nil {
		return nil, wrapErr("insert booking", "booking", err)
	}

	booking, err := scanBooking(tx.QueryRow(ctx, bookingSelect+` WHERE b.id=$1`, id))
	if err != nil {
		return nil, wrapErr("load booking", "booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapErr("commit reserve", "booking", err)
	}
	return booking, nil
}

// Cancel flips a confirmed booking to cancelled and gives its seats back.
// The second return value is false when the booking was not confirmed.
func (r *PGBookingRepository) Cancel(ctx context.Context, bookingID string) (*domain.Booking, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, wrapErr("begin cancel", "booking", err)
	}
	defer tx.Rollback(ctx)

	var (
		optionID int64
		seats    int
	)
	err = tx.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now()
		WHERE booking_id=$1 AND status=$3
		RETURNING travel_option_id, number_of_seats`, bookingID, domain.BookingStatusCancelled, domain.BookingStatusConfirmed).
		Scan(&optionID, &seats)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		current, err := scanBooking(tx.QueryRow(ctx, bookingSelect+` WHERE b.booking_id=$1`, bookingID))
		if err != nil {
			return nil, false, wrapErr("get booking", "booking", err)
		}
		return current, false, nil
	case err != nil:
		return nil, false, wrapErr("cancel booking", "booking", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE travel_options SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`, optionID, seats); err != nil {
		return nil, false, wrapErr("release seats", "travel option", err)
	}

	booking, err := scanBooking(tx.QueryRow(ctx, bookingSelect+` WHERE b.booking_id=$1`, bookingID))
	if err != nil {
		return nil, false, wrapErr("load booking", "booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, wrapErr("commit cancel", "booking", err)
	}
	return booking, true, nil
}

func (r *PGBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.booking_id=$1`, bookingID))
	if err != nil {
		return nil, wrapErr("get booking", "booking", err)
	}
	return b, nil
}

func bookingWhere(filter domain.BookingFilter) (string, []any) {
	where := " WHERE TRUE"
	var args []any
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(" AND b.user_id=$%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND b.status=$%d", len(args))
	}
	return where, args
}

func (r *PGBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	where, args := bookingWhere(filter)
	query := bookingSelect + where + ` ORDER BY b.booked_at DESC, b.id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list bookings", "booking", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapErr("scan booking", "booking", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list bookings", "booking", err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) Count(ctx context.Context, filter domain.BookingFilter) (int, error) {
	where, args := bookingWhere(filter)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return 0, wrapErr("count bookings", "booking", err)
	}
	return total, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
