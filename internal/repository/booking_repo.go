package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(car_id, client_id, start_time, end_time, pickup_location, dropoff_location, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		b.CarID, b.ClientID, b.StartTime, b.EndTime,
		b.PickupLocation, b.DropoffLocation, b.Status, b.TotalPrice,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// List returns bookings joined with client and car details, filtered by
// the optional status and date (start day) arguments.
func (r *BookingRepository) List(status, date string, limit, offset int) (*entities.BookingsList, error) {
	if limit < 1 {
		limit = 50
	}
	query := `
		SELECT b.id, b.car_id, b.client_id, cl.name, cl.email, cl.phone,
		       c.make, c.model, c.year, c.license_plate,
		       b.start_time, b.end_time, b.pickup_location, COALESCE(b.dropoff_location, ''),
		       b.status, b.total_price, b.created_at,
		       COUNT(*) OVER() AS total
		FROM bookings b
		JOIN clients cl ON cl.id = b.client_id
		JOIN cars c ON c.id = b.car_id
		WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if status != "" {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	if date != "" {
		query += " AND DATE(b.start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	query += " ORDER BY b.start_time DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	list := &entities.BookingsList{Limit: limit, Offset: offset}
	for rows.Next() {
		var res entities.BookingResponse
		var total int
		if err := rows.Scan(
			&res.ID, &res.CarID, &res.ClientID, &res.ClientName, &res.ClientEmail, &res.ClientPhone,
			&res.CarMake, &res.CarModel, &res.CarYear, &res.LicensePlate,
			&res.StartTime, &res.EndTime, &res.PickupLocation, &res.DropoffLocation,
			&res.Status, &res.TotalPrice, &res.CreatedAt, &total,
		); err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		list.Total = total
		list.Bookings = append(list.Bookings, res)
	}
	return list, rows.Err()
}

func (r *BookingRepository) Get(id int) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, car_id, client_id, start_time, end_time, pickup_location,
		       COALESCE(dropoff_location, ''), status, total_price, created_at, updated_at
		FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.CarID, &b.ClientID, &b.StartTime, &b.EndTime,
		&b.PickupLocation, &b.DropoffLocation, &b.Status, &b.TotalPrice,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(id int, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

func (r *BookingRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// CountOverlapping counts non-cancelled bookings for a car whose date
// range overlaps [start, end). Nothing blocks on the result; the data
// model has no exclusion constraint, so callers only use it to warn.
func (r *BookingRepository) CountOverlapping(carID int, start, end time.Time) (int, error) {
	var n int
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE car_id = $1 AND status != $2
		  AND start_time < $4 AND end_time > $3`
	err := r.DB.QueryRow(query, carID, db.BookingStatusCancelled, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return n, nil
}

// Counts for the dashboard widgets.
func (r *BookingRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting bookings by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning booking status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListUpcoming returns confirmed or active bookings whose pickup or
// return falls inside the window. Used by the reminder job.
func (r *BookingRepository) ListUpcoming(from, to time.Time) ([]entities.BookingResponse, error) {
	query := `
		SELECT b.id, b.car_id, b.client_id, cl.name, cl.email, cl.phone,
		       c.make, c.model, c.year, c.license_plate,
		       b.start_time, b.end_time, b.pickup_location, COALESCE(b.dropoff_location, ''),
		       b.status, b.total_price, b.created_at
		FROM bookings b
		JOIN clients cl ON cl.id = b.client_id
		JOIN cars c ON c.id = b.car_id
		WHERE b.status IN ($1, $2)
		  AND (b.start_time BETWEEN $3 AND $4 OR b.end_time BETWEEN $3 AND $4)
		ORDER BY b.start_time`
	rows, err := r.DB.Query(query, db.BookingStatusConfirmed, db.BookingStatusActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying upcoming bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var res entities.BookingResponse
		if err := rows.Scan(
			&res.ID, &res.CarID, &res.ClientID, &res.ClientName, &res.ClientEmail, &res.ClientPhone,
			&res.CarMake, &res.CarModel, &res.CarYear, &res.LicensePlate,
			&res.StartTime, &res.EndTime, &res.PickupLocation, &res.DropoffLocation,
			&res.Status, &res.TotalPrice, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning upcoming booking: %w", err)
		}
		bookings = append(bookings, res)
	}
	return bookings, rows.Err()
}
