package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
	"github.com/lib/pq"
)

// ErrDuplicatePlate is returned when an insert or update hits the unique
// constraint on license_plate.
var ErrDuplicatePlate = errors.New("a car with this license plate already exists")

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

// List returns one page of cars plus the total count across all pages.
func (r *CarRepository) List(page, pageSize int) ([]db.Car, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT id, make, model, year, color, category, license_plate, status,
		       daily_rate, images, COALESCE(primary_image, ''), created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM cars
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.DB.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	var total int
	for rows.Next() {
		var c db.Car
		if err := rows.Scan(
			&c.ID, &c.Make, &c.Model, &c.Year, &c.Color, &c.Category,
			&c.LicensePlate, &c.Status, &c.DailyRate, &c.Images,
			&c.PrimaryImage, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating car rows: %w", err)
	}
	return cars, total, nil
}

func (r *CarRepository) Get(id int) (*db.Car, error) {
	var c db.Car
	query := `
		SELECT id, make, model, year, color, category, license_plate, status,
		       daily_rate, images, COALESCE(primary_image, ''), created_at, updated_at
		FROM cars WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.Color, &c.Category,
		&c.LicensePlate, &c.Status, &c.DailyRate, &c.Images,
		&c.PrimaryImage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("car %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return &c, nil
}

func (r *CarRepository) Create(c *db.Car) error {
	query := `
		INSERT INTO cars
		(make, model, year, color, category, license_plate, status, daily_rate, images, primary_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		c.Make, c.Model, c.Year, c.Color, c.Category, c.LicensePlate,
		c.Status, c.DailyRate, pq.Array([]string(c.Images)), c.PrimaryImage,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapCarError(err)
	}
	return nil
}

func (r *CarRepository) Update(c *db.Car) error {
	query := `
		UPDATE cars
		SET make = $1, model = $2, year = $3, color = $4, category = $5,
		    license_plate = $6, status = $7, daily_rate = $8, images = $9,
		    primary_image = NULLIF($10, ''), updated_at = NOW()
		WHERE id = $11`
	result, err := r.DB.Exec(query,
		c.Make, c.Model, c.Year, c.Color, c.Category, c.LicensePlate,
		c.Status, c.DailyRate, pq.Array([]string(c.Images)), c.PrimaryImage, c.ID,
	)
	if err != nil {
		return mapCarError(err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("car %d not found", c.ID)
	}
	return nil
}

func (r *CarRepository) UpdateStatus(id int, status string) error {
	result, err := r.DB.Exec(`UPDATE cars SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating car status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("car %d not found", id)
	}
	return nil
}

func (r *CarRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting car: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("car %d not found", id)
	}
	return nil
}

func (r *CarRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM cars GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting cars by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning car status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func mapCarError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicatePlate
	}
	return fmt.Errorf("car write failed: %w", err)
}
