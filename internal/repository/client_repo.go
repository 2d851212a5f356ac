package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(database *sql.DB) *ClientRepository {
	return &ClientRepository{DB: database}
}

// UpsertByEmail inserts a client or, when the email already exists,
// updates name and phone on the existing row. Email is the dedup key, so
// repeated bookings from the same address never create duplicates.
func (r *ClientRepository) UpsertByEmail(name, email, phone string) (*db.Client, error) {
	var c db.Client
	query := `
		INSERT INTO clients (name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = NOW()
		RETURNING id, name, email, phone, created_at, updated_at`
	err := r.DB.QueryRow(query, name, email, phone).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error upserting client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) List() ([]db.Client, error) {
	rows, err := r.DB.Query(`SELECT id, name, email, phone, created_at, updated_at FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	var clients []db.Client
	for rows.Next() {
		var c db.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Get(id int) (*db.Client, error) {
	var c db.Client
	err := r.DB.QueryRow(`SELECT id, name, email, phone, created_at, updated_at FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("client %d not found", id)
	}
	return nil
}

func (r *ClientRepository) Count() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting clients: %w", err)
	}
	return n, nil
}
