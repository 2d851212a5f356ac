package db

import (
	"time"

	"github.com/lib/pq"
)

// Car statuses. Staff may set any status at any time; bookings do not
// drive automatic transitions.
const (
	CarStatusAvailable   = "Available"
	CarStatusRented      = "Rented"
	CarStatusMaintenance = "Maintenance"
)

// Booking statuses. Default on creation is Confirmed; everything else is
// a manual staff action from the dashboard.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusActive    = "Active"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

type Car struct {
	ID           int
	Make         string
	Model        string
	Year         int
	Color        string
	Category     string
	LicensePlate string
	Status       string
	DailyRate    float64
	Images       pq.StringArray
	PrimaryImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Client struct {
	ID        int
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Booking struct {
	ID              int
	CarID           int
	ClientID        int
	StartTime       time.Time
	EndTime         time.Time
	PickupLocation  string
	DropoffLocation string
	Status          string
	TotalPrice      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Notification struct {
	ID        int
	Kind      string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
