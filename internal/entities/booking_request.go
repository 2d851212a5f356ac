package entities

import "time"

// BookingForm is the raw submission coming from the booking form or the
// messaging flow. Dates arrive already parsed; validation happens in the
// submission workflow before any store call.
type BookingForm struct {
	CarID           int       `json:"car_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location,omitempty"`
	StartTime       time.Time `json:"start_date"`
	EndTime         time.Time `json:"end_date"`
}

// FullName reconciles the first/last pair into the single canonical
// client name stored in the clients table.
func (f BookingForm) FullName() string {
	if f.FirstName == "" {
		return f.LastName
	}
	if f.LastName == "" {
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}

type BookingResponse struct {
	ID              int       `json:"id"`
	CarID           int       `json:"car_id"`
	ClientID        int       `json:"client_id"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ClientPhone     string    `json:"client_phone"`
	CarMake         string    `json:"car_make"`
	CarModel        string    `json:"car_model"`
	CarYear         int       `json:"car_year"`
	LicensePlate    string    `json:"license_plate"`
	StartTime       time.Time `json:"start_date"`
	EndTime         time.Time `json:"end_date"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location,omitempty"`
	Status          string    `json:"status"`
	TotalPrice      float64   `json:"total_price,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}
