package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/anwarbahou/saifautoBeta-sub000/internal/errors"
)

// CreateBookingRequest is the POST /api/bookings body.
type CreateBookingRequest struct {
	CarID           int    `json:"car_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

// SendBookingRequest is the POST /api/sendBooking body: the
// messaging-triggered flow. It carries enough to go through the same
// create path as the web form.
type SendBookingRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	CarID          int    `json:"car_id"`
	BookingDate    string `json:"bookingDate"`
	ReturnDate     string `json:"returnDate"`
	ServiceType    string `json:"serviceType"`
	PickupLocation string `json:"pickup_location"`
}

// SendEmailRequest is the POST /api/send-confirmation-email body.
type SendEmailRequest struct {
	CustomerName string `json:"customerName"`
	CarDetails   struct {
		Make         string `json:"make"`
		Model        string `json:"model"`
		Year         int    `json:"year"`
		LicensePlate string `json:"license_plate"`
	} `json:"carDetails"`
	BookingDetails struct {
		PickupDate     string  `json:"pickup_date"`
		ReturnDate     string  `json:"return_date"`
		PickupLocation string  `json:"pickup_location"`
		TotalPrice     float64 `json:"total_price"`
	} `json:"bookingDetails"`
	CustomerDetails struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customerDetails"`
}

// parseDate accepts RFC 3339 or plain dates from form clients.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the result-object error shape every failure degrades
// to. Nothing is thrown past the HTTP boundary.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

// writeServiceError maps a typed HTTPError from the service layer to its
// status; anything else is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
