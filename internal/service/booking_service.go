package service

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Stores the booking workflow talks to. Declared here so tests can
// substitute recorders.
type ClientStore interface {
	UpsertByEmail(name, email, phone string) (*db.Client, error)
}

type BookingStore interface {
	Create(*db.Booking) error
	CountOverlapping(carID int, start, end time.Time) (int, error)
}

type CarGetter interface {
	Get(id int) (*db.Car, error)
}

type NotificationStore interface {
	Create(kind, message string) error
}

// BookingNotifier is the pair of best-effort side effects fired after a
// booking is durable. SenderService implements it.
type BookingNotifier interface {
	SendBookingEmail(entities.BookingEmailData) error
	SendStaffMessage(entities.StaffMessageData) (string, error)
}

// ValidationError is a field-level form violation. It never reaches a
// collaborator; the submission stays editable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type BookingService struct {
	clients     ClientStore
	bookings    BookingStore
	cars        CarGetter
	notifs      NotificationStore
	sender      BookingNotifier
	rulesPhrase string
}

func NewBookingService(clients ClientStore, bookings BookingStore, cars CarGetter, notifs NotificationStore, sender BookingNotifier, rulesPhrase string) *BookingService {
	return &BookingService{
		clients:     clients,
		bookings:    bookings,
		cars:        cars,
		notifs:      notifs,
		sender:      sender,
		rulesPhrase: rulesPhrase,
	}
}

// ValidateForm applies the pre-submission checks: required fields, email
// shape, return strictly after pickup.
func (s *BookingService) ValidateForm(form entities.BookingForm) *ValidationError {
	if form.CarID <= 0 {
		return &ValidationError{Field: "car_id", Message: "a car must be selected"}
	}
	if form.FullName() == "" {
		return &ValidationError{Field: "first_name", Message: "name is required"}
	}
	if !emailPattern.MatchString(form.Email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if form.Phone == "" {
		return &ValidationError{Field: "phone", Message: "phone is required"}
	}
	if form.PickupLocation == "" {
		return &ValidationError{Field: "pickup_location", Message: "pickup location is required"}
	}
	if form.StartTime.IsZero() || form.EndTime.IsZero() {
		return &ValidationError{Field: "start_date", Message: "pickup and return dates are required"}
	}
	if !form.EndTime.After(form.StartTime) {
		return &ValidationError{Field: "end_date", Message: "return date must be after pickup date"}
	}
	return nil
}

// RentalDays is the billed duration: partial days round up.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// TotalPrice computes dailyRate × ceil(day span).
func TotalPrice(dailyRate float64, start, end time.Time) float64 {
	return dailyRate * float64(RentalDays(start, end))
}

// CreateBooking is the single authoritative create path: upsert the
// client by email, then insert the booking referencing client and car
// with status Confirmed. No notification is sent here; callers layer the
// side effects on top.
func (s *BookingService) CreateBooking(form entities.BookingForm) (*entities.BookingResponse, error) {
	if verr := s.ValidateForm(form); verr != nil {
		return nil, verr
	}

	car, err := s.cars.Get(form.CarID)
	if err != nil {
		return nil, fmt.Errorf("could not load car %d: %w", form.CarID, err)
	}

	client, err := s.clients.UpsertByEmail(form.FullName(), form.Email, form.Phone)
	if err != nil {
		return nil, fmt.Errorf("could not save client: %w", err)
	}

	if n, err := s.bookings.CountOverlapping(car.ID, form.StartTime, form.EndTime); err != nil {
		log.Printf("Could not check overlapping bookings for car %d: %v", car.ID, err)
	} else if n > 0 {
		// The data model has no exclusion constraint; surface the clash
		// to staff instead of blocking the booking.
		log.Printf("WARNING: car %d already has %d booking(s) overlapping %s - %s", car.ID, n, form.StartTime, form.EndTime)
		if s.notifs != nil {
			msg := fmt.Sprintf("Overlap: %s %s (%s) double-booked from %s to %s",
				car.Make, car.Model, car.LicensePlate,
				form.StartTime.Format("2006-01-02"), form.EndTime.Format("2006-01-02"))
			if nerr := s.notifs.Create("overlap", msg); nerr != nil {
				log.Printf("Could not record overlap notification: %v", nerr)
			}
		}
	}

	booking := &db.Booking{
		CarID:           car.ID,
		ClientID:        client.ID,
		StartTime:       form.StartTime,
		EndTime:         form.EndTime,
		PickupLocation:  form.PickupLocation,
		DropoffLocation: form.DropoffLocation,
		Status:          db.BookingStatusConfirmed,
		TotalPrice:      TotalPrice(car.DailyRate, form.StartTime, form.EndTime),
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}

	return &entities.BookingResponse{
		ID:              booking.ID,
		CarID:           car.ID,
		ClientID:        client.ID,
		ClientName:      client.Name,
		ClientEmail:     client.Email,
		ClientPhone:     client.Phone,
		CarMake:         car.Make,
		CarModel:        car.Model,
		CarYear:         car.Year,
		LicensePlate:    car.LicensePlate,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		PickupLocation:  booking.PickupLocation,
		DropoffLocation: booking.DropoffLocation,
		Status:          booking.Status,
		TotalPrice:      booking.TotalPrice,
		CreatedAt:       booking.CreatedAt,
	}, nil
}

// NotifyBooking fires the two best-effort side effects for a durable
// booking: confirmation email to the customer, then the staff message.
// The email failure is returned as a warning string; the message failure
// is logged only. Neither unwinds the booking.
func (s *BookingService) NotifyBooking(res *entities.BookingResponse) (emailWarning string) {
	emailData := entities.BookingEmailData{
		CustomerName:    res.ClientName,
		CustomerEmail:   res.ClientEmail,
		CustomerPhone:   res.ClientPhone,
		CarMake:         res.CarMake,
		CarModel:        res.CarModel,
		CarYear:         res.CarYear,
		LicensePlate:    res.LicensePlate,
		PickupFormatted: FormatEmailDate(res.StartTime),
		ReturnFormatted: FormatEmailDate(res.EndTime),
		PickupLocation:  res.PickupLocation,
		TotalPrice:      res.TotalPrice,
		HasTotalPrice:   res.TotalPrice > 0,
		CurrentYear:     time.Now().Year(),
	}
	if err := s.sender.SendBookingEmail(emailData); err != nil {
		log.Printf("WARNING: booking %d confirmed, but the confirmation email failed: %v", res.ID, err)
		emailWarning = "booking confirmed, but the confirmation email could not be sent"
	}

	if _, err := s.sender.SendStaffMessage(entities.StaffMessageData{
		Name:        res.ClientName,
		Phone:       res.ClientPhone,
		BookingDate: FormatEmailDate(res.StartTime),
		ReturnDate:  FormatEmailDate(res.EndTime),
		ServiceType: fmt.Sprintf("%s %s rental", res.CarMake, res.CarModel),
	}); err != nil {
		log.Printf("WARNING: booking %d confirmed, but the staff message failed: %v", res.ID, err)
	}
	return emailWarning
}

// ConfirmationSnapshot builds the denormalized query-parameter snapshot
// handed to the confirmation page.
func ConfirmationSnapshot(res *entities.BookingResponse, form entities.BookingForm) entities.ConfirmationParams {
	p := entities.ConfirmationParams{
		BookingID:       strconv.Itoa(res.ID),
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           res.ClientEmail,
		Phone:           res.ClientPhone,
		CarMake:         res.CarMake,
		CarModel:        res.CarModel,
		CarYear:         strconv.Itoa(res.CarYear),
		LicensePlate:    res.LicensePlate,
		PickupDate:      res.StartTime.Format(time.RFC3339),
		ReturnDate:      res.EndTime.Format(time.RFC3339),
		PickupLocation:  res.PickupLocation,
		DropoffLocation: res.DropoffLocation,
		DurationDays:    strconv.Itoa(RentalDays(res.StartTime, res.EndTime)),
	}
	if res.TotalPrice > 0 {
		p.TotalPrice = strconv.FormatFloat(res.TotalPrice, 'f', 2, 64)
	}
	return p
}

// SubmissionState is the explicit submission workflow state.
type SubmissionState int

const (
	StateEditing SubmissionState = iota
	StateRulesAcknowledgement
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s SubmissionState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateRulesAcknowledgement:
		return "rules_acknowledgement"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// SubmissionResult is what a successful submit hands back: the durable
// booking, the redirect target carrying the snapshot, and the optional
// email warning.
type SubmissionResult struct {
	Booking      *entities.BookingResponse
	RedirectURL  string
	EmailWarning string
}

// Submission drives one booking attempt through
// Editing → RulesAcknowledgement → Submitting → Succeeded | Failed.
// A failed submit returns to Editing and drops the acknowledgement, so
// the rules gate blocks every attempt.
type Submission struct {
	svc          *BookingService
	state        SubmissionState
	form         entities.BookingForm
	acknowledged bool
	lastError    string
}

func (s *BookingService) NewSubmission() *Submission {
	return &Submission{svc: s, state: StateEditing}
}

func (s *Submission) State() SubmissionState { return s.state }

// LastError is the inline message from the most recent failure.
func (s *Submission) LastError() string { return s.lastError }

// Form returns the current form contents (cleared after success).
func (s *Submission) Form() entities.BookingForm { return s.form }

// Edit records the form and, when it validates, advances to the rules
// gate. Violations keep the submission in Editing and touch nothing.
func (s *Submission) Edit(form entities.BookingForm) *ValidationError {
	if s.state == StateSucceeded {
		return &ValidationError{Message: "submission already completed"}
	}
	s.form = form
	s.acknowledged = false
	if verr := s.svc.ValidateForm(form); verr != nil {
		s.state = StateEditing
		s.lastError = verr.Message
		return verr
	}
	s.state = StateRulesAcknowledgement
	s.lastError = ""
	return nil
}

// Acknowledge arms the submit action when the typed phrase matches the
// rules confirmation phrase, case-insensitively and exactly.
func (s *Submission) Acknowledge(phrase string) bool {
	if s.state != StateRulesAcknowledgement {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(phrase), s.svc.rulesPhrase) {
		return false
	}
	s.acknowledged = true
	return true
}

// Submit runs the persistence step and, only once the booking is
// durable, the best-effort notifications. A persistence failure moves to
// Failed with the gateway's message and invokes no sender; re-editing is
// required (and re-acknowledging) before another attempt.
func (s *Submission) Submit() (*SubmissionResult, error) {
	if s.state != StateRulesAcknowledgement || !s.acknowledged {
		return nil, fmt.Errorf("submission is not armed: rules must be acknowledged first")
	}
	s.state = StateSubmitting

	res, err := s.svc.CreateBooking(s.form)
	if err != nil {
		s.state = StateFailed
		s.lastError = err.Error()
		s.acknowledged = false
		return nil, err
	}

	warning := s.svc.NotifyBooking(res)
	snapshot := ConfirmationSnapshot(res, s.form)

	result := &SubmissionResult{
		Booking:      res,
		RedirectURL:  snapshot.ConfirmationURL(),
		EmailWarning: warning,
	}
	s.form = entities.BookingForm{}
	s.acknowledged = false
	s.lastError = ""
	s.state = StateSucceeded
	return result, nil
}
