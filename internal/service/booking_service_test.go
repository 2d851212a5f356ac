package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClientStore upserts into an email-keyed map, mirroring the
// ON CONFLICT (email) semantics of the real repository.
type fakeClientStore struct {
	byEmail map[string]*db.Client
	calls   []string
	nextID  int
	err     error
	seq     *[]string
}

func newFakeClientStore(seq *[]string) *fakeClientStore {
	return &fakeClientStore{byEmail: map[string]*db.Client{}, seq: seq}
}

func (f *fakeClientStore) UpsertByEmail(name, email, phone string) (*db.Client, error) {
	f.calls = append(f.calls, email)
	if f.seq != nil {
		*f.seq = append(*f.seq, "client")
	}
	if f.err != nil {
		return nil, f.err
	}
	if existing, ok := f.byEmail[email]; ok {
		existing.Name = name
		existing.Phone = phone
		return existing, nil
	}
	f.nextID++
	c := &db.Client{ID: f.nextID, Name: name, Email: email, Phone: phone}
	f.byEmail[email] = c
	return c, nil
}

type fakeBookingStore struct {
	created []*db.Booking
	overlap int
	err     error
	seq     *[]string
}

func (f *fakeBookingStore) Create(b *db.Booking) error {
	if f.seq != nil {
		*f.seq = append(*f.seq, "booking")
	}
	if f.err != nil {
		return f.err
	}
	b.ID = len(f.created) + 1
	b.CreatedAt = time.Now()
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingStore) CountOverlapping(carID int, start, end time.Time) (int, error) {
	return f.overlap, nil
}

type fakeCarGetter struct {
	car *db.Car
	err error
}

func (f *fakeCarGetter) Get(id int) (*db.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.car, nil
}

type fakeNotifStore struct {
	created []string
}

func (f *fakeNotifStore) Create(kind, message string) error {
	f.created = append(f.created, kind+": "+message)
	return nil
}

type fakeNotifier struct {
	emails   []entities.BookingEmailData
	messages []entities.StaffMessageData
	emailErr error
	msgErr   error
	seq      *[]string
}

func (f *fakeNotifier) SendBookingEmail(data entities.BookingEmailData) error {
	if f.seq != nil {
		*f.seq = append(*f.seq, "email")
	}
	f.emails = append(f.emails, data)
	return f.emailErr
}

func (f *fakeNotifier) SendStaffMessage(data entities.StaffMessageData) (string, error) {
	if f.seq != nil {
		*f.seq = append(*f.seq, "message")
	}
	f.messages = append(f.messages, data)
	if f.msgErr != nil {
		return "", f.msgErr
	}
	return "SM123", nil
}

type workflowFixture struct {
	svc      *BookingService
	clients  *fakeClientStore
	bookings *fakeBookingStore
	cars     *fakeCarGetter
	notifs   *fakeNotifStore
	notifier *fakeNotifier
	seq      []string
}

func newWorkflowFixture() *workflowFixture {
	fx := &workflowFixture{}
	fx.clients = newFakeClientStore(&fx.seq)
	fx.bookings = &fakeBookingStore{seq: &fx.seq}
	fx.cars = &fakeCarGetter{car: &db.Car{
		ID: 7, Make: "Dacia", Model: "Duster", Year: 2023,
		LicensePlate: "12345-A-6", Status: db.CarStatusAvailable, DailyRate: 45,
	}}
	fx.notifs = &fakeNotifStore{}
	fx.notifier = &fakeNotifier{seq: &fx.seq}
	fx.svc = NewBookingService(fx.clients, fx.bookings, fx.cars, fx.notifs, fx.notifier, "I AGREE")
	return fx
}

func validForm() entities.BookingForm {
	t0 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return entities.BookingForm{
		CarID:          7,
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@x.com",
		Phone:          "+1555",
		PickupLocation: "Airport",
		StartTime:      t0,
		EndTime:        t0.Add(48 * time.Hour),
	}
}

func TestRentalPriceRoundsPartialDaysUp(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2*24*time.Hour + 12*time.Hour) // 2.5 days

	assert.Equal(t, 3, RentalDays(start, end))
	assert.Equal(t, 135.0, TotalPrice(45, start, end))
	assert.Equal(t, 45.0, TotalPrice(45, start, start.Add(3*time.Hour)))
}

func TestEditRejectsReturnBeforePickup(t *testing.T) {
	fx := newWorkflowFixture()
	sub := fx.svc.NewSubmission()

	form := validForm()
	form.EndTime = form.StartTime // not strictly after

	verr := sub.Edit(form)
	require.NotNil(t, verr)
	assert.Equal(t, "end_date", verr.Field)
	assert.Equal(t, StateEditing, sub.State())
	assert.Empty(t, fx.clients.calls, "gateway must not be called")
	assert.Empty(t, fx.bookings.created)
}

func TestEditRejectsMalformedEmail(t *testing.T) {
	fx := newWorkflowFixture()

	for _, email := range []string{"", "janex.com", "jane@", "jane@x", "@x.com", "ja ne@x.com"} {
		sub := fx.svc.NewSubmission()
		form := validForm()
		form.Email = email

		verr := sub.Edit(form)
		require.NotNil(t, verr, "email %q should be rejected", email)
		assert.Equal(t, "email", verr.Field)
		assert.Equal(t, StateEditing, sub.State())
	}
	assert.Empty(t, fx.clients.calls, "no network call for malformed email")
}

func TestAcknowledgeGate(t *testing.T) {
	fx := newWorkflowFixture()
	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	assert.Equal(t, StateRulesAcknowledgement, sub.State())

	// Submit is not armed without the phrase.
	_, err := sub.Submit()
	require.Error(t, err)
	assert.Empty(t, fx.clients.calls)

	assert.False(t, sub.Acknowledge("I DISAGREE"))
	assert.False(t, sub.Acknowledge(""))
	// exact phrase, case-insensitive
	assert.True(t, sub.Acknowledge("i agree"))
}

func TestSubmitHappyPath(t *testing.T) {
	fx := newWorkflowFixture()
	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	require.True(t, sub.Acknowledge("I AGREE"))

	result, err := sub.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, sub.State())
	assert.Empty(t, result.EmailWarning)

	// client upsert before booking insert before email before message
	assert.Equal(t, []string{"client", "booking", "email", "message"}, fx.seq)

	require.Len(t, fx.bookings.created, 1)
	booking := fx.bookings.created[0]
	assert.Equal(t, db.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 7, booking.CarID)
	assert.Equal(t, 90.0, booking.TotalPrice) // 45 x 2 days

	require.Len(t, fx.notifier.emails, 1)
	assert.Equal(t, "jane@x.com", fx.notifier.emails[0].CustomerEmail)
	require.Len(t, fx.notifier.messages, 1)
	assert.Equal(t, "Jane Doe", fx.notifier.messages[0].Name)

	// redirect carries the snapshot as query parameters
	u, err := url.Parse(result.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, "/confirmation", u.Path)
	q := u.Query()
	assert.Equal(t, "Jane", q.Get("firstName"))
	assert.Equal(t, "Doe", q.Get("lastName"))
	assert.Equal(t, "jane@x.com", q.Get("email"))
	assert.Equal(t, "Dacia", q.Get("carMake"))
	assert.Equal(t, "2", q.Get("durationDays"))
	assert.Equal(t, "90.00", q.Get("totalPrice"))

	// form cleared after success
	assert.Equal(t, entities.BookingForm{}, sub.Form())
}

func TestSubmitInsertFailureSkipsNotifications(t *testing.T) {
	fx := newWorkflowFixture()
	fx.bookings.err = errors.New("duplicate key value violates unique constraint")

	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	require.True(t, sub.Acknowledge("I AGREE"))

	result, err := sub.Submit()
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, StateFailed, sub.State())
	assert.Contains(t, sub.LastError(), "duplicate key")

	assert.Empty(t, fx.notifier.emails, "no email after failed insert")
	assert.Empty(t, fx.notifier.messages, "no message after failed insert")

	// re-editing returns to the rules gate and requires re-acknowledging
	require.Nil(t, sub.Edit(validForm()))
	_, err = sub.Submit()
	require.Error(t, err, "acknowledgement is not retained across a failed cycle")
}

func TestSubmitClientUpsertFailureInvokesNothingElse(t *testing.T) {
	fx := newWorkflowFixture()
	fx.clients.err = errors.New("connection refused")

	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	require.True(t, sub.Acknowledge("I AGREE"))

	_, err := sub.Submit()
	require.Error(t, err)
	assert.Equal(t, StateFailed, sub.State())
	assert.Empty(t, fx.bookings.created)
	assert.Empty(t, fx.notifier.emails)
}

func TestEmailFailureDoesNotUnwindBooking(t *testing.T) {
	fx := newWorkflowFixture()
	fx.notifier.emailErr = errors.New("sendgrid 503")

	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	require.True(t, sub.Acknowledge("I AGREE"))

	result, err := sub.Submit()
	require.NoError(t, err, "booking stands even when the email fails")
	assert.Equal(t, StateSucceeded, sub.State())
	assert.NotEmpty(t, result.EmailWarning)
	assert.Len(t, fx.notifier.messages, 1, "the staff message is still attempted")
	assert.Len(t, fx.bookings.created, 1)
}

func TestMessageFailureIsSilent(t *testing.T) {
	fx := newWorkflowFixture()
	fx.notifier.msgErr = errors.New("twilio down")

	sub := fx.svc.NewSubmission()
	require.Nil(t, sub.Edit(validForm()))
	require.True(t, sub.Acknowledge("I AGREE"))

	result, err := sub.Submit()
	require.NoError(t, err)
	assert.Empty(t, result.EmailWarning, "message failure is not surfaced to the user")
	assert.Equal(t, StateSucceeded, sub.State())
}

func TestClientUpsertIsIdempotentByEmail(t *testing.T) {
	fx := newWorkflowFixture()

	first := validForm()
	_, err := fx.svc.CreateBooking(first)
	require.NoError(t, err)

	second := validForm()
	second.Phone = "+1666"
	_, err = fx.svc.CreateBooking(second)
	require.NoError(t, err)

	require.Len(t, fx.clients.byEmail, 1, "same email must not create a second client")
	assert.Equal(t, "+1666", fx.clients.byEmail["jane@x.com"].Phone, "latest phone wins")
}

func TestOverlapIsSurfacedNotBlocked(t *testing.T) {
	fx := newWorkflowFixture()
	fx.bookings.overlap = 1

	_, err := fx.svc.CreateBooking(validForm())
	require.NoError(t, err, "overlap does not block the booking")
	assert.Len(t, fx.bookings.created, 1)
	require.Len(t, fx.notifs.created, 1)
	assert.True(t, strings.HasPrefix(fx.notifs.created[0], "overlap:"))
}

func TestSubmissionStateStrings(t *testing.T) {
	for state, want := range map[SubmissionState]string{
		StateEditing:              "editing",
		StateRulesAcknowledgement: "rules_acknowledgement",
		StateSubmitting:           "submitting",
		StateSucceeded:            "succeeded",
		StateFailed:               "failed",
	} {
		assert.Equal(t, want, fmt.Sprint(state))
	}
}
