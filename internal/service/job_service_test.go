package service

import (
	"errors"
	"testing"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpcomingLister struct {
	bookings []entities.BookingResponse
	err      error
}

func (f *fakeUpcomingLister) ListUpcoming(from, to time.Time) ([]entities.BookingResponse, error) {
	return f.bookings, f.err
}

type fakePurger struct {
	created   []string
	createErr error
	purged    int64
	purgedAt  time.Time
	purgeErr  error
}

func (f *fakePurger) Create(kind, message string) error {
	f.created = append(f.created, kind+": "+message)
	return f.createErr
}

func (f *fakePurger) DeleteReadOlderThan(before time.Time) (int64, error) {
	f.purgedAt = before
	return f.purged, f.purgeErr
}

func TestCreateUpcomingRemindersFilesOnePerBooking(t *testing.T) {
	soon := time.Now().UTC().Add(6 * time.Hour)
	lister := &fakeUpcomingLister{bookings: []entities.BookingResponse{
		{
			ID: 1, CarMake: "Dacia", CarModel: "Duster", LicensePlate: "12345-A-6",
			ClientName: "Jane Doe", PickupLocation: "Airport",
			StartTime: soon, EndTime: soon.Add(48 * time.Hour),
		},
		{
			ID: 2, CarMake: "Renault", CarModel: "Clio", LicensePlate: "67890-B-7",
			ClientName: "Ali Ben",
			StartTime:  soon.Add(-72 * time.Hour), EndTime: soon,
		},
	}}
	notifs := &fakePurger{}

	require.NoError(t, NewJobService(lister, notifs).CreateUpcomingReminders())

	require.Len(t, notifs.created, 2)
	assert.Contains(t, notifs.created[0], "Pickup tomorrow: Dacia Duster (12345-A-6) for Jane Doe at Airport")
	assert.Contains(t, notifs.created[1], "Return due: Renault Clio (67890-B-7) from Ali Ben")
}

func TestCreateUpcomingRemindersNoBookings(t *testing.T) {
	notifs := &fakePurger{}
	require.NoError(t, NewJobService(&fakeUpcomingLister{}, notifs).CreateUpcomingReminders())
	assert.Empty(t, notifs.created)
}

func TestCreateUpcomingRemindersListFailure(t *testing.T) {
	lister := &fakeUpcomingLister{err: errors.New("db down")}
	err := NewJobService(lister, &fakePurger{}).CreateUpcomingReminders()
	assert.ErrorContains(t, err, "db down")
}

func TestCreateUpcomingRemindersSurvivesCreateFailure(t *testing.T) {
	soon := time.Now().UTC().Add(2 * time.Hour)
	lister := &fakeUpcomingLister{bookings: []entities.BookingResponse{
		{ID: 1, StartTime: soon, EndTime: soon.Add(24 * time.Hour)},
		{ID: 2, StartTime: soon, EndTime: soon.Add(24 * time.Hour)},
	}}
	notifs := &fakePurger{createErr: errors.New("insert failed")}

	assert.NoError(t, NewJobService(lister, notifs).CreateUpcomingReminders())
	assert.Len(t, notifs.created, 2)
}

func TestPurgeOldNotificationsCutoff(t *testing.T) {
	notifs := &fakePurger{purged: 3}
	require.NoError(t, NewJobService(&fakeUpcomingLister{}, notifs).PurgeOldNotifications())

	wanted := time.Now().UTC().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, wanted, notifs.purgedAt, time.Minute)
}
