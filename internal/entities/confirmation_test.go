package entities

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationParamsRoundTrip(t *testing.T) {
	p := ConfirmationParams{
		BookingID:      "42",
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@x.com",
		Phone:          "+1555",
		CarMake:        "Dacia",
		CarModel:       "Duster",
		CarYear:        "2023",
		LicensePlate:   "12345-A-6",
		PickupDate:     "2026-09-01T10:00:00Z",
		ReturnDate:     "2026-09-03T10:00:00Z",
		PickupLocation: "Airport",
		DurationDays:   "2",
		TotalPrice:     "90.00",
	}

	parsed := ParseConfirmationParams(p.Encode())
	assert.Equal(t, p, parsed)
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	p := ConfirmationParams{FirstName: "Jane", CarMake: "Dacia"}
	v := p.Encode()

	assert.Equal(t, "Jane", v.Get("firstName"))
	_, hasEmail := v["email"]
	assert.False(t, hasEmail, "absent fields must stay absent, not empty")
	_, hasDropoff := v["dropoffLocation"]
	assert.False(t, hasDropoff)
}

func TestParseToleratesMissingKeys(t *testing.T) {
	p := ParseConfirmationParams(url.Values{"firstName": {"Jane"}})
	assert.Equal(t, "Jane", p.FirstName)
	assert.Empty(t, p.Email)
	assert.Empty(t, p.TotalPrice)
}

func TestCustomerName(t *testing.T) {
	assert.Equal(t, "Jane Doe", ConfirmationParams{FirstName: "Jane", LastName: "Doe"}.CustomerName())
	assert.Equal(t, "Jane", ConfirmationParams{FirstName: "Jane"}.CustomerName())
	assert.Equal(t, "Doe", ConfirmationParams{LastName: "Doe"}.CustomerName())
}

func TestTotalPriceValue(t *testing.T) {
	f, ok := ConfirmationParams{TotalPrice: "135.00"}.TotalPriceValue()
	require.True(t, ok)
	assert.Equal(t, 135.0, f)

	_, ok = ConfirmationParams{}.TotalPriceValue()
	assert.False(t, ok)

	_, ok = ConfirmationParams{TotalPrice: "abc"}.TotalPriceValue()
	assert.False(t, ok)
}

func TestConfirmationURL(t *testing.T) {
	u := ConfirmationParams{BookingID: "9", FirstName: "Jane"}.ConfirmationURL()
	assert.Equal(t, "/confirmation?bookingId=9&firstName=Jane", u)
}
