package entities

import (
	"net/url"
	"strconv"
)

// ConfirmationParams is the denormalized booking snapshot carried to the
// confirmation page as URL query parameters. The page never re-reads the
// store, so this query-string schema is the whole contract between the
// submission workflow and the confirmation view. Every field is optional
// on the rendering side.
type ConfirmationParams struct {
	BookingID       string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	CarMake         string
	CarModel        string
	CarYear         string
	LicensePlate    string
	PickupDate      string
	ReturnDate      string
	PickupLocation  string
	DropoffLocation string
	DurationDays    string
	TotalPrice      string
	PaymentMethod   string
}

// Encode serializes the snapshot into query parameters, omitting empty
// fields so absent values stay absent on the page.
func (p ConfirmationParams) Encode() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("bookingId", p.BookingID)
	set("firstName", p.FirstName)
	set("lastName", p.LastName)
	set("email", p.Email)
	set("phone", p.Phone)
	set("carMake", p.CarMake)
	set("carModel", p.CarModel)
	set("carYear", p.CarYear)
	set("licensePlate", p.LicensePlate)
	set("pickupDate", p.PickupDate)
	set("returnDate", p.ReturnDate)
	set("pickupLocation", p.PickupLocation)
	set("dropoffLocation", p.DropoffLocation)
	set("durationDays", p.DurationDays)
	set("totalPrice", p.TotalPrice)
	set("paymentMethod", p.PaymentMethod)
	return v
}

// ConfirmationURL builds the full navigation target for a snapshot.
func (p ConfirmationParams) ConfirmationURL() string {
	return "/confirmation?" + p.Encode().Encode()
}

// ParseConfirmationParams reconstructs a snapshot from query parameters.
// Missing keys simply leave fields empty.
func ParseConfirmationParams(v url.Values) ConfirmationParams {
	return ConfirmationParams{
		BookingID:       v.Get("bookingId"),
		FirstName:       v.Get("firstName"),
		LastName:        v.Get("lastName"),
		Email:           v.Get("email"),
		Phone:           v.Get("phone"),
		CarMake:         v.Get("carMake"),
		CarModel:        v.Get("carModel"),
		CarYear:         v.Get("carYear"),
		LicensePlate:    v.Get("licensePlate"),
		PickupDate:      v.Get("pickupDate"),
		ReturnDate:      v.Get("returnDate"),
		PickupLocation:  v.Get("pickupLocation"),
		DropoffLocation: v.Get("dropoffLocation"),
		DurationDays:    v.Get("durationDays"),
		TotalPrice:      v.Get("totalPrice"),
		PaymentMethod:   v.Get("paymentMethod"),
	}
}

// CustomerName joins the name pair for display.
func (p ConfirmationParams) CustomerName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// TotalPriceValue parses the total amount when present.
func (p ConfirmationParams) TotalPriceValue() (float64, bool) {
	if p.TotalPrice == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(p.TotalPrice, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
