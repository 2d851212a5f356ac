package entities

// BookingEmailData feeds the confirmation email subject, plain body and
// HTML template.
type BookingEmailData struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CarMake         string
	CarModel        string
	CarYear         int
	LicensePlate    string
	PickupFormatted string
	ReturnFormatted string
	PickupLocation  string
	TotalPrice      float64
	HasTotalPrice   bool
	CurrentYear     int
}

// StaffMessageData is the payload for the fixed-format staff text message.
type StaffMessageData struct {
	Name        string
	Phone       string
	BookingDate string
	ReturnDate  string
	ServiceType string
}
