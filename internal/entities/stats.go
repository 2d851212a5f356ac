package entities

// DashboardStats backs the simple chart widgets on the admin dashboard.
type DashboardStats struct {
	TotalCars        int            `json:"total_cars"`
	TotalClients     int            `json:"total_clients"`
	TotalBookings    int            `json:"total_bookings"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	CarsByStatus     map[string]int `json:"cars_by_status"`
	UnreadNotifCount int            `json:"unread_notifications"`
}
