package entities

import "time"

type CarResponse struct {
	ID           int       `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color,omitempty"`
	Category     string    `json:"category,omitempty"`
	LicensePlate string    `json:"license_plate"`
	Status       string    `json:"status"`
	DailyRate    float64   `json:"daily_rate"`
	Images       []string  `json:"images"`
	PrimaryImage string    `json:"primary_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CarsList struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Cars     []CarResponse `json:"cars"`
}

type CarRequest struct {
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Color        string   `json:"color"`
	Category     string   `json:"category"`
	LicensePlate string   `json:"license_plate"`
	Status       string   `json:"status"`
	DailyRate    float64  `json:"daily_rate"`
	Images       []string `json:"images"`
	PrimaryImage string   `json:"primary_image"`
}
