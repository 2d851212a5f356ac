package service

import (
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/repository"
)

type AdminService struct {
	cars     *repository.CarRepository
	clients  *repository.ClientRepository
	bookings *repository.BookingRepository
	notifs   *repository.NotificationRepository
}

func NewAdminService(cars *repository.CarRepository, clients *repository.ClientRepository, bookings *repository.BookingRepository, notifs *repository.NotificationRepository) *AdminService {
	return &AdminService{cars: cars, clients: clients, bookings: bookings, notifs: notifs}
}

// Stats aggregates the counts behind the dashboard chart widgets.
func (s *AdminService) Stats() (*entities.DashboardStats, error) {
	carCounts, err := s.cars.CountByStatus()
	if err != nil {
		return nil, err
	}
	bookingCounts, err := s.bookings.CountByStatus()
	if err != nil {
		return nil, err
	}
	clientCount, err := s.clients.Count()
	if err != nil {
		return nil, err
	}
	unread, err := s.notifs.CountUnread()
	if err != nil {
		return nil, err
	}

	stats := &entities.DashboardStats{
		TotalClients:     clientCount,
		BookingsByStatus: bookingCounts,
		CarsByStatus:     carCounts,
		UnreadNotifCount: unread,
	}
	for _, n := range carCounts {
		stats.TotalCars += n
	}
	for _, n := range bookingCounts {
		stats.TotalBookings += n
	}
	return stats, nil
}
