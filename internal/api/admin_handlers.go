package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/repository"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/service"
	"github.com/gorilla/mux"
)

// AdminHandler serves the authenticated back-office dashboard API.
type AdminHandler struct {
	Cars     *service.CarService
	Admin    *service.AdminService
	Clients  *repository.ClientRepository
	Bookings *repository.BookingRepository
	Notifs   *repository.NotificationRepository
}

func NewAdminHandler(cars *service.CarService, admin *service.AdminService, clients *repository.ClientRepository, bookings *repository.BookingRepository, notifs *repository.NotificationRepository) *AdminHandler {
	return &AdminHandler{Cars: cars, Admin: admin, Clients: clients, Bookings: bookings, Notifs: notifs}
}

// Cars

func (h *AdminHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	list, err := h.Cars.ListCars(page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req entities.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	car, err := h.Cars.CreateCar(req)
	if err != nil {
		writeCarError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *AdminHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	car, err := h.Cars.GetCar(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req entities.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	car, err := h.Cars.UpdateCar(id, req)
	if err != nil {
		writeCarError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *AdminHandler) UpdateCarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.Cars.UpdateStatus(id, req.Status); err != nil {
		writeCarError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteCar deletes the record and best-effort deletes its stored
// images. An image failure rides along as a warning on a 200.
func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	result, err := h.Cars.DeleteCar(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{"success": true}
	if result.ImageDeletionError != "" {
		resp["image_deletion_error"] = result.ImageDeletionError
	}
	writeJSON(w, http.StatusOK, resp)
}

// Clients

func (h *AdminHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *AdminHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.Clients.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Bookings

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	date := r.URL.Query().Get("date")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.Bookings.List(status, date, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if list.Bookings == nil {
		list.Bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if !validBookingStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid booking status")
		return
	}
	if err := h.Bookings.UpdateStatus(id, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.Bookings.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Notifications

func (h *AdminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifs, err := h.Notifs.List(unreadOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, notifs)
}

func (h *AdminHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.Notifs.MarkRead(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Stats

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeCarError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, repository.ErrDuplicatePlate):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func validBookingStatus(status string) bool {
	switch status {
	case "Confirmed", "Active", "Completed", "Cancelled":
		return true
	}
	return false
}
