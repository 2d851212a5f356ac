package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/config"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/service"
)

type BookingHandler struct {
	Service    *service.BookingService
	Sender     *service.SenderService
	EmailCfg   config.EmailConfig
	MessageCfg config.MessageConfig
}

func NewBookingHandler(svc *service.BookingService, sender *service.SenderService, emailCfg config.EmailConfig, messageCfg config.MessageConfig) *BookingHandler {
	return &BookingHandler{Service: svc, Sender: sender, EmailCfg: emailCfg, MessageCfg: messageCfg}
}

// CreateBooking performs the client-upsert + booking-insert step only.
// Notification sends are separate calls made by the caller.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	form, err := bookingForm(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.CreateBooking(form)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	snapshot := service.ConfirmationSnapshot(res, form)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"booking_id":       res.ID,
		"confirmation_url": snapshot.ConfirmationURL(),
	})
}

// SendConfirmationEmail renders and dispatches the confirmation email
// for an already-persisted booking snapshot.
func (h *BookingHandler) SendConfirmationEmail(w http.ResponseWriter, r *http.Request) {
	if missing := h.EmailCfg.Missing(); len(missing) > 0 {
		writeError(w, http.StatusInternalServerError, config.MissingError(missing).Error())
		return
	}

	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.CustomerDetails.Email == "" {
		writeError(w, http.StatusBadRequest, "customerDetails.email is required")
		return
	}

	data := entities.BookingEmailData{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerDetails.Email,
		CustomerPhone:   req.CustomerDetails.Phone,
		CarMake:         req.CarDetails.Make,
		CarModel:        req.CarDetails.Model,
		CarYear:         req.CarDetails.Year,
		LicensePlate:    req.CarDetails.LicensePlate,
		PickupFormatted: req.BookingDetails.PickupDate,
		ReturnFormatted: req.BookingDetails.ReturnDate,
		PickupLocation:  req.BookingDetails.PickupLocation,
		TotalPrice:      req.BookingDetails.TotalPrice,
		HasTotalPrice:   req.BookingDetails.TotalPrice > 0,
	}
	if err := h.Sender.SendBookingEmail(data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]string{"to": req.CustomerDetails.Email},
	})
}

// SendBooking is the messaging-triggered flow. It goes through the same
// authoritative create path as the web form, then sends the staff
// message.
func (h *BookingHandler) SendBooking(w http.ResponseWriter, r *http.Request) {
	if missing := h.MessageCfg.Missing(); len(missing) > 0 {
		writeError(w, http.StatusInternalServerError, config.MissingError(missing).Error())
		return
	}

	var req SendBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	start, err := parseDate(req.BookingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookingDate")
		return
	}
	end, err := parseDate(req.ReturnDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid returnDate")
		return
	}

	pickup := req.PickupLocation
	if pickup == "" {
		pickup = "Agency"
	}
	res, err := h.Service.CreateBooking(entities.BookingForm{
		CarID:          req.CarID,
		FirstName:      req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PickupLocation: pickup,
		StartTime:      start,
		EndTime:        end,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sid, err := h.Sender.SendStaffMessage(entities.StaffMessageData{
		Name:        req.Name,
		Phone:       req.Phone,
		BookingDate: req.BookingDate,
		ReturnDate:  req.ReturnDate,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"sid":        sid,
		"booking_id": res.ID,
	})
}

func bookingForm(req CreateBookingRequest) (entities.BookingForm, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return entities.BookingForm{}, errors.New("invalid start_date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return entities.BookingForm{}, errors.New("invalid end_date")
	}
	return entities.BookingForm{
		CarID:           req.CarID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		StartTime:       start,
		EndTime:         end,
	}, nil
}
