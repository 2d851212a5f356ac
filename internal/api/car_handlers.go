package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/service"
	"github.com/gorilla/mux"
)

// CarHandler serves the public fleet pages.
type CarHandler struct {
	Service *service.CarService
}

func NewCarHandler(svc *service.CarService) *CarHandler {
	return &CarHandler{Service: svc}
}

// ListCars returns one page of the fleet. A fetch failure degrades to an
// empty list plus a log line; public readers cannot tell "no rows" from
// "request failed".
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	list, err := h.Service.ListCars(page, pageSize)
	if err != nil {
		log.Printf("Error listing cars: %v", err)
		list = &entities.CarsList{Page: page, PageSize: pageSize, Cars: []entities.CarResponse{}}
	}
	if list.Cars == nil {
		list.Cars = []entities.CarResponse{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	car, err := h.Service.GetCar(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	writeJSON(w, http.StatusOK, car)
}
