package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/storage"
	"github.com/lib/pq"
)

// CarStore is the full car gateway surface used by the fleet service.
type CarStore interface {
	List(page, pageSize int) ([]db.Car, int, error)
	Get(id int) (*db.Car, error)
	Create(*db.Car) error
	Update(*db.Car) error
	UpdateStatus(id int, status string) error
	Delete(id int) error
}

// DeleteCarResult reports a car deletion. ImageDeletionError is a
// non-fatal warning: the row is gone even when some blobs were not.
type DeleteCarResult struct {
	Deleted            bool   `json:"deleted"`
	ImageDeletionError string `json:"image_deletion_error,omitempty"`
}

type CarService struct {
	cars   CarStore
	images storage.ImageStore
}

func NewCarService(cars CarStore, images storage.ImageStore) *CarService {
	return &CarService{cars: cars, images: images}
}

func (s *CarService) ListCars(page, pageSize int) (*entities.CarsList, error) {
	cars, total, err := s.cars.List(page, pageSize)
	if err != nil {
		return nil, err
	}
	list := &entities.CarsList{Total: total, Page: page, PageSize: pageSize}
	for _, c := range cars {
		list.Cars = append(list.Cars, carResponse(c))
	}
	return list, nil
}

func (s *CarService) GetCar(id int) (*entities.CarResponse, error) {
	c, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	res := carResponse(*c)
	return &res, nil
}

func (s *CarService) CreateCar(req entities.CarRequest) (*entities.CarResponse, error) {
	car, err := carFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.cars.Create(car); err != nil {
		return nil, err
	}
	res := carResponse(*car)
	return &res, nil
}

func (s *CarService) UpdateCar(id int, req entities.CarRequest) (*entities.CarResponse, error) {
	car, err := carFromRequest(req)
	if err != nil {
		return nil, err
	}
	car.ID = id
	if err := s.cars.Update(car); err != nil {
		return nil, err
	}
	res := carResponse(*car)
	return &res, nil
}

func (s *CarService) UpdateStatus(id int, status string) error {
	if !validCarStatus(status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid car status %q", status)}
	}
	return s.cars.UpdateStatus(id, status)
}

// DeleteCar attempts one blob delete per stored image URL, then deletes
// the row. Every image is attempted regardless of earlier failures;
// failures are joined into the result's ImageDeletionError and never
// block the record deletion.
func (s *CarService) DeleteCar(ctx context.Context, id int) (*DeleteCarResult, error) {
	car, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, imageURL := range car.Images {
		if err := s.images.DeleteImage(ctx, imageURL); err != nil {
			log.Printf("Could not delete image %s for car %d: %v", imageURL, id, err)
			failed = append(failed, fmt.Sprintf("%s: %v", imageURL, err))
		}
	}

	if err := s.cars.Delete(id); err != nil {
		return nil, err
	}

	result := &DeleteCarResult{Deleted: true}
	if len(failed) > 0 {
		result.ImageDeletionError = fmt.Sprintf("failed to delete %d of %d images: %s",
			len(failed), len(car.Images), strings.Join(failed, "; "))
	}
	return result, nil
}

func carFromRequest(req entities.CarRequest) (*db.Car, error) {
	status := req.Status
	if status == "" {
		status = db.CarStatusAvailable
	}
	if !validCarStatus(status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("invalid car status %q", status)}
	}
	if req.LicensePlate == "" {
		return nil, &ValidationError{Field: "license_plate", Message: "license plate is required"}
	}
	if req.PrimaryImage != "" && !contains(req.Images, req.PrimaryImage) {
		return nil, &ValidationError{Field: "primary_image", Message: "primary image must be one of the car's images"}
	}
	return &db.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		Category:     req.Category,
		LicensePlate: req.LicensePlate,
		Status:       status,
		DailyRate:    req.DailyRate,
		Images:       pq.StringArray(req.Images),
		PrimaryImage: req.PrimaryImage,
	}, nil
}

func carResponse(c db.Car) entities.CarResponse {
	return entities.CarResponse{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Color:        c.Color,
		Category:     c.Category,
		LicensePlate: c.LicensePlate,
		Status:       c.Status,
		DailyRate:    c.DailyRate,
		Images:       []string(c.Images),
		PrimaryImage: c.PrimaryImage,
		CreatedAt:    c.CreatedAt,
	}
}

func validCarStatus(status string) bool {
	switch status {
	case db.CarStatusAvailable, db.CarStatusRented, db.CarStatusMaintenance:
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
