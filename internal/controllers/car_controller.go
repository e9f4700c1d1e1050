package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carrental/internal/models"
	"carrental/internal/store"
	"carrental/internal/utils"
)

// CarStore is the slice of the persistence layer the car handlers consume.
type CarStore interface {
	Create(*models.Car) error
	All() ([]models.Car, error)
	Available() ([]models.Car, error)
	ByID(uint) (models.Car, error)
	ByCategory(string) ([]models.Car, error)
	Search(string) ([]models.Car, error)
	Update(uint, map[string]interface{}) error
	UpdateAvailability(uint, bool) error
	Delete(uint) error
}

// CarController serves the fleet inventory endpoints.
type CarController struct {
	Cars      CarStore
	UploadDir string
}

func NewCarController(cars CarStore, uploadDir string) *CarController {
	return &CarController{Cars: cars, UploadDir: uploadDir}
}

// GetAllCars handles GET /api/cars.
func (ctl *CarController) GetAllCars(c *gin.Context) {
	cars, err := ctl.Cars.All()
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching cars", err.Error())
		return
	}
	utils.ListResponse(c, "Cars fetched successfully", cars, len(cars))
}

// GetAvailableCars handles GET /api/cars/available.
func (ctl *CarController) GetAvailableCars(c *gin.Context) {
	cars, err := ctl.Cars.Available()
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching available cars", err.Error())
		return
	}
	utils.ListResponse(c, "Available cars fetched successfully", cars, len(cars))
}

// GetCarByID handles GET /api/cars/:id.
func (ctl *CarController) GetCarByID(c *gin.Context) {
	carID, ok := parseIDParam(c, "id", "Valid car ID is required")
	if !ok {
		return
	}

	car, err := ctl.Cars.ByID(carID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Car not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching car", err.Error())
		}
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Car fetched successfully", car)
}

// GetCarsByCategory handles GET /api/cars/category/:category.
func (ctl *CarController) GetCarsByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Category is required")
		return
	}

	cars, err := ctl.Cars.ByCategory(category)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching cars by category", err.Error())
		return
	}
	utils.ListResponse(c, fmt.Sprintf("Cars in category '%s' fetched successfully", category), cars, len(cars))
}

// SearchCars handles GET /api/cars/search?q=term.
func (ctl *CarController) SearchCars(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Search term is required")
		return
	}

	cars, err := ctl.Cars.Search(term)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error searching cars", err.Error())
		return
	}
	utils.ListResponse(c, fmt.Sprintf("Search results for '%s'", term), cars, len(cars))
}

// CreateCar handles POST /api/cars (admin only). Accepts multipart form data
// with an optional image file.
func (ctl *CarController) CreateCar(c *gin.Context) {
	carMake := c.PostForm("make")
	carModel := c.PostForm("model")
	yearStr := c.PostForm("year")
	category := c.PostForm("category")
	priceStr := c.PostForm("price_per_day")
	licensePlate := c.PostForm("license_plate")

	if carMake == "" || carModel == "" || yearStr == "" || category == "" || priceStr == "" || licensePlate == "" {
		utils.ErrorResponse(c, http.StatusBadRequest,
			"Required fields: make, model, year, category, price_per_day, license_plate")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Year must be a number")
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Price per day must be a number")
		return
	}

	imageURL, err := ctl.saveUploadedImage(c)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error saving uploaded image", err.Error())
		return
	}

	seats := 5
	if s, err := strconv.Atoi(c.PostForm("seats")); err == nil && s > 0 {
		seats = s
	}

	car := models.Car{
		Make:         carMake,
		CarModel:     carModel,
		Year:         year,
		Category:     category,
		PricePerDay:  price,
		ImageURL:     imageURL,
		Availability: true,
		LicensePlate: licensePlate,
		Description:  c.PostForm("description"),
		Features:     c.PostForm("features"),
		FuelType:     c.PostForm("fuel_type"),
		Transmission: c.PostForm("transmission"),
		Seats:        seats,
	}

	if err := ctl.Cars.Create(&car); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			utils.ErrorResponse(c, http.StatusConflict, "License plate already exists")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error creating car", err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Car created successfully", car)
}

// UpdateCar handles PUT /api/cars/:id (admin only). Only provided, non-empty
// form fields are applied; numeric fields are coerced before persistence.
func (ctl *CarController) UpdateCar(c *gin.Context) {
	carID, ok := parseIDParam(c, "id", "Valid car ID is required")
	if !ok {
		return
	}

	fields := map[string]interface{}{}
	for _, key := range []string{"make", "model", "category", "license_plate", "description", "features", "fuel_type", "transmission"} {
		if v := c.PostForm(key); v != "" {
			fields[key] = v
		}
	}
	for _, key := range []string{"year", "seats"} {
		if v := c.PostForm(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("%s must be a number", key))
				return
			}
			fields[key] = n
		}
	}
	if v := c.PostForm("price_per_day"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "price_per_day must be a number")
			return
		}
		fields["price_per_day"] = price
	}

	imageURL, err := ctl.saveUploadedImage(c)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error saving uploaded image", err.Error())
		return
	}
	if imageURL != "" {
		fields["image_url"] = imageURL
	}

	if len(fields) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := ctl.Cars.Update(carID, fields); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "Car not found")
		case errors.Is(err, store.ErrDuplicateKey):
			utils.ErrorResponse(c, http.StatusConflict, "License plate already exists")
		default:
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating car", err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Car updated successfully", fields)
}

// UpdateCarAvailability handles PATCH /api/cars/:id/availability (admin only).
// Direct override of the availability flag, independent of rental state.
func (ctl *CarController) UpdateCarAvailability(c *gin.Context) {
	carID, ok := parseIDParam(c, "id", "Valid car ID is required")
	if !ok {
		return
	}

	var body struct {
		Availability *bool `json:"availability"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Availability == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Availability must be a boolean value")
		return
	}

	if err := ctl.Cars.UpdateAvailability(carID, *body.Availability); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating car availability", err.Error())
		return
	}

	verb := "disabled"
	if *body.Availability {
		verb = "enabled"
	}
	utils.MessageResponse(c, http.StatusOK, fmt.Sprintf("Car %s successfully", verb))
}

// DeleteCar handles DELETE /api/cars/:id (admin only). Cars referenced by any
// rental are protected by the foreign key and rejected with a 400.
func (ctl *CarController) DeleteCar(c *gin.Context) {
	carID, ok := parseIDParam(c, "id", "Valid car ID is required")
	if !ok {
		return
	}

	if err := ctl.Cars.Delete(carID); err != nil {
		switch {
		case errors.Is(err, store.ErrForeignKey):
			utils.ErrorResponse(c, http.StatusBadRequest, "Cannot delete car with existing rentals")
		case errors.Is(err, store.ErrNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "Car not found")
		default:
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error deleting car", err.Error())
		}
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Car deleted successfully")
}

// saveUploadedImage stores an optional multipart "image" file under the
// upload directory and returns its public path, or "" when absent.
func (ctl *CarController) saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	name := fmt.Sprintf("car-%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	dst := filepath.Join(ctl.UploadDir, "cars", name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/cars/" + name, nil
}

// parseIDParam parses a numeric URL parameter, answering a 400 itself when the
// value is malformed.
func parseIDParam(c *gin.Context, param, msg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msg)
		return 0, false
	}
	return uint(id), true
}
