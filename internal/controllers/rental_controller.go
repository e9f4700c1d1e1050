package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"carrental/internal/logger"
	"carrental/internal/middleware"
	"carrental/internal/models"
	"carrental/internal/store"
	"carrental/internal/utils"
)

// RentalStore is the slice of the persistence layer the rental handlers
// consume.
type RentalStore interface {
	Create(*models.Rental) error
	All() ([]models.Rental, error)
	ByUser(uint) ([]models.Rental, error)
	ByID(uint) (models.Rental, error)
	ByStatus(string) ([]models.Rental, error)
	UpdateStatus(uint, string) error
	UpdatePaymentStatus(uint, string) error
	Delete(uint) error
	CheckAvailability(carID uint, pickup, ret time.Time, excludeRentalID uint) (bool, error)
	GetStats() (store.Stats, error)
}

// RentalCarStore is the car-side surface the rental lifecycle needs: price
// lookup and the availability flag sync.
type RentalCarStore interface {
	ByID(uint) (models.Car, error)
	UpdateAvailability(uint, bool) error
}

// RentalController owns the rental lifecycle: creation, status transitions
// and the car availability flag that mirrors them.
type RentalController struct {
	Rentals RentalStore
	Cars    RentalCarStore
}

func NewRentalController(rentals RentalStore, cars RentalCarStore) *RentalController {
	return &RentalController{Rentals: rentals, Cars: cars}
}

type createRentalInput struct {
	UserID         uint   `json:"user_id"`
	CarID          uint   `json:"car_id"`
	PickupDate     string `json:"pickup_date"`
	ReturnDate     string `json:"return_date"`
	PickupLocation string `json:"pickup_location"`
	ReturnLocation string `json:"return_location"`
	PaymentMethod  string `json:"payment_method"`
	Notes          string `json:"notes"`
}

// CreateRental handles POST /api/rentals. The steps run in a fixed order and
// the first failure wins: field validation, date validation, date-overlap
// availability, car fetch plus stored-flag check, price computation, insert.
// The availability check and the insert are not transactional; see
// store.Rentals.CheckAvailability.
func (ctl *RentalController) CreateRental(c *gin.Context) {
	var input createRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if input.UserID == 0 || input.CarID == 0 || input.PickupDate == "" || input.ReturnDate == "" || input.PickupLocation == "" {
		utils.ErrorResponse(c, http.StatusBadRequest,
			"Required fields: user_id, car_id, pickup_date, return_date, pickup_location")
		return
	}

	pickup, err := time.Parse(models.DateLayout, input.PickupDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid pickup_date, expected YYYY-MM-DD")
		return
	}
	ret, err := time.Parse(models.DateLayout, input.ReturnDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid return_date, expected YYYY-MM-DD")
		return
	}

	if pickup.Before(today()) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Pickup date cannot be in the past")
		return
	}
	if !ret.After(pickup) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Return date must be after pickup date")
		return
	}

	available, err := ctl.Rentals.CheckAvailability(input.CarID, pickup, ret, 0)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error checking car availability", err.Error())
		return
	}
	if !available {
		utils.ErrorResponse(c, http.StatusConflict, "Car is not available for the selected dates")
		return
	}

	car, err := ctl.Cars.ByID(input.CarID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Car not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching car details", err.Error())
		}
		return
	}
	// The stored flag is checked independently of the date overlap; an admin
	// may have disabled the car outright.
	if !car.Availability {
		utils.ErrorResponse(c, http.StatusConflict, "Car is not available for rental")
		return
	}

	days, total := models.RentalTotal(pickup, ret, car.PricePerDay)

	returnLocation := input.ReturnLocation
	if returnLocation == "" {
		returnLocation = input.PickupLocation
	}

	rental := models.Rental{
		UserID:         input.UserID,
		CarID:          input.CarID,
		PickupDate:     pickup,
		ReturnDate:     ret,
		PickupLocation: input.PickupLocation,
		ReturnLocation: returnLocation,
		TotalAmount:    total,
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentUnpaid,
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
	}

	if err := ctl.Rentals.Create(&rental); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error creating rental", err.Error())
		return
	}

	// Best-effort flag sync: a failure here is logged, never surfaced, and
	// the rental stands.
	if err := ctl.Cars.UpdateAvailability(input.CarID, false); err != nil {
		logger.SideEffectWarn("car availability update", err, logrus.Fields{
			"car_id": input.CarID, "rental_id": rental.ID,
		})
	}

	view := rentalView(rental, false)
	view["days"] = days
	view["car_info"] = gin.H{
		"make":  car.Make,
		"model": car.CarModel,
		"year":  car.Year,
	}
	utils.SuccessResponse(c, http.StatusCreated, "Rental created successfully", view)
}

// GetAllRentals handles GET /api/rentals (admin only).
func (ctl *RentalController) GetAllRentals(c *gin.Context) {
	rentals, err := ctl.Rentals.All()
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rentals", err.Error())
		return
	}
	utils.ListResponse(c, "Rentals fetched successfully", rentalViews(rentals, true), len(rentals))
}

// GetRentalsByUserID handles GET /api/rentals/user/:userId (owner or admin).
func (ctl *RentalController) GetRentalsByUserID(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "Valid user ID is required")
	if !ok {
		return
	}

	rentals, err := ctl.Rentals.ByUser(userID)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching user rentals", err.Error())
		return
	}
	utils.ListResponse(c, "User rentals fetched successfully", rentalViews(rentals, false), len(rentals))
}

// GetRentalByID handles GET /api/rentals/:id. Admins see any rental; other
// principals only their own.
func (ctl *RentalController) GetRentalByID(c *gin.Context) {
	rentalID, ok := parseIDParam(c, "id", "Valid rental ID is required")
	if !ok {
		return
	}

	rental, err := ctl.Rentals.ByID(rentalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rental", err.Error())
		}
		return
	}

	if role, _ := c.Get("role"); role != "admin" && rental.UserID != middleware.CurrentUserID(c) {
		utils.ErrorResponseWithDetail(c, http.StatusForbidden, "Access denied", "You can only access your own data")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rental fetched successfully", rentalView(rental, true))
}

// GetRentalsByStatus handles GET /api/rentals/status/:status (admin only).
func (ctl *RentalController) GetRentalsByStatus(c *gin.Context) {
	status := c.Param("status")
	if !models.ValidRentalStatus(status) {
		utils.ErrorResponse(c, http.StatusBadRequest, invalidStatusMessage())
		return
	}

	rentals, err := ctl.Rentals.ByStatus(status)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rentals by status", err.Error())
		return
	}
	utils.ListResponse(c, fmt.Sprintf("Rentals with status '%s' fetched successfully", status),
		rentalViews(rentals, true), len(rentals))
}

type updateStatusInput struct {
	Status string `json:"status"`
}

// UpdateRentalStatus handles PATCH /api/rentals/:id/status (admin only). Any
// valid status is accepted from any current status; transitions into a
// terminal status release the car.
func (ctl *RentalController) UpdateRentalStatus(c *gin.Context) {
	rentalID, ok := parseIDParam(c, "id", "Valid rental ID is required")
	if !ok {
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidRentalStatus(input.Status) {
		utils.ErrorResponse(c, http.StatusBadRequest, invalidStatusMessage())
		return
	}

	rental, err := ctl.Rentals.ByID(rentalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rental", err.Error())
		}
		return
	}

	if err := ctl.Rentals.UpdateStatus(rentalID, input.Status); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating rental status", err.Error())
		return
	}

	if models.TerminalStatus(input.Status) {
		if err := ctl.Cars.UpdateAvailability(rental.CarID, true); err != nil {
			logger.SideEffectWarn("car availability update", err, logrus.Fields{
				"car_id": rental.CarID, "rental_id": rentalID,
			})
		}
	}

	utils.MessageResponse(c, http.StatusOK, fmt.Sprintf("Rental status updated to '%s' successfully", input.Status))
}

type updatePaymentInput struct {
	PaymentStatus string `json:"payment_status"`
}

// UpdatePaymentStatus handles PATCH /api/rentals/:id/payment (admin only).
// Payment state moves independently of rental status.
func (ctl *RentalController) UpdatePaymentStatus(c *gin.Context) {
	rentalID, ok := parseIDParam(c, "id", "Valid rental ID is required")
	if !ok {
		return
	}

	var input updatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidPaymentStatus(input.PaymentStatus) {
		utils.ErrorResponse(c, http.StatusBadRequest,
			"Invalid payment status. Valid statuses: unpaid, pending, paid, refunded")
		return
	}

	if err := ctl.Rentals.UpdatePaymentStatus(rentalID, input.PaymentStatus); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating payment status", err.Error())
		return
	}

	utils.MessageResponse(c, http.StatusOK,
		fmt.Sprintf("Payment status updated to '%s' successfully", input.PaymentStatus))
}

// CheckAvailability handles the public
// GET /api/rentals/check-availability/:carId?pickup_date=&return_date=.
func (ctl *RentalController) CheckAvailability(c *gin.Context) {
	carID, ok := parseIDParam(c, "carId", "Valid car ID is required")
	if !ok {
		return
	}

	pickupStr := c.Query("pickup_date")
	returnStr := c.Query("return_date")
	if pickupStr == "" || returnStr == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Both pickup_date and return_date are required")
		return
	}

	pickup, err := time.Parse(models.DateLayout, pickupStr)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid pickup_date, expected YYYY-MM-DD")
		return
	}
	ret, err := time.Parse(models.DateLayout, returnStr)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid return_date, expected YYYY-MM-DD")
		return
	}

	available, err := ctl.Rentals.CheckAvailability(carID, pickup, ret, 0)
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error checking availability", err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Availability checked successfully", gin.H{
		"car_id":      carID,
		"pickup_date": pickupStr,
		"return_date": returnStr,
		"available":   available,
	})
}

// GetRentalStats handles GET /api/rentals/stats (admin only).
func (ctl *RentalController) GetRentalStats(c *gin.Context) {
	stats, err := ctl.Rentals.GetStats()
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rental statistics", err.Error())
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Rental statistics fetched successfully", stats)
}

// DeleteRental handles DELETE /api/rentals/:id (admin only). Deletion always
// releases the car, whatever the rental's status was.
func (ctl *RentalController) DeleteRental(c *gin.Context) {
	rentalID, ok := parseIDParam(c, "id", "Valid rental ID is required")
	if !ok {
		return
	}

	rental, err := ctl.Rentals.ByID(rentalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching rental", err.Error())
		}
		return
	}

	if err := ctl.Rentals.Delete(rentalID); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error deleting rental", err.Error())
		return
	}

	if err := ctl.Cars.UpdateAvailability(rental.CarID, true); err != nil {
		logger.SideEffectWarn("car availability update", err, logrus.Fields{
			"car_id": rental.CarID, "rental_id": rentalID,
		})
	}

	utils.MessageResponse(c, http.StatusOK, "Rental deleted successfully")
}

// --- helpers ---

func invalidStatusMessage() string {
	return "Invalid status. Valid statuses: pending, confirmed, active, completed, cancelled"
}

// today truncates the current time to a date.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// rentalView flattens a rental plus its preloaded associations into the
// response shape. Customer fields are only exposed on admin-facing reads.
func rentalView(r models.Rental, withCustomer bool) gin.H {
	view := gin.H{
		"id":              r.ID,
		"created_at":      r.CreatedAt,
		"updated_at":      r.UpdatedAt,
		"user_id":         r.UserID,
		"car_id":          r.CarID,
		"pickup_date":     r.PickupDate.Format(models.DateLayout),
		"return_date":     r.ReturnDate.Format(models.DateLayout),
		"pickup_location": r.PickupLocation,
		"return_location": r.ReturnLocation,
		"total_amount":    r.TotalAmount,
		"status":          r.Status,
		"payment_status":  r.PaymentStatus,
		"payment_method":  r.PaymentMethod,
		"notes":           r.Notes,
	}
	if r.Car.ID != 0 {
		view["car_make"] = r.Car.Make
		view["car_model"] = r.Car.CarModel
		view["car_year"] = r.Car.Year
		view["car_image"] = r.Car.ImageURL
		view["license_plate"] = r.Car.LicensePlate
	}
	if withCustomer && r.User.ID != 0 {
		view["customer_name"] = r.User.FullName
		view["customer_email"] = r.User.Email
		view["customer_phone"] = r.User.Phone
	}
	return view
}

func rentalViews(rentals []models.Rental, withCustomer bool) []gin.H {
	views := make([]gin.H, 0, len(rentals))
	for _, r := range rentals {
		views = append(views, rentalView(r, withCustomer))
	}
	return views
}
