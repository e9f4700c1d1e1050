package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"carrental/internal/middleware"
	"carrental/internal/models"
	"carrental/internal/store"
	"carrental/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the slice of the persistence layer the user handlers consume.
type UserStore interface {
	Create(*models.User) error
	ByEmail(string) (models.User, error)
	ByID(uint) (models.User, error)
	All() ([]models.User, error)
	Update(uint, map[string]interface{}) error
}

type UserController struct {
	Users UserStore
}

func NewUserController(users UserStore) *UserController {
	return &UserController{Users: users}
}

type registerInput struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

// Register handles POST /api/users/register. New accounts always get the
// customer role.
func (ctl *UserController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" || input.FullName == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Required fields: username, email, password, full_name")
		return
	}
	if !emailPattern.MatchString(input.Email) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(input.Password) < 6 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if _, err := ctl.Users.ByEmail(input.Email); err == nil {
		utils.ErrorResponse(c, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error checking existing user", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Error processing password")
		return
	}

	user := models.User{
		Username:      input.Username,
		Email:         input.Email,
		Password:      string(hash),
		FullName:      input.FullName,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		Role:          "customer",
	}

	if err := ctl.Users.Create(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			utils.ErrorResponse(c, http.StatusConflict, "Username or email already exists")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error creating user", err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login. The response never tells which of the
// two fields was wrong.
func (ctl *UserController) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ctl.Users.ByEmail(body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error during login", err.Error())
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// AdminLogin handles POST /api/users/admin/login. Non-admin accounts get the
// same rejection as bad credentials.
func (ctl *UserController) AdminLogin(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ctl.Users.ByEmail(body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid admin credentials")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error during admin login", err.Error())
		}
		return
	}

	if user.Role != "admin" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// GetAllUsers handles GET /api/users (admin only).
func (ctl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctl.Users.All()
	if err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching users", err.Error())
		return
	}
	utils.ListResponse(c, "Users fetched successfully", users, len(users))
}

// GetUserByID handles GET /api/users/:id (owner or admin).
func (ctl *UserController) GetUserByID(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "Valid user ID is required")
	if !ok {
		return
	}

	user, err := ctl.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "User not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching user", err.Error())
		}
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User fetched successfully", user)
}

type updateUserInput struct {
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
}

// UpdateUser handles PUT /api/users/:id (owner or admin). Password and role
// are not touchable through this endpoint.
func (ctl *UserController) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "Valid user ID is required")
	if !ok {
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if input.Email != nil && !emailPattern.MatchString(*input.Email) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	fields := map[string]interface{}{}
	if input.Username != nil && *input.Username != "" {
		fields["username"] = *input.Username
	}
	if input.Email != nil && *input.Email != "" {
		fields["email"] = *input.Email
	}
	if input.FullName != nil && *input.FullName != "" {
		fields["full_name"] = *input.FullName
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.LicenseNumber != nil {
		fields["license_number"] = *input.LicenseNumber
	}

	if len(fields) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := ctl.Users.Update(userID, fields); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrDuplicateKey):
			utils.ErrorResponse(c, http.StatusConflict, "Username or email already exists")
		default:
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating user", err.Error())
		}
		return
	}

	utils.MessageResponse(c, http.StatusOK, "User updated successfully")
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/users/:id/change-password (owner or admin).
func (ctl *UserController) ChangePassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "Valid user ID is required")
	if !ok {
		return
	}

	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil || input.CurrentPassword == "" || input.NewPassword == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Current password and new password are required")
		return
	}
	if len(input.NewPassword) < 6 {
		utils.ErrorResponse(c, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	user, err := ctl.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "User not found")
		} else {
			utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error fetching user", err.Error())
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Error processing password change")
		return
	}

	if err := ctl.Users.Update(userID, map[string]interface{}{"password": string(hash)}); err != nil {
		utils.ErrorResponseWithDetail(c, http.StatusInternalServerError, "Error updating password", err.Error())
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Password changed successfully")
}
