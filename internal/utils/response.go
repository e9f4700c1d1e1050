package utils

import (
	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListResponse is SuccessResponse plus a count field for collection reads.
func ListResponse(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(200, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

func MessageResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
	})
}

// ErrorResponseWithDetail carries the underlying failure text alongside the
// public message, mirroring the error field of the envelope.
func ErrorResponseWithDetail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// AbortErrorResponse is ErrorResponseWithDetail for middleware chains.
func AbortErrorResponse(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
