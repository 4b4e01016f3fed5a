// Package handler holds the gin handlers of the ropfeed HTTP API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. The HTTP status is code / 100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func BadGateway(c *gin.Context, message string) {
	Error(c, 50200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}
