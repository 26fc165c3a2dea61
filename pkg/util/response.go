package util

import (
	"github.com/gin-gonic/gin"
)

type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    nil,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

type ErrorResponse struct {
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status"`
}

func HandleError(c *gin.Context, statusCode int, err error) {
	HandleErrorData(c, statusCode, err, nil)
}

// HandleErrorData is HandleError with a payload, for failures that still
// carry per-item detail.
func HandleErrorData(c *gin.Context, statusCode int, err error, data interface{}) {
	Log.Error().
		Err(err).
		Int("status", statusCode).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(statusCode, ErrorResponse{
		Data:   data,
		Error:  err.Error(),
		Status: statusCode,
	})
}
