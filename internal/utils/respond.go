package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
)

// Respond writes the success envelope.
func Respond(ctx *gin.Context, statusCode int, data any, message string) {
	ctx.JSON(statusCode, types.NewApiResponse(statusCode, data, message))
}

// RespondError writes the error envelope. Expected failures (*types.ApiError)
// keep their status and message; anything else is logged and converted to a
// generic 500 so internal detail never leaks.
func RespondError(ctx *gin.Context, err error) {
	var apiErr *types.ApiError

	if errors.As(err, &apiErr) {
		ctx.JSON(apiErr.StatusCode, apiErr)
		return
	}

	log.Printf("unexpected error: %v", err)
	ctx.JSON(http.StatusInternalServerError, types.NewApiError(http.StatusInternalServerError, "Internal server error"))
}
