package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/middleware"
	appErrors "fleet-mileage-monitor/pkg/errors"
	"fleet-mileage-monitor/pkg/utils"
)

const providerFailureMessage = "could not obtain data from the tracking provider"

// respondError maps a use case error onto the response envelope. Unknown
// errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		appErr      *appErrors.AppError
		rangeErr    *domainMileage.InvalidRangeError
		providerErr *domainMileage.ProviderError
	)

	switch {
	case errors.As(err, &providerErr):
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Tracking provider call failed",
			zap.String("method", providerErr.Method),
			zap.String("path", providerErr.Path),
			zap.Int("status", providerErr.Status),
			zap.Int("devices", len(providerErr.DeviceIDs)),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusBadGateway, providerFailureMessage)
	case errors.As(err, &rangeErr):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, rangeErr.Error())
	case errors.Is(err, domainVehicle.ErrVehicleNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Vehicle not found")
	case errors.Is(err, domainVehicle.ErrVehicleAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, "A vehicle is already bound to this device")
	case errors.Is(err, domainMileage.ErrInvalidCategory):
		utils.ErrorResponse(c, http.StatusNotFound, "Unknown classification category")
	case errors.Is(err, domainMileage.ErrCategoryNotConfigurable):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR":
		respondValidation(c, appErr.Message, appErr.Err)
	case errors.As(err, &appErr):
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
	default:
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Unhandled request error", zap.Error(err))
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// respondValidation returns 400 with per-field details when err came from
// the validator.
func respondValidation(c *gin.Context, message string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, message, utils.ValidationDetails(err))
		return
	}
	if err != nil {
		message = message + ": " + err.Error()
	}
	utils.ErrorResponse(c, http.StatusBadRequest, message)
}
