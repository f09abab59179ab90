package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-mileage-monitor/internal/usecase/mileage"
	"fleet-mileage-monitor/pkg/utils"
)

type ThresholdHandler struct {
	service *mileage.ThresholdService
}

func NewThresholdHandler(service *mileage.ThresholdService) *ThresholdHandler {
	return &ThresholdHandler{service: service}
}

func (h *ThresholdHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/thresholds/:category", h.GetThresholds)
}

func (h *ThresholdHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PUT("/thresholds/:category", h.UpdateThresholds)
}

func (h *ThresholdHandler) GetThresholds(c *gin.Context) {
	thresholds, err := h.service.GetThresholds(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Thresholds retrieved successfully", thresholds)
}

func (h *ThresholdHandler) UpdateThresholds(c *gin.Context) {
	var req mileage.UpdateThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	thresholds, err := h.service.UpdateThresholds(c.Request.Context(), c.Param("category"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Thresholds updated successfully", thresholds)
}
