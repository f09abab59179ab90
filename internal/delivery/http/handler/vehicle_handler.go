package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-mileage-monitor/internal/usecase/vehicle"
	"fleet-mileage-monitor/pkg/utils"
)

type VehicleHandler struct {
	service *vehicle.Service
	sync    *vehicle.SyncService
}

func NewVehicleHandler(service *vehicle.Service, sync *vehicle.SyncService) *VehicleHandler {
	return &VehicleHandler{service: service, sync: sync}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicles := router.Group("/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

func (h *VehicleHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/vehicles/sync", h.SyncVehicles)
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", v)
}

func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", v)
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var filter vehicle.VehicleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", v)
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// SyncVehicles pulls the provider device catalog. ?dry_run=true only counts.
func (h *VehicleHandler) SyncVehicles(c *gin.Context) {
	dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "dry_run must be a boolean")
		return
	}

	result, err := h.sync.Sync(c.Request.Context(), dryRun)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle sync completed", result)
}

func vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}
