package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/middleware"
	"fleet-mileage-monitor/internal/usecase/mileage"
	"fleet-mileage-monitor/pkg/utils"
)

type ReportHandler struct {
	service *mileage.Service
}

func NewReportHandler(service *mileage.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/reports/mileage", h.GenerateMileageReport)
}

func (h *ReportHandler) GenerateMileageReport(c *gin.Context) {
	var req mileage.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithRequestID(middleware.GetRequestID(c)).Info("Mileage report generated",
		zap.String("mode", string(report.Mode)),
		zap.Int("devices", len(req.DeviceIDs)),
		zap.Int("rows", len(report.Rows)),
		zap.String("user_id", middleware.GetUserID(c)),
		zap.String("event", "mileage_report_generated"),
	)

	utils.SuccessResponse(c, http.StatusOK, "Report generated successfully", report)
}
