package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/response"
	"github.com/goodnessw/election-api/internal/services"
)

// ReportHandler serves aggregated voting reports
type ReportHandler struct {
	reportsService *services.ReportsService
	log            *log.Logger
}

// NewReportHandler creates a report handler
func NewReportHandler(reportsService *services.ReportsService) *ReportHandler {
	return &ReportHandler{
		reportsService: reportsService,
		log:            logger.Handler("report_handler"),
	}
}

// Summary handles GET /api/admin/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportsService.Summary()
	if err != nil {
		h.log.Error("failed to build report summary", "error", err)
		response.InternalServerError(c, "failed to build report summary")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", summary)
}
