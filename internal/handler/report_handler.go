package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Submit accepts reports from unauthenticated visitors who hit a conflict
// during registration or whose name is missing from the roster.
func (h *ReportHandler) Submit(c *gin.Context) {
	var input dto.SubmitReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": report.ID, "status": report.Status})
}
