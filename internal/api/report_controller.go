package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/service"
)

// ReportController serves administrative analytics.
type ReportController struct {
	reports service.ReportService
}

// NewReportController creates a report controller.
func NewReportController(reports service.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// Analytics handles GET /reports/analytics?year=.
func (rc *ReportController) Analytics(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2000 || parsed > 2200 {
			Error(c, http.StatusBadRequest, "invalid year", "year must be a four-digit year")
			return
		}
		year = parsed
	}

	report, err := rc.reports.GetAdminReportsAnalytics(year)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, report)
}
