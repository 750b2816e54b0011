package api

import (
	"fmt"
	"net/http"
	"strconv"

	"SalesDashboard/app/services"

	"github.com/gin-gonic/gin"
)

const defaultQRSize = 256

func (h *Handlers) dashboardStats(c *gin.Context) {
	ok(c, h.Dashboard.GetDashboardStats())
}

func (h *Handlers) employeePerformance(c *gin.Context) {
	ok(c, h.Dashboard.GetEmployeePerformance())
}

// dashboardQR serves a PNG QR code that opens the dashboard on a phone
func (h *Handlers) dashboardQR(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 1024 {
			badRequest(c, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	url := fmt.Sprintf("http://%s/", c.Request.Host)
	if h.Discovery != nil {
		url = h.Discovery.DashboardURL()
	}

	png, err := services.QRCodePNG(url, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("X-Dashboard-URL", url)
	c.Data(http.StatusOK, "image/png", png)
}

// exportSheets pushes today's dashboard row to Google Sheets
func (h *Handlers) exportSheets(c *gin.Context) {
	if h.Sheets == nil || !h.Sheets.Enabled() {
		fail(c, fmt.Errorf("Google Sheets export is not configured: %w", errServiceUnavailable))
		return
	}

	report, err := h.Sheets.SyncNow(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, report, services.Outcome{
		Type:    services.OutcomeSuccess,
		Message: "Dashboard exported to Google Sheets",
	})
}

func (h *Handlers) recentActivity(c *gin.Context) {
	if h.Activity == nil {
		fail(c, fmt.Errorf("activity journal is not available: %w", errServiceUnavailable))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.Activity.GetRecentActivity(c.Query("entity"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, entries)
}
