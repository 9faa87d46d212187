package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/export"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/service"
	"go-restaurant-pos/internal/store"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service *service.ReportService
	shop    config.ShopConfig
}

func NewReportHandler(service *service.ReportService, shop config.ShopConfig) *ReportHandler {
	return &ReportHandler{service: service, shop: shop}
}

// ReportResponse wraps a report with the archive outcome of that request.
type ReportResponse struct {
	models.Report
	ArchiveError string `json:"archive_error,omitempty"`
}

// --- GET: /api/reports?date=YYYY-MM-DD ---
// Generates the 6-month rolling report ending on date (today by default) and archives it.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	report, err := h.service.Generate(c.Request.Context(), c.Query("date"))
	if err != nil {
		// An archive failure still leaves a usable report
		if report.ID != "" {
			c.JSON(http.StatusOK, ReportResponse{Report: report, ArchiveError: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{Report: report})
}

// --- GET: /api/reports/history ---
func (h *ReportHandler) GetReportHistory(c *gin.Context) {
	reports, err := h.service.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved reports"})
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	c.JSON(http.StatusOK, reports)
}

// --- GET: /api/reports/history/:id/export?format=txt|xlsx ---
func (h *ReportHandler) ExportReport(c *gin.Context) {
	report, err := h.service.Find(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "txt"); format {
	case "txt":
		if err := export.WriteReportText(&buf, report, h.shop); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
			return
		}
		attach(c, export.ReportFilename(report.GeneratedAt, "txt"), "text/plain; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := export.WriteReportXLSX(&buf, report, h.shop); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
			return
		}
		attach(c, export.ReportFilename(report.GeneratedAt, "xlsx"), xlsxContentType, buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be txt or xlsx"})
	}
}

func attach(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
