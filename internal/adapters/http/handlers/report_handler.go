package handlers

import (
	"time"

	"kgtk-simpanse/internal/core/services"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles CSV export endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportLoans handles the loan CSV export
// @Summary Export loans as CSV
// @Tags Reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Router /loans/export [get]
func (h *ReportHandler) ExportLoans(c *fiber.Ctx) error {
	data, err := h.reportService.LoansCSV()
	if err != nil {
		return response.InternalServerError(c, "Failed to export loans")
	}
	return sendCSV(c, "loans", data)
}

// ExportUsers handles the staff directory CSV export
// @Summary Export staff accounts as CSV
// @Tags Reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Router /users/export [get]
func (h *ReportHandler) ExportUsers(c *fiber.Ctx) error {
	data, err := h.reportService.UsersCSV()
	if err != nil {
		return response.InternalServerError(c, "Failed to export users")
	}
	return sendCSV(c, "users", data)
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := name + "_" + time.Now().Format("20060102_150405") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
