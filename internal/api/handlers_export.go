package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sthanna/UsTaxesFree/internal/auth"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/efile"
	"github.com/sthanna/UsTaxesFree/internal/observability/metrics"
	"github.com/sthanna/UsTaxesFree/internal/report"
)

type calculateRequest struct {
	ResidentState string `json:"residentState"`
}

// Calculate runs the engine over the stored return and returns the full
// result.
func (h *Handler) Calculate(c *gin.Context) {
	// Body is optional; an empty one means no state override.
	var req calculateRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.Returns.Calculate(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), req.ResidentState)
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, result)
}

// calculateForExport reruns the calculation and resolves the filer's
// display name for documents that carry it.
func (h *Handler) calculateForExport(c *gin.Context) (*domain.CalculationResult, string, bool) {
	userID := auth.UserIDFromContext(c)
	result, err := h.Returns.Calculate(c.Request.Context(), userID, c.Param("id"), "")
	if ownershipError(c, err) {
		return nil, "", false
	}

	filerName := ""
	if user, err := h.Users.GetByID(c.Request.Context(), userID); err == nil && user != nil {
		filerName = fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	}
	return result, filerName, true
}

// DownloadPDF renders the return summary PDF.
func (h *Handler) DownloadPDF(c *gin.Context) {
	result, filerName, ok := h.calculateForExport(c)
	if !ok {
		return
	}

	start := time.Now()
	data, err := report.BuildReturnPDF(result, filerName)
	if err != nil {
		metrics.ObserveExport("pdf", metrics.ResultError, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ObserveExport("pdf", metrics.ResultSuccess, time.Since(start))

	filename := fmt.Sprintf("tax_return_%d.pdf", result.TaxYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadXLSX renders the per-line workbook.
func (h *Handler) DownloadXLSX(c *gin.Context) {
	result, _, ok := h.calculateForExport(c)
	if !ok {
		return
	}

	start := time.Now()
	data, err := report.BuildReturnXLSX(result)
	if err != nil {
		metrics.ObserveExport("xlsx", metrics.ResultError, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ObserveExport("xlsx", metrics.ResultSuccess, time.Since(start))

	filename := fmt.Sprintf("tax_return_%d.xlsx", result.TaxYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DownloadEfile renders the MeF-style XML transmission.
func (h *Handler) DownloadEfile(c *gin.Context) {
	result, filerName, ok := h.calculateForExport(c)
	if !ok {
		return
	}

	start := time.Now()
	data, err := efile.Generate(result, filerName)
	if err != nil {
		metrics.ObserveExport("xml", metrics.ResultError, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ObserveExport("xml", metrics.ResultSuccess, time.Since(start))

	filename := fmt.Sprintf("tax_return_%d.xml", result.TaxYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/xml", data)
}
