package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sthanna/UsTaxesFree/internal/auth"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/service"
)

type createReturnRequest struct {
	TaxYear       int    `json:"taxYear" binding:"required"`
	FilingStatus  string `json:"filingStatus" binding:"required"`
	ResidentState string `json:"residentState"`
}

// ownershipError writes the right status for service ownership errors
// and reports whether it handled the error.
func ownershipError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "return not found"})
	case errors.Is(err, service.ErrForbidden):
		// 404, not 403: don't confirm the return exists to a non-owner.
		c.JSON(http.StatusNotFound, gin.H{"error": "return not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
	return true
}

// CreateReturn starts a new return for the authenticated user.
func (h *Handler) CreateReturn(c *gin.Context) {
	var req createReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ret, err := h.Returns.Create(c.Request.Context(), auth.UserIDFromContext(c),
		req.TaxYear, domain.FilingStatus(req.FilingStatus), req.ResidentState)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ret)
}

// ListReturns lists the user's returns.
func (h *Handler) ListReturns(c *gin.Context) {
	returns, err := h.Returns.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, returns)
}

// GetReturn fetches one owned return.
func (h *Handler) GetReturn(c *gin.Context) {
	ret, err := h.Returns.GetOwned(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.JSON(http.StatusOK, ret)
}

// DeleteReturn removes an owned return.
func (h *Handler) DeleteReturn(c *gin.Context) {
	err := h.Returns.Delete(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if ownershipError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
